package dashboard

import (
	"context"
	"errors"
	"io"
)

const defaultPageTemplate = "dashboard.html"

// PageSource attaches a viewer to its session.
type PageSource interface {
	Attach(ctx context.Context, viewer ViewerContext) (Controls, error)
}

// PageControllerOptions configures a PageController.
type PageControllerOptions struct {
	Sessions PageSource
	Renderer Renderer
	Template string
}

// PageController renders a session into the dashboard HTML page or its
// JSON equivalent.
type PageController struct {
	sessions PageSource
	renderer Renderer
	template string
}

// NewPageController wires a session source and a template renderer.
func NewPageController(opts PageControllerOptions) *PageController {
	if opts.Template == "" {
		opts.Template = defaultPageTemplate
	}
	return &PageController{
		sessions: opts.Sessions,
		renderer: opts.Renderer,
		template: opts.Template,
	}
}

// Page renders the viewer's session.
func (c *PageController) Page(ctx context.Context, viewer ViewerContext) (Page, error) {
	if c.sessions == nil {
		return Page{}, errors.New("dashboard: page controller has no session source")
	}
	controls, err := c.sessions.Attach(ctx, viewer)
	if err != nil {
		return Page{}, err
	}
	return controls.Render(ctx)
}

// PagePayload returns the template payload for the viewer.
func (c *PageController) PagePayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	page, err := c.Page(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return PagePayload(page), nil
}

// RenderTemplate executes the page template into out.
func (c *PageController) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: renderer not configured")
	}
	payload, err := c.PagePayload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}

// PagePayload flattens a Page into the map handed to templates.
func PagePayload(page Page) map[string]any {
	always := make([]map[string]any, len(page.Always))
	for i, frame := range page.Always {
		always[i] = frameMap(frame)
	}
	rows := make([][]map[string]any, len(page.Rows))
	for i, row := range page.Rows {
		rows[i] = make([]map[string]any, len(row))
		for j, frame := range row {
			rows[i][j] = frameMap(frame)
		}
	}
	payload := map[string]any{
		"session_id": page.SessionID,
		"header": map[string]any{
			"title":         page.Header.Title,
			"subtitle":      page.Header.Subtitle,
			"clock":         page.Header.Clock,
			"search":        page.Header.Search,
			"notifications": page.Header.Notifications,
			"dark_mode":     page.Header.DarkMode,
			"refreshing":    page.Header.Refreshing,
		},
		"state": map[string]any{
			"time_range": string(page.State.TimeRange),
			"active_tab": string(page.State.ActiveTab),
			"refreshing": page.State.Refreshing,
		},
		"tabs":        page.Tabs,
		"time_ranges": page.TimeRanges,
		"always":      always,
		"rows":        rows,
		"theme": map[string]any{
			"name":        page.Theme.Name,
			"chart_theme": page.Theme.ChartTheme,
			"css":         page.Theme.CSSVariablesInline(),
		},
	}
	if page.Sidebar != nil {
		payload["sidebar"] = frameMap(*page.Sidebar)
	}
	return payload
}

func frameMap(frame CardFrame) map[string]any {
	return map[string]any{
		"id":    string(frame.ID),
		"title": frame.Title,
		"data":  frame.Data,
		"error": frame.Error,
	}
}
