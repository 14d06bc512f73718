package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/queries"
)

// SessionHeader carries the dashboard session id on API requests.
const SessionHeader = "X-Dashboard-Session"

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with the page controller, the API executor and the
// broadcast hook.
type Config[T any] struct {
	Router         router.Router[T]
	Pages          *dashboard.PageController
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
// Session scoped paths must contain a :session parameter and card scoped
// paths a :card parameter.
type RouteConfig struct {
	HTML       string
	Page       string
	Session    string
	TimeRange  string
	Tab        string
	Refresh    string
	Theme      string
	Nav        string
	Search     string
	Card       string
	CardAction string
	Tooltip    string
	Metrics    string
	WebSocket  string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Pages == nil {
		return errors.New("gorouter: page controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/analytics"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Pages.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Pages.PagePayload(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Get(routes.Session, router.WrapHandler(func(ctx router.Context) error {
		return respondPage(ctx, api, http.StatusOK)
	}))

	r.Post(routes.TimeRange, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetTimeRangeInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		payload.SessionID = ctx.Param("session")
		if err := api.SetTimeRange(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return respondPage(ctx, api, http.StatusOK)
	}))

	r.Post(routes.Tab, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetActiveTabInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		payload.SessionID = ctx.Param("session")
		if err := api.SetActiveTab(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return respondPage(ctx, api, http.StatusOK)
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		input := commands.TriggerRefreshInput{SessionID: ctx.Param("session")}
		if err := api.TriggerRefresh(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return respondPage(ctx, api, http.StatusAccepted)
	}))

	r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
		input := commands.ToggleDarkModeInput{SessionID: ctx.Param("session")}
		if err := api.ToggleDarkMode(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return respondPage(ctx, api, http.StatusOK)
	}))

	r.Post(routes.Nav, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SelectNavInput
		if err := decodeBody(ctx, &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		payload.SessionID = ctx.Param("session")
		if err := api.SelectNav(ctx.Context(), payload); err != nil {
			return respondError(ctx, err)
		}
		return respondPage(ctx, api, http.StatusOK)
	}))

	r.Get(routes.Search, router.WrapHandler(func(ctx router.Context) error {
		result, err := api.Search(ctx.Context(), queries.SearchInput{
			SessionID: ctx.Param("session"),
			Query:     ctx.Query("q"),
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Get(routes.Card, router.WrapHandler(func(ctx router.Context) error {
		return respondCard(ctx, api)
	}))

	r.Post(routes.CardAction, router.WrapHandler(func(ctx router.Context) error {
		var payload map[string]any
		if err := decodeBody(ctx, &payload); err != nil {
			return respondStatus(ctx, http.StatusBadRequest, err)
		}
		input := commands.CardActionInput{
			SessionID: ctx.Param("session"),
			CardID:    dashboard.CardID(ctx.Param("card")),
			Payload:   payload,
		}
		if err := api.CardAction(ctx.Context(), input); err != nil {
			return respondError(ctx, err)
		}
		return respondCard(ctx, api)
	}))

	r.Get(routes.Tooltip, router.WrapHandler(func(ctx router.Context) error {
		label := ctx.Query("label")
		if label == "" {
			return respondStatus(ctx, http.StatusBadRequest, errors.New("label is required"))
		}
		lines, err := api.Tooltip(ctx.Context(), queries.TooltipInput{
			SessionID: ctx.Param("session"),
			CardID:    dashboard.CardID(ctx.Param("card")),
			Label:     label,
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"card": ctx.Param("card"), "label": label, "lines": lines})
	}))

	r.Get(routes.Metrics, router.WrapHandler(func(ctx router.Context) error {
		report, err := api.Metrics(ctx.Context(), queries.MetricsInput{Locale: inferLocale(ctx)})
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, report)
	}))
}

// registerWebSocket streams view events of the session named by the
// "session" query parameter. Without one, every session's events are sent.
func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe(ws.Query("session"))
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondPage(ctx router.Context, api httpapi.Executor, status int) error {
	page, err := api.Page(ctx.Context(), queries.PageInput{SessionID: ctx.Param("session")})
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(status, page)
}

func respondCard(ctx router.Context, api httpapi.Executor) error {
	frame, err := api.Card(ctx.Context(), queries.CardInput{
		SessionID: ctx.Param("session"),
		CardID:    dashboard.CardID(ctx.Param("card")),
	})
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, frame)
}

func decodeBody(ctx router.Context, v any) error {
	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	viewer.SessionID = resolveSessionID(ctx)
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func resolveSessionID(ctx router.Context) string {
	if id := strings.TrimSpace(ctx.Header(SessionHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(ctx.Query("session"))
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, err error) error {
	return respondStatus(ctx, httpapi.StatusFor(err), err)
}

func respondStatus(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Page == "" {
		routes.Page = "/dashboard/_page"
	}
	if routes.Session == "" {
		routes.Session = "/dashboard/sessions/:session"
	}
	if routes.TimeRange == "" {
		routes.TimeRange = routes.Session + "/time-range"
	}
	if routes.Tab == "" {
		routes.Tab = routes.Session + "/tab"
	}
	if routes.Refresh == "" {
		routes.Refresh = routes.Session + "/refresh"
	}
	if routes.Theme == "" {
		routes.Theme = routes.Session + "/theme"
	}
	if routes.Nav == "" {
		routes.Nav = routes.Session + "/nav"
	}
	if routes.Search == "" {
		routes.Search = routes.Session + "/search"
	}
	if routes.Card == "" {
		routes.Card = routes.Session + "/cards/:card"
	}
	if routes.CardAction == "" {
		routes.CardAction = routes.Card + "/actions"
	}
	if routes.Tooltip == "" {
		routes.Tooltip = routes.Card + "/tooltip"
	}
	if routes.Metrics == "" {
		routes.Metrics = "/dashboard/metrics"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
