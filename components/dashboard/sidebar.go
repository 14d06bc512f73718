package dashboard

import (
	"context"
	"sync"
)

const (
	sidebarBrand    = "AnalyticsAI"
	sidebarTagline  = "Pro Dashboard"
	aiProcessing    = 84
	reportsUsed     = 7
	reportsIncluded = 10
)

type sidebarCard struct {
	mu     sync.Mutex
	items  []NavItem
	active string
}

// NewSidebarCard builds the navigation sidebar with Overview selected.
func NewSidebarCard(CardDeps) CardView {
	items := NavItems()
	return &sidebarCard{items: items, active: items[0].Label}
}

func (c *sidebarCard) ID() CardID { return CardSidebar }

func (c *sidebarCard) Close() {}

// Active returns the selected navigation label.
func (c *sidebarCard) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *sidebarCard) HandleAction(_ context.Context, action CardAction) error {
	if action.Action != "select_nav" {
		return unsupported(CardSidebar, action.Action)
	}
	for _, item := range c.items {
		if item.Label == action.Value {
			c.mu.Lock()
			c.active = item.Label
			c.mu.Unlock()
			return nil
		}
	}
	return wrapCardErr(CardSidebar, ErrUnknownNavItem, action.Value)
}

func (c *sidebarCard) Render(_ context.Context, rc RenderContext) (WidgetData, error) {
	active := c.Active()
	nav := make([]WidgetData, len(c.items))
	for i, item := range c.items {
		nav[i] = WidgetData{
			"label":         item.Label,
			"icon":          item.Icon,
			"notifications": item.Notifications,
			"active":        item.Label == active,
		}
	}
	return WidgetData{
		"brand":   sidebarBrand,
		"tagline": sidebarTagline,
		"nav":     nav,
		"active":  active,
		"ai_status": WidgetData{
			"label":    "Processing",
			"progress": aiProcessing,
			"value":    rc.Format.Percent(aiProcessing, 0),
		},
		"usage": WidgetData{
			"used":     reportsUsed,
			"included": reportsIncluded,
			"label":    rc.Format.Count(reportsUsed) + "/" + rc.Format.Count(reportsIncluded) + " reports",
		},
	}, nil
}
