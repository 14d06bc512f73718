package dashboard

import (
	"context"
	"math/rand/v2"
	"time"
)

// RenderContext carries everything a card needs to render one frame.
type RenderContext struct {
	State      DashboardState
	Viewer     ViewerContext
	Format     Formatter
	Charts     ChartRenderer
	ChartTheme string
	DarkMode   bool
}

// CardView is one dashboard visualization. A view owns its local state and
// timers from construction until Close.
type CardView interface {
	ID() CardID
	Render(ctx context.Context, rc RenderContext) (WidgetData, error)
	Close()
}

// CardAction is a user interaction routed to a mounted card.
type CardAction struct {
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
	Index  int    `json:"index,omitempty"`
}

// ActionHandler is implemented by cards that accept interactions.
type ActionHandler interface {
	HandleAction(ctx context.Context, action CardAction) error
}

// TooltipLine is one row of a chart tooltip.
type TooltipLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TooltipProvider is implemented by chart cards that explain a data point.
type TooltipProvider interface {
	Tooltip(f Formatter, label string) ([]TooltipLine, error)
}

// StateObserver is implemented by cards whose render depends on the
// controller state. The shell calls it whenever the state changes.
type StateObserver interface {
	StateChanged(state DashboardState)
}

// Timings groups the timer intervals used by live cards.
type Timings struct {
	KPIInterval             time.Duration
	InsightInterval         time.Duration
	EnhancedInsightInterval time.Duration
	RegenerateDelay         time.Duration
}

// DefaultTimings returns the stock intervals.
func DefaultTimings() Timings {
	return Timings{
		KPIInterval:             defaultKPIInterval,
		InsightInterval:         defaultInsightInterval,
		EnhancedInsightInterval: 10 * time.Second,
		RegenerateDelay:         defaultRegenerateDelay,
	}
}

func (t Timings) withDefaults() Timings {
	def := DefaultTimings()
	if t.KPIInterval <= 0 {
		t.KPIInterval = def.KPIInterval
	}
	if t.InsightInterval <= 0 {
		t.InsightInterval = def.InsightInterval
	}
	if t.EnhancedInsightInterval <= 0 {
		t.EnhancedInsightInterval = def.EnhancedInsightInterval
	}
	if t.RegenerateDelay <= 0 {
		t.RegenerateDelay = def.RegenerateDelay
	}
	return t
}

// CardDeps are the collaborators handed to card factories.
type CardDeps struct {
	Scheduler Scheduler
	Timings   Timings
	Rand      *rand.Rand
	// Notify reports a card-local state change (timer tick, loading flip).
	Notify func(card CardID, reason string)
}

func (d CardDeps) notifier(id CardID) func(string) {
	if d.Notify == nil {
		return nil
	}
	return func(reason string) { d.Notify(id, reason) }
}

// CardFactory builds a fresh card instance on mount.
type CardFactory func(deps CardDeps) CardView

// staticCard provides ID and a no-op Close for cards without timers.
type staticCard struct {
	id CardID
}

func (c staticCard) ID() CardID { return c.id }

func (staticCard) Close() {}

func unsupported(id CardID, action string) error {
	return wrapCardErr(id, ErrUnsupportedAction, action)
}
