package dashboard

import (
	"sync"
	"time"
)

const defaultRefreshDelay = 2 * time.Second

// Controller change reasons.
const (
	ReasonTimeRange     = "time_range"
	ReasonTab           = "tab"
	ReasonRefreshStart  = "refresh.start"
	ReasonRefreshFinish = "refresh.finish"
)

// ControllerOptions configures a DashboardController.
type ControllerOptions struct {
	Scheduler    Scheduler
	RefreshDelay time.Duration
	// OnChange runs after every state change, outside the controller lock.
	OnChange func(reason string, state DashboardState)
}

// DashboardController owns the cross-card view state: the selected time
// range, the active tab and the refresh spinner.
type DashboardController struct {
	mu        sync.Mutex
	state     DashboardState
	scheduler Scheduler
	delay     time.Duration
	refresh   Task
	disposed  bool
	onChange  func(string, DashboardState)
}

// NewDashboardController starts at 7d on the overview tab, not refreshing.
func NewDashboardController(opts ControllerOptions) *DashboardController {
	if opts.Scheduler == nil {
		opts.Scheduler = NewClockScheduler()
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = defaultRefreshDelay
	}
	return &DashboardController{
		state:     DefaultDashboardState(),
		scheduler: opts.Scheduler,
		delay:     opts.RefreshDelay,
		onChange:  opts.OnChange,
	}
}

// State returns a copy of the current state.
func (c *DashboardController) State() DashboardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTimeRange selects one of the supported ranges.
func (c *DashboardController) SetTimeRange(key string) error {
	tr, err := ParseTimeRange(key)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrViewDisposed
	}
	c.state.TimeRange = tr
	state := c.state
	c.mu.Unlock()
	c.notify(ReasonTimeRange, state)
	return nil
}

// SetActiveTab selects one of the supported tabs and returns the previous one.
func (c *DashboardController) SetActiveTab(key string) (Tab, error) {
	tab, err := ParseTab(key)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return "", ErrViewDisposed
	}
	previous := c.state.ActiveTab
	c.state.ActiveTab = tab
	state := c.state
	c.mu.Unlock()
	c.notify(ReasonTab, state)
	return previous, nil
}

// TriggerRefresh raises the refresh flag and clears it after the configured
// delay. A second trigger while the flag is up fails with ErrRefreshInProgress.
func (c *DashboardController) TriggerRefresh() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrViewDisposed
	}
	if c.state.Refreshing {
		c.mu.Unlock()
		return ErrRefreshInProgress
	}
	c.state.Refreshing = true
	state := c.state
	c.refresh = c.scheduler.After(c.delay, c.finishRefresh)
	c.mu.Unlock()
	c.notify(ReasonRefreshStart, state)
	return nil
}

func (c *DashboardController) finishRefresh() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.state.Refreshing = false
	c.refresh = nil
	state := c.state
	c.mu.Unlock()
	c.notify(ReasonRefreshFinish, state)
}

// Close cancels a pending refresh. The controller rejects changes afterwards.
func (c *DashboardController) Close() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	task := c.refresh
	c.refresh = nil
	c.mu.Unlock()
	stopTask(task)
}

func (c *DashboardController) notify(reason string, state DashboardState) {
	if c.onChange != nil {
		c.onChange(reason, state)
	}
}
