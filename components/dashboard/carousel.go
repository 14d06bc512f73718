package dashboard

import (
	"fmt"
	"sync"
	"time"
)

const (
	defaultInsightInterval = 8 * time.Second
	defaultRegenerateDelay = 2 * time.Second
)

// CarouselOptions configures an InsightCarousel.
type CarouselOptions struct {
	Deck            []InsightRecord
	Interval        time.Duration
	RegenerateDelay time.Duration
	Scheduler       Scheduler
	// OnChange is invoked after every state change, outside the carousel lock.
	OnChange func(reason string)
}

// InsightCarousel cycles through a fixed deck of insights on a timer, with
// manual selection, category filtering and a simulated regenerate action.
//
// The auto-advance task is torn down and recreated whenever the selection or
// the filtered deck changes, so a scheduled tick never acts on a stale range.
type InsightCarousel struct {
	mu        sync.Mutex
	deck      []InsightRecord
	filter    CategoryFilter
	filtered  []int
	index     int
	loading   bool
	started   bool
	disposed  bool
	tick      Task
	tickGen   int
	regen     Task
	interval  time.Duration
	delay     time.Duration
	scheduler Scheduler
	onChange  func(string)
}

// CarouselSnapshot is the render-ready state of a carousel.
type CarouselSnapshot struct {
	Index    int            `json:"index"`
	Count    int            `json:"count"`
	Loading  bool           `json:"loading"`
	Filter   string         `json:"filter"`
	Position string         `json:"position"`
	Current  InsightRecord  `json:"current"`
	Counts   map[string]int `json:"counts"`
}

// NewInsightCarousel builds an idle carousel; call Start to begin auto-advance.
func NewInsightCarousel(opts CarouselOptions) *InsightCarousel {
	if opts.Interval <= 0 {
		opts.Interval = defaultInsightInterval
	}
	if opts.RegenerateDelay <= 0 {
		opts.RegenerateDelay = defaultRegenerateDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewClockScheduler()
	}
	c := &InsightCarousel{
		deck:      append([]InsightRecord(nil), opts.Deck...),
		interval:  opts.Interval,
		delay:     opts.RegenerateDelay,
		scheduler: opts.Scheduler,
		onChange:  opts.OnChange,
	}
	c.filtered = c.filterLocked(AllCategories)
	return c
}

// Start schedules auto-advance. Calling Start more than once is a no-op.
func (c *InsightCarousel) Start() {
	c.mu.Lock()
	if c.started || c.disposed {
		c.mu.Unlock()
		return
	}
	c.started = true
	old := c.rescheduleLocked()
	c.mu.Unlock()
	stopTask(old)
}

// Tick advances to the next insight as the timer would.
func (c *InsightCarousel) Tick() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	changed := c.advanceLocked()
	c.mu.Unlock()
	if changed {
		c.notify("tick")
	}
}

// Select jumps to the i-th insight of the filtered deck and restarts the timer.
func (c *InsightCarousel) Select(i int) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrViewDisposed
	}
	if i < 0 || i >= len(c.filtered) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(c.filtered))
	}
	c.index = i
	old := c.rescheduleLocked()
	c.mu.Unlock()
	stopTask(old)
	c.notify("select")
	return nil
}

// SetCategory refilters the deck, resets the index to 0 and restarts the timer.
func (c *InsightCarousel) SetCategory(filter CategoryFilter) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrViewDisposed
	}
	c.filter = filter
	c.filtered = c.filterLocked(filter)
	c.index = 0
	old := c.rescheduleLocked()
	c.mu.Unlock()
	stopTask(old)
	c.notify("filter")
	return nil
}

// Regenerate enters the loading state and, after the configured delay,
// advances to the next insight. Only one regeneration may be pending.
func (c *InsightCarousel) Regenerate() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrViewDisposed
	}
	if c.loading {
		c.mu.Unlock()
		return ErrInsightBusy
	}
	c.loading = true
	c.regen = c.scheduler.After(c.delay, c.finishRegenerate)
	c.mu.Unlock()
	c.notify("regenerate.start")
	return nil
}

func (c *InsightCarousel) finishRegenerate() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.loading = false
	c.regen = nil
	c.advanceLocked()
	c.mu.Unlock()
	c.notify("regenerate.finish")
}

// Current returns the selected insight, falling back to the first insight of
// the unfiltered deck when the filtered deck is empty.
func (c *InsightCarousel) Current() InsightRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

// Index reports the position within the filtered deck.
func (c *InsightCarousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Loading reports whether a regeneration is pending.
func (c *InsightCarousel) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Filtered returns the insights passing the active filter.
func (c *InsightCarousel) Filtered() []InsightRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]InsightRecord, len(c.filtered))
	for i, idx := range c.filtered {
		out[i] = c.deck[idx]
	}
	return out
}

// Snapshot captures the render-ready state.
func (c *InsightCarousel) Snapshot() CarouselSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := map[string]int{AllCategories.Key(): len(c.deck)}
	for _, insight := range c.deck {
		counts[insight.Category.String()]++
	}
	position := fmt.Sprintf("%d of %d", c.index+1, len(c.filtered))
	if len(c.filtered) == 0 {
		position = "0 of 0"
	}
	return CarouselSnapshot{
		Index:    c.index,
		Count:    len(c.filtered),
		Loading:  c.loading,
		Filter:   c.filter.Key(),
		Position: position,
		Current:  c.currentLocked(),
		Counts:   counts,
	}
}

// Close stops every pending task. No state changes or notifications happen
// after Close returns.
func (c *InsightCarousel) Close() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	tick, regen := c.tick, c.regen
	c.tick, c.regen = nil, nil
	c.mu.Unlock()
	stopTask(tick)
	stopTask(regen)
}

func (c *InsightCarousel) filterLocked(filter CategoryFilter) []int {
	out := make([]int, 0, len(c.deck))
	for i, insight := range c.deck {
		if filter.Matches(insight) {
			out = append(out, i)
		}
	}
	return out
}

func (c *InsightCarousel) currentLocked() InsightRecord {
	if c.index >= 0 && c.index < len(c.filtered) {
		return c.deck[c.filtered[c.index]]
	}
	if len(c.deck) > 0 {
		return c.deck[0]
	}
	return InsightRecord{}
}

func (c *InsightCarousel) advanceLocked() bool {
	n := len(c.filtered)
	if n == 0 {
		c.index = 0
		return false
	}
	c.index = (c.index + 1) % n
	return true
}

// rescheduleLocked swaps the auto-advance task and returns the previous one,
// which the caller stops after releasing the lock.
func (c *InsightCarousel) rescheduleLocked() Task {
	old := c.tick
	c.tick = nil
	c.tickGen++
	if !c.started || len(c.filtered) == 0 {
		return old
	}
	gen := c.tickGen
	c.tick = c.scheduler.Every(c.interval, func() { c.onTick(gen) })
	return old
}

func (c *InsightCarousel) onTick(gen int) {
	c.mu.Lock()
	if c.disposed || gen != c.tickGen {
		c.mu.Unlock()
		return
	}
	changed := c.advanceLocked()
	c.mu.Unlock()
	if changed {
		c.notify("tick")
	}
}

func (c *InsightCarousel) notify(reason string) {
	if c.onChange == nil {
		return
	}
	c.mu.Lock()
	disposed := c.disposed
	c.mu.Unlock()
	if !disposed {
		c.onChange(reason)
	}
}

func stopTask(task Task) {
	if task != nil {
		task.Stop()
	}
}
