package dashboard

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const defaultKPIInterval = 5 * time.Second

// KPIBoardOptions configures the live KPI grid.
type KPIBoardOptions struct {
	Seeds     []KPISeed
	Interval  time.Duration
	Scheduler Scheduler
	// Rand supplies jitter; defaults to a time-seeded PCG source.
	Rand     *rand.Rand
	OnChange func(reason string)
}

// KPIBoard holds the headline KPI tiles and jitters their values on a timer
// to simulate live data.
type KPIBoard struct {
	mu        sync.Mutex
	seeds     []KPISeed
	values    []float64
	rng       *rand.Rand
	interval  time.Duration
	scheduler Scheduler
	task      Task
	disposed  bool
	onChange  func(string)
}

// NewKPIBoard builds a board from seeds.
func NewKPIBoard(opts KPIBoardOptions) *KPIBoard {
	if opts.Seeds == nil {
		opts.Seeds = KPISeeds()
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultKPIInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewClockScheduler()
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	values := make([]float64, len(opts.Seeds))
	for i, seed := range opts.Seeds {
		values[i] = seed.Value
	}
	return &KPIBoard{
		seeds:     append([]KPISeed(nil), opts.Seeds...),
		values:    values,
		rng:       opts.Rand,
		interval:  opts.Interval,
		scheduler: opts.Scheduler,
		onChange:  opts.OnChange,
	}
}

// Start begins periodic jitter.
func (b *KPIBoard) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.task != nil || b.disposed {
		return
	}
	b.task = b.scheduler.Every(b.interval, b.Jitter)
}

// Jitter nudges every tile by a random amount within its seed's jitter
// bound. Whole-valued tiles move by whole steps.
func (b *KPIBoard) Jitter() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	for i, seed := range b.seeds {
		b.values[i] += jitterStep(b.rng.Float64(), seed.Jitter, seed.Whole)
	}
	b.mu.Unlock()
	if b.onChange != nil {
		b.onChange("jitter")
	}
}

func jitterStep(r, bound float64, whole bool) float64 {
	if whole {
		return math.Floor(r*2*bound) - bound
	}
	return r*2*bound - bound
}

// Values returns the current tile values keyed by KPI key.
func (b *KPIBoard) Values() map[string]float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]float64, len(b.values))
	for i, seed := range b.seeds {
		out[seed.Key] = b.values[i]
	}
	return out
}

// Tiles renders each KPI with its formatted value.
func (b *KPIBoard) Tiles(f Formatter) []WidgetData {
	b.mu.Lock()
	defer b.mu.Unlock()
	tiles := make([]WidgetData, len(b.seeds))
	for i, seed := range b.seeds {
		tiles[i] = WidgetData{
			"key":     seed.Key,
			"title":   seed.Title,
			"value":   formatKPI(f, seed, b.values[i]),
			"raw":     b.values[i],
			"change":  seed.Change,
			"trend":   seed.Trend.String(),
			"tone":    seed.Trend.Style().Tone,
			"icon":    seed.Icon,
			"caption": seed.Caption,
		}
	}
	return tiles
}

func formatKPI(f Formatter, seed KPISeed, v float64) string {
	switch {
	case seed.Currency:
		return f.Currency(v)
	case seed.Percent:
		return f.Percent(v, 2)
	default:
		return f.Count(v)
	}
}

// Close stops the jitter task.
func (b *KPIBoard) Close() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	task := b.task
	b.task = nil
	b.mu.Unlock()
	stopTask(task)
}
