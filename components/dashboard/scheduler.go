package dashboard

import (
	"sort"
	"sync"
	"time"
)

// Task is a scheduled callback that can be cancelled.
type Task interface {
	// Stop cancels future runs and waits for an in-flight run to return.
	// It must not be called from the task's own callback.
	Stop()
}

// Scheduler runs periodic and delayed callbacks for the view objects.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
	After(delay time.Duration, fn func()) Task
}

type clockScheduler struct{}

// NewClockScheduler returns a Scheduler backed by real timers. Each task owns a
// goroutine that exits once the task is stopped or, for After, has fired.
func NewClockScheduler() Scheduler {
	return clockScheduler{}
}

type clockTask struct {
	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func newClockTask() *clockTask {
	return &clockTask{stop: make(chan struct{}), done: make(chan struct{})}
}

func (t *clockTask) Stop() {
	t.once.Do(func() { close(t.stop) })
	<-t.done
}

func (clockScheduler) Every(interval time.Duration, fn func()) Task {
	task := newClockTask()
	ticker := time.NewTicker(interval)
	go func() {
		defer close(task.done)
		defer ticker.Stop()
		for {
			select {
			case <-task.stop:
				return
			case <-ticker.C:
				select {
				case <-task.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return task
}

func (clockScheduler) After(delay time.Duration, fn func()) Task {
	task := newClockTask()
	timer := time.NewTimer(delay)
	go func() {
		defer close(task.done)
		defer timer.Stop()
		select {
		case <-task.stop:
		case <-timer.C:
			fn()
		}
	}()
	return task
}

// ManualScheduler is a deterministic Scheduler driven by Advance. Callbacks
// run synchronously on the goroutine calling Advance, outside the scheduler
// lock, so they may schedule or stop other tasks.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks map[int]*manualTask
}

type manualTask struct {
	sched    *ManualScheduler
	id       int
	due      time.Time
	interval time.Duration
	fn       func()
}

// NewManualScheduler starts the fake clock at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start, tasks: map[int]*manualTask{}}
}

// Now reports the fake clock time.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending reports how many tasks are still scheduled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.schedule(interval, interval, fn)
}

func (s *ManualScheduler) After(delay time.Duration, fn func()) Task {
	return s.schedule(delay, 0, fn)
}

func (s *ManualScheduler) schedule(delay, interval time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	task := &manualTask{
		sched:    s,
		id:       s.seq,
		due:      s.now.Add(delay),
		interval: interval,
		fn:       fn,
	}
	s.tasks[task.id] = task
	return task
}

// Advance moves the clock forward by d, firing every task that falls due in
// order of due time (ties fire in scheduling order).
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			delete(s.tasks, next.id)
		}
		fn := next.fn
		s.mu.Unlock()
		fn()
	}
}

func (s *ManualScheduler) nextDue(target time.Time) *manualTask {
	due := make([]*manualTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !task.due.After(target) {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}

func (t *manualTask) Stop() {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	delete(t.sched.tasks, t.id)
}
