package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Category is a reminder stream driven by the scheduler.
type Category string

const (
	CategoryHealth Category = "health"
	CategoryTasks  Category = "tasks"
	CategoryGoals  Category = "goals"
)

// Categories lists every stream the scheduler drives, in dispatch-agnostic
// order.
var Categories = []Category{CategoryHealth, CategoryTasks, CategoryGoals}

// State of a single category.
type State int

const (
	StateUnarmed State = iota
	StateArmed
	StateFiring
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateFiring:
		return "firing"
	default:
		return "unarmed"
	}
}

// DefaultRearmInterval is how often every category is recomputed and
// re-armed, measured from scheduler start.
const DefaultRearmInterval = 24 * time.Hour

// Config is the reminder configuration handed over by the settings layer.
// The scheduler never mutates it; a new Apply fully supersedes all prior
// timers.
type Config struct {
	Enabled  bool
	BotToken string
	ChatID   string
	Times    map[Category]string // "HH:MM" local wall-clock time per category
}

// Dispatcher delivers one reminder. Errors are logged and absorbed; the next
// scheduled occurrence is the retry.
type Dispatcher interface {
	SendReminder(ctx context.Context, category string) error
}

// Scheduler keeps at most one live one-shot timer per category, pointing at
// that category's next occurrence for today, and re-arms everything once per
// re-arm interval. On the initial pass a category whose time already passed
// stays unarmed; the daily pass rolls a passed time over to the next day.
type Scheduler struct {
	dispatcher Dispatcher
	clock      Clock
	rearmEvery time.Duration

	mu        sync.Mutex
	cfg       Config
	running   bool
	gen       uint64 // arm-pass generation; stale timers ignore their fire
	stopCh    chan struct{}
	armCancel chan struct{}
	timers    map[Category]Timer
	states    map[Category]State
	wg        sync.WaitGroup
}

func New(dispatcher Dispatcher) *Scheduler {
	s := &Scheduler{
		dispatcher: dispatcher,
		clock:      realClock{},
		rearmEvery: DefaultRearmInterval,
		timers:     make(map[Category]Timer),
		states:     make(map[Category]State),
	}
	for _, cat := range Categories {
		s.states[cat] = StateUnarmed
	}
	return s
}

// Start arms every configured category and begins the daily re-arm loop.
// It returns immediately. A disabled config, or one without a bot token,
// leaves the scheduler stopped with no timers armed.
func (s *Scheduler) Start(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	if !cfg.Enabled || cfg.BotToken == "" {
		return
	}
	s.cfg = cfg
	s.running = true
	s.stopCh = make(chan struct{})
	s.armAllLocked(false)
	// The ticker is created here, not in the loop goroutine, so the
	// re-arm interval is anchored to the start time.
	ticker := s.clock.NewTicker(s.rearmEvery)
	s.wg.Add(1)
	go s.rearmLoop(s.stopCh, ticker)
}

// Stop cancels every live timer and the re-arm loop. No timer fires after
// Stop returns; a dispatch already in flight is allowed to complete first.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.gen++
	close(s.stopCh)
	if s.armCancel != nil {
		close(s.armCancel)
		s.armCancel = nil
	}
	for cat, t := range s.timers {
		t.Stop()
		delete(s.timers, cat)
	}
	for _, cat := range Categories {
		s.states[cat] = StateUnarmed
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Apply replaces the current configuration: all existing timers are torn
// down and the scheduler restarts with cfg.
func (s *Scheduler) Apply(cfg Config) {
	s.Stop()
	s.Start(cfg)
}

// Running reports whether the re-arm loop is live.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// State returns the current state of one category.
func (s *Scheduler) State(cat Category) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[cat]
}

// armAllLocked supersedes all prior timers and arms each configured
// category. The initial pass arms only times still in the future today; a
// category whose time already passed waits for the daily pass, which rolls
// over to the next occurrence. Caller holds s.mu.
func (s *Scheduler) armAllLocked(rollover bool) {
	s.gen++
	if s.armCancel != nil {
		close(s.armCancel)
	}
	s.armCancel = make(chan struct{})
	for cat, t := range s.timers {
		t.Stop()
		delete(s.timers, cat)
	}

	now := s.clock.Now()
	for _, cat := range Categories {
		s.states[cat] = StateUnarmed
		spec, ok := s.cfg.Times[cat]
		if !ok {
			continue
		}
		hour, minute, err := ParseTimeOfDay(spec)
		if err != nil {
			log.Printf("scheduler: skipping %s: %v", cat, err)
			continue
		}
		fireAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !fireAt.After(now) {
			if !rollover {
				// Already passed today; the next daily pass
				// picks it up.
				continue
			}
			fireAt = fireAt.AddDate(0, 0, 1)
		}
		timer := s.clock.NewTimer(fireAt.Sub(now))
		s.timers[cat] = timer
		s.states[cat] = StateArmed
		s.wg.Add(1)
		go s.await(cat, timer, s.gen, s.armCancel)
	}
}

func (s *Scheduler) await(cat Category, timer Timer, gen uint64, cancel <-chan struct{}) {
	defer s.wg.Done()
	select {
	case <-timer.C():
		s.fire(cat, gen)
	case <-cancel:
		timer.Stop()
	}
}

func (s *Scheduler) fire(cat Category, gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.running {
		s.mu.Unlock()
		return
	}
	s.states[cat] = StateFiring
	delete(s.timers, cat)
	s.mu.Unlock()

	if err := s.dispatcher.SendReminder(context.Background(), string(cat)); err != nil {
		log.Printf("scheduler: %s reminder dispatch failed: %v", cat, err)
	}

	s.mu.Lock()
	if gen == s.gen {
		s.states[cat] = StateUnarmed
	}
	s.mu.Unlock()
}

func (s *Scheduler) rearmLoop(stopCh <-chan struct{}, ticker Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C():
			s.mu.Lock()
			if s.running {
				s.armAllLocked(true)
			}
			s.mu.Unlock()
		case <-stopCh:
			return
		}
	}
}

// ParseTimeOfDay parses a 24-hour "HH:MM" wall-clock time.
func ParseTimeOfDay(spec string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", spec)
	}
	return t.Hour(), t.Minute(), nil
}
