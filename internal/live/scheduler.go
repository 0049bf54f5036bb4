package live

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is one unit of recurring polling work.
type Task func(ctx context.Context)

// Scheduler owns named recurring timers. Start is idempotent per
// name and Stop tolerates names that are not running. Each firing
// runs the task on its own goroutine: a tick that outlasts its period
// may overlap the next one, which is fine for idempotent read-only
// snapshot work.
type Scheduler struct {
	ctx   context.Context
	mu    sync.Mutex
	stops map[string]chan struct{}
	log   *logrus.Entry
}

func NewScheduler(ctx context.Context, log *logrus.Entry) *Scheduler {
	return &Scheduler{
		ctx:   ctx,
		stops: make(map[string]chan struct{}),
		log:   log,
	}
}

// Start begins firing task every period under the given name. If a
// timer with that name is already running, Start does nothing.
func (s *Scheduler) Start(name string, period time.Duration, task Task) {
	s.mu.Lock()
	if _, ok := s.stops[name]; ok {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stops[name] = stop
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"task": name, "period": period}).Info("polling started")

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				go task(s.ctx)
			}
		}
	}()
}

// Stop cancels the named timer. Safe to call when it is not running.
func (s *Scheduler) Stop(name string) {
	s.mu.Lock()
	stop, ok := s.stops[name]
	if ok {
		delete(s.stops, name)
	}
	s.mu.Unlock()

	if ok {
		close(stop)
		s.log.WithField("task", name).Info("polling stopped")
	}
}

// StopAll cancels every running timer.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	stops := s.stops
	s.stops = make(map[string]chan struct{})
	s.mu.Unlock()

	for name, stop := range stops {
		close(stop)
		s.log.WithField("task", name).Info("polling stopped")
	}
}

// Running reports whether a timer is active under name.
func (s *Scheduler) Running(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stops[name]
	return ok
}
