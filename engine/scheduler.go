package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/countdown/core"
)

// DefaultTickInterval is the period of the countdown decrement action
const DefaultTickInterval = time.Second

// tickLagWarn is the delivery delay above which a fired tick is logged
const tickLagWarn = 250 * time.Millisecond

// Scheduler runs a repeating action at a fixed interval until its handle is stopped
// Actions are executed on the owner's goroutine, never concurrently with each other
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// Handle cancels one scheduled repeating action
type Handle interface {
	// Stop cancels the action; idempotent, no fire is executed after it returns
	Stop()
	// Active reports whether the action is still scheduled
	Active() bool
}

// LoopScheduler drives each action from a ticker goroutine and posts fires
// onto the owner's task channel, which the UI loop drains and executes
type LoopScheduler struct {
	tasks  chan<- func()
	clock  TimeProvider
	logger *zap.SugaredLogger

	wg          sync.WaitGroup
	outstanding atomic.Int64
}

// NewLoopScheduler creates a scheduler posting to tasks
func NewLoopScheduler(tasks chan<- func(), clock TimeProvider, logger *zap.SugaredLogger) *LoopScheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LoopScheduler{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// loopHandle is the cancellation handle of a LoopScheduler action
type loopHandle struct {
	active   atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
}

func (h *loopHandle) Stop() {
	h.stopOnce.Do(func() {
		h.active.Store(false)
		close(h.stopChan)
	})
}

func (h *loopHandle) Active() bool {
	return h.active.Load()
}

// Every starts a ticker goroutine for fn
// The posted task re-checks the handle on the loop goroutine, so a fire that
// raced with Stop is discarded
func (s *LoopScheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	h := &loopHandle{stopChan: make(chan struct{})}
	h.active.Store(true)

	task := func() {
		if h.active.Load() {
			fn()
		}
	}

	s.wg.Add(1)
	s.outstanding.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		defer s.outstanding.Add(-1)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.stopChan:
				return
			case firedAt := <-ticker.C:
				if lag := s.clock.Now().Sub(firedAt); lag > tickLagWarn {
					s.logger.Debugw("Tick delivered late", "lag", lag)
				}
				select {
				case s.tasks <- task:
				case <-h.stopChan:
					return
				}
			}
		}
	})

	return h
}

// Outstanding returns the number of ticker goroutines still running
func (s *LoopScheduler) Outstanding() int {
	return int(s.outstanding.Load())
}

// Wait blocks until every stopped action's goroutine has exited
func (s *LoopScheduler) Wait() {
	s.wg.Wait()
}
