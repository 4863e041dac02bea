package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/navgrid/core"
	"github.com/lixenwraith/navgrid/parameter"
)

// Task runs against the world at the start of a tick
type Task func(w *World)

// Scheduler drives World.Tick on a fixed simulation step
// Handles pause-aware scheduling without busy-wait
type Scheduler struct {
	world *World
	clock *PausableClock

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time // Next tick deadline for drift correction

	tickCount atomic.Uint64
	mu        sync.Mutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Submitted work, applied before the next tick and while paused
	tasks chan Task

	// Frame synchronization
	updateDone chan<- struct{}
}

// NewScheduler creates a scheduler and returns the channel signalled after every tick
func NewScheduler(world *World, clock *PausableClock, tickInterval time.Duration) (*Scheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	s := &Scheduler{
		world:        world,
		clock:        clock,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		tasks:        make(chan Task, 16),
		updateDone:   updateDone,
	}
	return s, updateDone
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// Submit queues t for the scheduler goroutine; false when the queue is full
func (s *Scheduler) Submit(t Task) bool {
	select {
	case s.tasks <- t:
		return true
	default:
		return false
	}
}

// Ticks returns how many ticks have run
func (s *Scheduler) Ticks() uint64 {
	return s.tickCount.Load()
}

// Step runs one tick synchronously, for use when the loop is not started
func (s *Scheduler) Step() {
	s.processTick()
	s.tickCount.Add(1)
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	s.mu.Lock()
	s.nextTickDeadline = s.clock.Now().Add(s.tickInterval)
	s.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	maxBehind := s.tickInterval * parameter.MaxCatchUpTicks

	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if s.clock.IsPaused() {
			// Reloads still apply while paused
			s.runTasks()
			sleepDuration = s.tickInterval * 2
		} else {
			simNow := s.clock.Now()

			s.mu.Lock()
			deadline := s.nextTickDeadline
			s.mu.Unlock()

			if !simNow.Before(deadline) {
				s.processTick()

				s.mu.Lock()
				s.nextTickDeadline = s.nextTickDeadline.Add(s.tickInterval)
				if simNow.Sub(s.nextTickDeadline) > maxBehind {
					s.nextTickDeadline = simNow.Add(s.tickInterval)
				}
				deadline = s.nextTickDeadline
				s.mu.Unlock()

				s.tickCount.Add(1)

				select {
				case s.updateDone <- struct{}{}:
				default:
				}

				sleepDuration = max(deadline.Sub(s.clock.Now()), 0)
			} else {
				sleepDuration = deadline.Sub(simNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-s.stopChan:
				return
			}
		}
	}
}

// processTick applies pending tasks then advances the world one step
func (s *Scheduler) processTick() {
	s.runTasks()
	s.world.Tick(s.tickInterval)
}

func (s *Scheduler) runTasks() {
	for {
		select {
		case t := <-s.tasks:
			t(s.world)
		default:
			return
		}
	}
}
