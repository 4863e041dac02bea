package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/navgrid/render"
)

func TestSchedulerStepAppliesTasksFirst(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s, _ := NewScheduler(w, NewPausableClock(nil), step)

	var ticksSeen uint64 = 99
	require.True(t, s.Submit(func(w *World) {
		ticksSeen = w.ticks
		w.SetMessage("reloaded")
	}))
	s.Step()

	assert.Zero(t, ticksSeen)
	assert.Equal(t, uint64(1), s.Ticks())
	assert.Equal(t, uint64(1), w.Ticks())
	w.View(false, func(f render.Frame) {
		assert.Equal(t, "reloaded", f.Status.Message)
	})
}

func TestSchedulerSubmitFull(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s, _ := NewScheduler(w, NewPausableClock(nil), step)

	accepted := 0
	for i := 0; i < 32; i++ {
		if s.Submit(func(*World) {}) {
			accepted++
		}
	}
	assert.Equal(t, 16, accepted)
}

func TestSchedulerRunsAndStops(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s, updateDone := NewScheduler(w, NewPausableClock(nil), 2*time.Millisecond)

	s.Start()
	for i := 0; i < 3; i++ {
		select {
		case <-updateDone:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not tick")
		}
	}
	s.Stop()
	s.Stop()

	ticks := s.Ticks()
	assert.GreaterOrEqual(t, ticks, uint64(3))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, ticks, s.Ticks())
	assert.Equal(t, ticks, w.Ticks())
}

func TestSchedulerPausedRunsTasksOnly(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	clock := NewPausableClock(nil)
	clock.Pause()
	s, _ := NewScheduler(w, clock, 2*time.Millisecond)

	s.Start()
	defer s.Stop()

	done := make(chan struct{})
	require.True(t, s.Submit(func(*World) { close(done) }))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task not applied while paused")
	}

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, s.Ticks())

	clock.Resume()
	assert.Eventually(t, func() bool { return s.Ticks() > 0 }, 2*time.Second, time.Millisecond)
}
