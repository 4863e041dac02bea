package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/navgrid/audio"
	"github.com/lixenwraith/navgrid/config"
	"github.com/lixenwraith/navgrid/core"
	"github.com/lixenwraith/navgrid/engine"
	"github.com/lixenwraith/navgrid/parameter"
	"github.com/lixenwraith/navgrid/render"
)

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Interactive simulation in the terminal",
		Long: `Keys:
  arrows, hjkl  move the target one cell
  mouse click   place the target
  p, space      pause
  c             cost-to-target overlay
  r             force a re-plan
  m             mute
  q, esc        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), o)
		},
	}
}

// sim wires a world to the terminal: scheduler, view, input and sound
type sim struct {
	world  *engine.World
	clock  *engine.PausableClock
	sched  *engine.Scheduler
	view   *render.GridView
	screen tcell.Screen
	sounds *audio.SoundManager
	audio  bool // Enabled by config
	muted  bool
}

func newSim(screen tcell.Screen, o *options) (*sim, <-chan struct{}, error) {
	sounds := audio.NewSoundManager(o.cfg.Sound(), slog.Default())
	world, err := engine.NewWorld(o.cfg, o.scene,
		engine.WithLogger(slog.Default()),
		engine.WithCues(sounds))
	if err != nil {
		return nil, nil, err
	}

	clock := engine.NewPausableClock(nil)
	sched, updateDone := engine.NewScheduler(world, clock, o.cfg.Sim.TickInterval)
	return &sim{
		world:  world,
		clock:  clock,
		sched:  sched,
		view:   render.NewGridView(screen),
		screen: screen,
		sounds: sounds,
		audio:  o.cfg.Audio.Enabled,
	}, updateDone, nil
}

func runInteractive(ctx context.Context, o *options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.RegisterTerminal(screen)
	defer func() {
		screen.Fini()
		core.RegisterTerminal(nil)
	}()
	screen.EnableMouse()
	screen.HideCursor()

	s, updateDone, err := newSim(screen, o)
	if err != nil {
		return err
	}
	defer s.sounds.Cleanup()

	s.sched.Start()
	defer s.sched.Stop()

	var reloads <-chan config.Reload
	if o.configPath != "" {
		w, err := config.Watch(o.configPath, parameter.ConfigReloadDebounce, slog.Default())
		if err != nil {
			slog.Warn("config watch unavailable", "path", o.configPath, "error", err)
		} else {
			defer w.Close()
			reloads = w.Events()
		}
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() { screen.ChannelEvents(events, quit) })

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok || !s.handle(ev) {
				return nil
			}
			dirty = true

		case r, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			s.applyReload(r)
			dirty = true

		case <-updateDone:
			dirty = true

		case <-frameTicker.C:
			if dirty {
				s.draw()
				dirty = false
			}
		}
	}
}

func (s *sim) draw() {
	s.world.View(s.clock.IsPaused(), s.view.Draw)
}

// handle applies one input event; false means quit
func (s *sim) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return true
		}
		if x, y, ok := s.view.ScreenToCell(ev.Position()); ok {
			s.world.SetTargetCell(x, y)
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.world.NudgeTarget(0, 1)
		case tcell.KeyDown:
			s.world.NudgeTarget(0, -1)
		case tcell.KeyLeft:
			s.world.NudgeTarget(-1, 0)
		case tcell.KeyRight:
			s.world.NudgeTarget(1, 0)
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}
	}
	return true
}

func (s *sim) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'k':
		s.world.NudgeTarget(0, 1)
	case 'j':
		s.world.NudgeTarget(0, -1)
	case 'h':
		s.world.NudgeTarget(-1, 0)
	case 'l':
		s.world.NudgeTarget(1, 0)
	case 'p', ' ':
		s.clock.Toggle()
	case 'c':
		on := s.world.ToggleCosts()
		if s.view.ToggleCosts() != on {
			s.view.ToggleCosts()
		}
	case 'r':
		s.world.Replan()
	case 'm':
		s.muted = !s.muted
		s.sounds.SetEnabled(s.audio && !s.muted)
		if s.muted {
			s.world.SetMessage("muted")
		} else {
			s.world.SetMessage("sound on")
		}
	}
	return true
}

// applyReload hands a valid config to the scheduler; the scene is not reloaded
func (s *sim) applyReload(r config.Reload) {
	if r.Err != nil {
		s.world.SetMessage("config rejected")
		return
	}
	cfg := r.Config
	queued := s.sched.Submit(func(w *engine.World) {
		if err := w.Reload(cfg); err != nil {
			slog.Warn("world reload failed", "error", err)
			w.SetMessage("reload failed")
		}
	})
	if !queued {
		s.world.SetMessage("reload dropped, scheduler busy")
		return
	}
	s.audio = cfg.Audio.Enabled
	s.sounds.SetVolume(cfg.Audio.Volume)
	s.sounds.SetEnabled(s.audio && !s.muted)
}
