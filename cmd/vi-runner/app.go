package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/game"
	"github.com/lixenwraith/vi-runner/input"
	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/render"
)

type app struct {
	cfg      *config.Config
	logger   *log.Logger
	screen   tcell.Screen
	keyboard *input.Keyboard
	frame    *inputFrame
	sounds   *audio.SoundManager
	session  *game.Session
	renderer *render.TerminalRenderer
}

func newApp(cfg *config.Config, logger *log.Logger, screen tcell.Screen, keyboard *input.Keyboard,
	frame *inputFrame, sounds *audio.SoundManager, session *game.Session, renderer *render.TerminalRenderer) *app {
	return &app{
		cfg:      cfg,
		logger:   logger,
		screen:   screen,
		keyboard: keyboard,
		frame:    frame,
		sounds:   sounds,
		session:  session,
		renderer: renderer,
	}
}

// run drives the session until quit, a signal, or a failing goroutine
func (a *app) run(parent context.Context) error {
	if err := a.session.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer a.session.Stop()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sched := engine.NewClockScheduler(func(dt float64) {
		if err := a.session.Tick(dt); err != nil {
			a.logger.Error("tick failed", log.Err(err))
			cancel()
		}
	}, a.cfg.TickInterval(), a.logger)

	sched.OnBeforeTick(func() {
		st := a.keyboard.Snapshot(time.Now())
		a.frame.set(st)
		a.applyControls(sched, st)
	})
	sched.OnAfterTick(func() {
		// Before hooks are skipped while paused
		if sched.IsPaused() {
			a.applyControls(sched, a.keyboard.Snapshot(time.Now()))
		}
		if a.keyboard.QuitRequested() {
			cancel()
			return
		}
		a.renderer.RenderFrame(a.session.World(), render.Status{
			Score:  a.session.Score(),
			Lives:  a.session.Lives(),
			Paused: sched.IsPaused(),
			Over:   a.session.Over(),
		})
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.guard(func() error { return a.keyboard.Run(gctx, a.screen) }))
	g.Go(a.guard(func() error { return sched.Run(gctx) }))
	err := g.Wait()

	a.logger.Info("session ended",
		log.Int("score", a.session.Score()),
		log.Uint64("ticks", sched.TickCount()),
		log.Float64("elapsed", a.session.Elapsed()),
		log.Int("pending_waves", a.session.PendingWaves()),
	)
	return err
}

// applyControls handles the keys that act on the runner rather than the game
func (a *app) applyControls(sched *engine.ClockScheduler, st input.State) {
	if st.Pause {
		paused := sched.TogglePause()
		a.logger.Debug("pause toggled", log.Bool("paused", paused))
	}
	if st.Mute {
		a.sounds.SetMuted(!a.sounds.Muted())
		a.logger.Debug("mute toggled", log.Bool("muted", a.sounds.Muted()))
	}
}

// guard restores the terminal before reporting a panic from a worker goroutine
func (a *app) guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				a.screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mVI-RUNNER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		return fn()
	}
}
