package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/game"
	"github.com/lixenwraith/vi-runner/input"
	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/render"
)

// inputFrame holds the snapshot taken at the start of the current tick
type inputFrame struct {
	mu    sync.Mutex
	state input.State
}

func (f *inputFrame) set(s input.State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *inputFrame) get() input.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// provideLogger writes JSON to the configured file; without one logs are dropped
// since the terminal belongs to the renderer
func provideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.Log.Path == "" {
		return log.NewNop(), func() {}, nil
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger, err := log.New(level, cfg.Log.Path)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideScreen() (tcell.Screen, func(), error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, nil, err
	}
	screen.HideCursor()
	return screen, screen.Fini, nil
}

func provideKeyboard() *input.Keyboard {
	return input.NewKeyboard(input.DefaultKeyTable(), input.DefaultHold)
}

func provideFrame() *inputFrame {
	return &inputFrame{}
}

// provideSounds opens the speaker when enabled; failure is non-fatal and leaves the game silent
func provideSounds(cfg *config.Config, logger *log.Logger) (*audio.SoundManager, func()) {
	sm := audio.NewSoundManager(cfg.Audio.Volume, logger)
	if cfg.Audio.Enabled {
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable", log.Err(err))
		}
	}
	return sm, sm.Cleanup
}

func provideSession(cfg *config.Config, logger *log.Logger, frame *inputFrame, sounds *audio.SoundManager) (*game.Session, error) {
	return game.NewSession(cfg, logger, game.WithInput(frame.get), game.WithSounds(sounds))
}

func provideRenderer(screen tcell.Screen) *render.TerminalRenderer {
	return render.NewTerminalRenderer(screen)
}
