package game

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/input"
	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/registry"
	"github.com/lixenwraith/vi-runner/vmath"
)

var ErrNotStarted = errors.New("session not started")

// StateLogInterval is the tick period of the debug world summary
const StateLogInterval = 300

// SoundPlayer receives collision and action cues
type SoundPlayer interface {
	Play(audio.Sound)
}

type silent struct{}

func (silent) Play(audio.Sound) {}

// Option configures a Session
type Option func(*Session)

// WithInput sets the device snapshot source read by the player control
func WithInput(src func() input.State) Option {
	return func(s *Session) { s.input = src }
}

// WithSounds routes cues to p
func WithSounds(p SoundPlayer) Option {
	return func(s *Session) { s.sounds = p }
}

// Session is one run of the game: a world, its sealed spawn registry, score and lives.
// All methods run on the simulation goroutine.
type Session struct {
	cfg      *config.Config
	logger   *log.Logger
	world    *engine.World
	registry *registry.Registry
	input    func() input.State
	sounds   SoundPlayer

	player  *engine.Object
	score   int
	lives   int
	elapsed float64
	waves   []wave
	started bool
	over    bool
}

// NewSession builds the world, registers content types and collision rules
func NewSession(cfg *config.Config, logger *log.Logger, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = log.OrNop(logger)

	s := &Session{
		cfg:    cfg,
		logger: logger.Named("session"),
		input:  func() input.State { return input.State{} },
		sounds: silent{},
		lives:  cfg.Player.Lives,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.world = engine.NewWorld(
		engine.WithLogger(logger),
		engine.WithViewport(vmath.RectWH(cfg.Viewport.Width, cfg.Viewport.Height)),
		engine.WithCellSize(cfg.CellSize),
	)

	reg, err := registry.Load(s.SpawnTable(), registry.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("spawn table: %w", err)
	}
	s.registry = reg

	if err := s.registerRules(); err != nil {
		return nil, fmt.Errorf("collision rules: %w", err)
	}
	return s, nil
}

func (s *Session) World() *engine.World         { return s.world }
func (s *Session) Registry() *registry.Registry { return s.registry }
func (s *Session) Player() *engine.Object       { return s.player }
func (s *Session) Score() int                   { return s.score }
func (s *Session) Lives() int                   { return s.lives }
func (s *Session) Over() bool                   { return s.over }
func (s *Session) Elapsed() float64             { return s.elapsed }
func (s *Session) PendingWaves() int            { return len(s.waves) }

// Start spawns the player and plans the configured waves
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	waves, err := s.planWaves(s.cfg.Waves)
	if err != nil {
		return err
	}

	p := s.cfg.Player
	player, err := s.registry.SpawnAndAttach(s.world, TypePlayer, registry.NewSpawnData(p.X, p.Y))
	if err != nil {
		return err
	}
	s.player = player
	s.waves = waves
	s.started = true
	s.logger.Info("session started",
		log.Int("waves", len(waves)),
		log.Int("lives", s.lives),
	)
	return nil
}

// Tick releases due waves and advances the world by dt seconds
func (s *Session) Tick(dt float64) error {
	if !s.started {
		return ErrNotStarted
	}
	if s.over {
		return nil
	}
	s.elapsed += dt
	s.releaseWaves()
	s.world.Tick(dt)

	if s.lives <= 0 && !s.over {
		s.over = true
		s.logger.Info("game over",
			log.Int("score", s.score),
			log.Uint64("tick", s.world.TickCount()),
		)
		s.logState()
	} else if s.world.TickCount()%StateLogInterval == 0 {
		s.logState()
	}
	return nil
}

// Stop tears the world down, firing every detach hook
func (s *Session) Stop() {
	s.logState()
	s.world.Clear()
	s.player = nil
}

// logState writes the world digest and collision counters at debug level
func (s *Session) logState() {
	if !s.logger.Enabled(log.LevelDebug) {
		return
	}
	n := s.world.Collisions()
	s.logger.Debug("world state",
		log.Uint64("tick", s.world.TickCount()),
		log.Int("objects", s.world.Len()),
		log.Int("contacts", n.Contacts()),
		log.Int("pairs_tested", n.PairsTested()),
		log.String("digest", fmt.Sprintf("%016x", s.world.Digest())),
	)
}
