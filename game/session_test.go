package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/component"
	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/control"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/input"
	"github.com/lixenwraith/vi-runner/kv"
	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/registry"
)

type recorder struct {
	played []audio.Sound
}

func (r *recorder) Play(s audio.Sound) { r.played = append(r.played, s) }

func (r *recorder) count(s audio.Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

// still enemies neither move nor shoot
func still(d registry.SpawnData) registry.SpawnData {
	return d.With(FieldSpeed, 0).With(FieldAmplitude, 0).With(FieldFireInterval, 0)
}

func newTestSession(t *testing.T, mutate func(*config.Config), opts ...Option) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Waves = nil
	cfg.CellSize = 0
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewSession(cfg, nil, opts...)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

func TestSession_SpawnTable(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, []string{TypeBlock, TypeBullet, TypeEnemy1, TypePlayer}, s.Registry().Names())
	late := func(registry.SpawnData) (*engine.Object, error) { return nil, nil }
	assert.ErrorIs(t, s.Registry().Register("Late", late), registry.ErrSealed)

	p := s.Player()
	require.NotNil(t, p)
	assert.Equal(t, TagPlayer, p.Tag())
	assert.Equal(t, 40.0, p.Position().X())
	assert.Equal(t, engine.StateActive, p.State())
	assert.Equal(t, 1, s.World().Len())
}

func TestSession_Enemy1Scenario(t *testing.T) {
	s := newTestSession(t, nil)

	o, err := s.Registry().SpawnAndAttach(s.World(), TypeEnemy1, registry.NewSpawnData(100, 50))
	require.NoError(t, err)

	assert.Equal(t, TagEnemy, o.Tag())
	assert.Equal(t, 100.0, o.Position().X())
	assert.Equal(t, 50.0, o.Position().Y())
	assert.Contains(t, s.World().Collidables(), o)

	require.NoError(t, s.Tick(1.0/60))
	st, ok := o.ControlState(control.KindEnemy)
	require.True(t, ok)
	assert.Equal(t, engine.ControlActive, st)
}

func TestSession_UnknownSpawn(t *testing.T) {
	s := newTestSession(t, nil)
	before := s.World().Len()

	_, err := s.Registry().SpawnAndAttach(s.World(), "Ghost", registry.NewSpawnData(0, 0))
	assert.ErrorIs(t, err, registry.ErrUnknownType)
	assert.Equal(t, before, s.World().Len())
}

func TestSession_BulletNeedsOwner(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.Registry().Spawn(TypeBullet, registry.NewSpawnData(0, 0))
	assert.ErrorIs(t, err, registry.ErrMissingField)
}

func TestSession_TickBeforeStart(t *testing.T) {
	s, err := NewSession(nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Tick(0.1), ErrNotStarted)
}

func TestSession_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TickRate = 0
	_, err := NewSession(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSession_PlayerShootsEnemy(t *testing.T) {
	st := input.State{Fire: true}
	sounds := &recorder{}
	s := newTestSession(t, nil,
		WithInput(func() input.State { return st }),
		WithSounds(sounds),
	)
	enemy, err := s.Registry().SpawnAndAttach(s.World(), TypeEnemy1, still(registry.NewSpawnData(100, 300)))
	require.NoError(t, err)

	require.NoError(t, s.Tick(0.1))
	bullets := s.World().ObjectsByTag(TagBullet)
	require.Len(t, bullets, 1)
	assert.Equal(t, 52.0, bullets[0].Position().X())
	assert.Equal(t, 1, sounds.count(audio.SoundFire))

	st = input.State{}
	require.NoError(t, s.Tick(0.1))

	assert.Equal(t, ScoreEnemy, s.Score())
	assert.Equal(t, engine.StateRemoved, enemy.State())
	assert.Empty(t, s.World().ObjectsByTag(TagBullet))
	assert.Equal(t, 1, sounds.count(audio.SoundExplosion))
}

func TestSession_ContactDamageOncePerTouch(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.Registry().SpawnAndAttach(s.World(), TypeEnemy1, still(registry.NewSpawnData(45, 300)))
	require.NoError(t, err)

	require.NoError(t, s.Tick(0.1))
	require.NoError(t, s.Tick(0.1))
	assert.Equal(t, 2, s.Lives())
	assert.Empty(t, s.World().ObjectsByTag(TagEnemy))
}

func TestSession_EnemyBulletEndsGame(t *testing.T) {
	s := newTestSession(t, func(c *config.Config) { c.Player.Lives = 1 })

	_, err := s.Registry().SpawnAndAttach(s.World(), TypeBullet, registry.NewSpawnData(60, 302).
		With(FieldOwner, string(TagEnemy)).
		With(FieldDX, -1).
		With(FieldSpeed, 100))
	require.NoError(t, err)

	require.NoError(t, s.Tick(0.1))
	assert.Zero(t, s.Lives())
	assert.True(t, s.Over())
	assert.Equal(t, engine.StateRemoved, s.Player().State())

	// Frozen once over
	tick := s.World().TickCount()
	require.NoError(t, s.Tick(0.1))
	assert.Equal(t, tick, s.World().TickCount())
}

func TestSession_EnemyBulletsPassEnemies(t *testing.T) {
	s := newTestSession(t, nil)
	enemy, err := s.Registry().SpawnAndAttach(s.World(), TypeEnemy1, still(registry.NewSpawnData(300, 100)))
	require.NoError(t, err)
	_, err = s.Registry().SpawnAndAttach(s.World(), TypeBullet, registry.NewSpawnData(302, 102).With(FieldOwner, string(TagEnemy)).With(FieldSpeed, 0))
	require.NoError(t, err)

	require.NoError(t, s.Tick(0.1))
	assert.True(t, enemy.IsActive())
	assert.Zero(t, s.Score())
}

func TestSession_BulletTogglesBlockHighlight(t *testing.T) {
	sounds := &recorder{}
	s := newTestSession(t, nil, WithSounds(sounds))
	block, err := s.Registry().SpawnAndAttach(s.World(), TypeBlock, registry.NewSpawnData(200, 200))
	require.NoError(t, err)
	assert.False(t, component.IsHighlighted(block))

	_, err = s.Registry().SpawnAndAttach(s.World(), TypeBullet, registry.NewSpawnData(204, 204).With(FieldOwner, string(TagPlayer)).With(FieldSpeed, 0))
	require.NoError(t, err)

	require.NoError(t, s.Tick(0.1))
	assert.True(t, component.IsHighlighted(block))
	assert.Equal(t, []*engine.Object{block}, component.Highlighted(s.World()))
	assert.Equal(t, ScoreBlock, s.Score())
	assert.Equal(t, 1, sounds.count(audio.SoundHit))
	assert.Empty(t, s.World().ObjectsByTag(TagBullet))
}

func TestSession_WavesReleaseOnSchedule(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scout.kv")
	require.NoError(t, os.WriteFile(file, []byte("x = 600\ny = 50\nspeed = 0\nfire_interval = 0\n"), 0o644))

	s := newTestSession(t, func(c *config.Config) {
		c.Waves = []config.Wave{
			{
				Type: TypeEnemy1, X: 700, Y: 100, Delay: 0.5,
				Fields:    map[string]any{FieldSpeed: 0, FieldFireInterval: 0, FieldAmplitude: 0},
				Formation: &config.Formation{Columns: 2, Rows: 2, SpacingX: 20, SpacingY: 30},
			},
			{Type: TypeEnemy1, File: file},
		}
	})
	assert.Equal(t, 2, s.PendingWaves())

	require.NoError(t, s.Tick(0.25))
	enemies := s.World().ObjectsByTag(TagEnemy)
	require.Len(t, enemies, 1)
	assert.Equal(t, 600.0, enemies[0].Position().X())

	require.NoError(t, s.Tick(0.25))
	enemies = s.World().ObjectsByTag(TagEnemy)
	require.Len(t, enemies, 5)
	assert.Equal(t, 720.0, enemies[2].Position().X())
	assert.Equal(t, 130.0, enemies[4].Position().Y())
	assert.Zero(t, s.PendingWaves())
}

func TestSession_BadWaveFile(t *testing.T) {
	cfg := config.Default()
	cfg.Waves = []config.Wave{{Type: TypeEnemy1, File: filepath.Join(t.TempDir(), "none.kv")}}
	s, err := NewSession(cfg, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestSession_Deterministic(t *testing.T) {
	run := func() uint64 {
		tick := 0
		s := newTestSession(t, func(c *config.Config) {
			c.Waves = config.Default().Waves
			c.CellSize = 64
		}, WithInput(func() input.State {
			return input.State{Fire: tick%3 == 0, Down: tick%5 < 2}
		}))
		for ; tick < 240; tick++ {
			require.NoError(t, s.Tick(1.0/60))
		}
		return s.World().Digest()
	}
	assert.Equal(t, run(), run())
}

func TestSession_Stop(t *testing.T) {
	s := newTestSession(t, nil)
	s.Stop()
	assert.Zero(t, s.World().Len())
	assert.Nil(t, s.Player())
}

func TestSession_DefaultWavesSurviveEntry(t *testing.T) {
	s, err := NewSession(config.Default(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	require.NoError(t, s.Tick(1.0/60))
	require.NoError(t, s.Tick(1.0/60))
	assert.Len(t, s.World().ObjectsByTag(TagEnemy), 8)

	for i := 0; i < 58; i++ {
		require.NoError(t, s.Tick(1.0/60))
	}
	assert.Len(t, s.World().ObjectsByTag(TagEnemy), 8)
}

func TestSession_EnemiesRemovedPastLeftEdge(t *testing.T) {
	s := newTestSession(t, func(c *config.Config) {
		c.Waves = []config.Wave{{
			Type: TypeEnemy1, X: 5, Y: 50,
			Fields: map[string]any{FieldSpeed: 60, FieldAmplitude: 0, FieldFireInterval: 0},
		}}
	})

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Tick(1.0/60))
	}
	require.Len(t, s.World().ObjectsByTag(TagEnemy), 1, "still touching the left edge")

	for i := 0; i < 20; i++ {
		require.NoError(t, s.Tick(1.0/60))
	}
	assert.Empty(t, s.World().ObjectsByTag(TagEnemy))
}

func writeWave(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wave.kv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSession_WaveFileFieldsUseBindings(t *testing.T) {
	block := writeWave(t, "x = 100\ny = 100\nlit = 1\n")
	bullet := writeWave(t, "x = 300\ny = 100\nowner = 007\nspeed = 0\n")

	s := newTestSession(t, func(c *config.Config) {
		c.Waves = []config.Wave{
			{Type: TypeBlock, File: block},
			{Type: TypeBullet, File: bullet},
		}
	})
	require.NoError(t, s.Tick(1.0/60))

	blocks := s.World().ObjectsByTag(TagBlock)
	require.Len(t, blocks, 1)
	assert.True(t, component.IsHighlighted(blocks[0]))

	bullets := s.World().ObjectsByTag(TagBullet)
	require.Len(t, bullets, 1)
	owner, ok := component.UserValue[engine.Tag](bullets[0])
	require.True(t, ok)
	assert.Equal(t, engine.Tag("007"), owner)
}

func TestSession_BadWaveFieldFailsStart(t *testing.T) {
	cfg := config.Default()
	cfg.Waves = []config.Wave{{Type: TypeBlock, File: writeWave(t, "x = 1\ny = 1\nlit = 2\n")}}
	s, err := NewSession(cfg, nil)
	require.NoError(t, err)

	err = s.Start()
	require.ErrorIs(t, err, kv.ErrFieldValue)
	assert.Contains(t, err.Error(), `"lit"`)
	assert.Nil(t, s.Player())
}

func TestSession_LogsWorldState(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	cfg.Waves = nil
	s, err := NewSession(cfg, log.NewWithCore(core))
	require.NoError(t, err)
	require.NoError(t, s.Start())

	for i := 0; i < StateLogInterval; i++ {
		require.NoError(t, s.Tick(1.0/60))
	}
	states := logs.FilterMessage("world state").All()
	require.Len(t, states, 1)
	fields := states[0].ContextMap()
	assert.Equal(t, uint64(StateLogInterval), fields["tick"])
	assert.Equal(t, fmt.Sprintf("%016x", s.World().Digest()), fields["digest"])
	assert.Contains(t, fields, "contacts")
	assert.Contains(t, fields, "pairs_tested")

	s.Stop()
	assert.Equal(t, 2, logs.FilterMessage("world state").Len())
}

func TestSession_PlayerClampedToViewport(t *testing.T) {
	st := input.State{Left: true, Up: true}
	s := newTestSession(t, nil, WithInput(func() input.State { return st }))

	for i := 0; i < 120; i++ {
		require.NoError(t, s.Tick(1.0/60))
	}
	assert.Equal(t, 0.0, s.Player().Position().X())
	assert.Equal(t, 0.0, s.Player().Position().Y())

	st = input.State{Right: true, Down: true}
	for i := 0; i < 300; i++ {
		require.NoError(t, s.Tick(1.0/60))
	}
	assert.Equal(t, 800-playerSize.X(), s.Player().Position().X())
	assert.Equal(t, 600-playerSize.Y(), s.Player().Position().Y())
}
