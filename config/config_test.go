package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, time.Second/60, c.TickInterval())
}

func TestParse_OverridesDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(`
viewport: {width: 320, height: 200}
tick_rate: 30
log: {level: debug, path: /tmp/run.log}
player: {speed: 100, lives: 5}
waves:
  - type: Enemy1
    x: 300
    y: 20
    delay: 2.5
    fields: {speed: 40}
    formation: {columns: 3, rows: 2, spacing_x: 20, spacing_y: 30}
  - type: Block
    x: 100
    y: 100
`))
	require.NoError(t, err)

	assert.Equal(t, Viewport{Width: 320, Height: 200}, c.Viewport)
	assert.Equal(t, 30, c.TickRate)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 100.0, c.Player.Speed)
	assert.Equal(t, 5, c.Player.Lives)
	assert.Equal(t, 0.25, c.Player.Cooldown, "unset keys keep defaults")

	require.Len(t, c.Waves, 2)
	w := c.Waves[0]
	assert.Equal(t, "Enemy1", w.Type)
	assert.Equal(t, 2.5, w.Delay)
	assert.Equal(t, 40, w.Fields["speed"])
	assert.Equal(t, &Formation{Columns: 3, Rows: 2, SpacingX: 20, SpacingY: 30}, w.Formation)
	assert.Nil(t, c.Waves[1].Formation)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("tick_rat: 30\n"))
	assert.Error(t, err)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	c := Default()
	c.Viewport.Width = 0
	c.TickRate = 0
	c.Log.Level = "loud"
	c.Player.Lives = 0
	c.Waves = append(c.Waves, Wave{Delay: -1, Formation: &Formation{}})

	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	for _, want := range []string{"viewport", "tick_rate", "log level", "lives", "missing type", "negative delay", "formation"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_ResolvesWaveFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
waves:
  - type: Enemy1
    file: waves/first.kv
  - type: Enemy1
    file: /abs/second.kv
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "waves", "first.kv"), c.Waves[0].File)
	assert.Equal(t, "/abs/second.kv", c.Waves[1].File)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
