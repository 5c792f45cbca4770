package game

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/kv"
	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/registry"
	"github.com/lixenwraith/vi-runner/vmath"
)

// wave is a resolved spawn batch released once the session clock reaches at
type wave struct {
	at    float64
	name  string
	spawn []registry.SpawnData
}

// planWaves resolves every configured wave and checks its fields against the type's
// factory, so a bad wave fails Start instead of being dropped at release
func (s *Session) planWaves(cfgs []config.Wave) ([]wave, error) {
	out := make([]wave, 0, len(cfgs))
	for i, c := range cfgs {
		base, err := waveOrigin(c)
		if err != nil {
			return nil, fmt.Errorf("wave %d (%s): %w", i, c.Type, err)
		}
		for _, k := range slices.Sorted(maps.Keys(c.Fields)) {
			base = base.With(k, c.Fields[k])
		}
		if _, err := s.registry.Spawn(c.Type, base); err != nil {
			return nil, fmt.Errorf("wave %d (%s): %w", i, c.Type, err)
		}

		w := wave{at: c.Delay, name: c.Type}
		if f := c.Formation; f != nil {
			grid := vmath.NewGrid(f.Columns, f.Rows)
			for _, p := range grid.Layout(base.Position(), vmath.V2(f.SpacingX, f.SpacingY)) {
				w.spawn = append(w.spawn, base.At(p.X(), p.Y()))
			}
		} else {
			w.spawn = []registry.SpawnData{base}
		}
		out = append(out, w)
	}
	slices.SortStableFunc(out, func(a, b wave) int { return cmp.Compare(a.at, b.at) })
	return out, nil
}

func waveOrigin(c config.Wave) (registry.SpawnData, error) {
	if c.File == "" {
		return registry.NewSpawnData(c.X, c.Y), nil
	}
	f, err := os.Open(c.File)
	if err != nil {
		return registry.SpawnData{}, err
	}
	defer f.Close()

	file, err := kv.Parse(f)
	if err != nil {
		return registry.SpawnData{}, fmt.Errorf("%s: %w", c.File, err)
	}
	return registry.FromKV(file)
}

func (s *Session) releaseWaves() {
	for len(s.waves) > 0 && s.waves[0].at <= s.elapsed {
		w := s.waves[0]
		s.waves = s.waves[1:]
		spawned := 0
		for _, d := range w.spawn {
			if _, err := s.registry.SpawnAndAttach(s.world, w.name, d); err != nil {
				s.logger.Warn("wave spawn failed", log.String("type", w.name), log.Err(err))
				continue
			}
			spawned++
		}
		s.logger.Debug("wave released", log.String("type", w.name), log.Int("spawned", spawned))
	}
}
