package control

import (
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/input"
	"github.com/lixenwraith/vi-runner/vmath"
)

// Player moves its object from the input snapshot and fires through a spawner
type Player struct {
	Input    func() input.State
	Speed    float64 // world units per second, per axis
	Cooldown float64 // seconds between shots
	Fire     Spawner

	wait float64
}

func (p *Player) Kind() engine.Kind { return KindPlayer }

func (p *Player) Update(o *engine.Object, dt float64) {
	if p.Input == nil {
		return
	}
	st := p.Input()

	dx, dy := st.Axis()
	if dx != 0 || dy != 0 {
		o.Translate(vmath.V2(dx*p.Speed*dt, dy*p.Speed*dt))
	}

	if p.wait > 0 {
		p.wait -= dt
	}
	if st.Fire && p.wait <= 0 && p.Fire != nil {
		p.Fire(o)
		p.wait = p.Cooldown
	}
}
