package control

import (
	"math"

	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/vmath"
)

// Enemy drifts towards -x along a sine around its spawn row and fires on a timer
type Enemy struct {
	Speed        float64 // horizontal drift, units per second
	Amplitude    float64 // vertical swing in units
	Frequency    float64 // swings per second
	FireInterval float64 // seconds between shots, zero disables firing
	Fire         Spawner

	baseY float64
	age   float64
	wait  float64
}

func (e *Enemy) Kind() engine.Kind { return KindEnemy }

func (e *Enemy) OnAttach(o *engine.Object) {
	e.baseY = o.Position().Y()
	e.wait = e.FireInterval
}

func (e *Enemy) Update(o *engine.Object, dt float64) {
	e.age += dt
	x := o.Position().X() - e.Speed*dt
	y := e.baseY + e.Amplitude*math.Sin(2*math.Pi*e.Frequency*e.age)
	o.SetPosition(vmath.V2(x, y))

	if e.FireInterval <= 0 || e.Fire == nil {
		return
	}
	e.wait -= dt
	if e.wait <= 0 {
		e.Fire(o)
		e.wait += e.FireInterval
	}
}
