package control

import (
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/vmath"
)

// Projectile moves its object along a fixed direction at constant speed
type Projectile struct {
	dir   vmath.Vec2
	speed float64
}

// NewProjectile normalizes dir; a zero direction leaves the object in place
func NewProjectile(dir vmath.Vec2, speed float64) *Projectile {
	return &Projectile{dir: vmath.Direction(dir), speed: speed}
}

func (p *Projectile) Kind() engine.Kind { return KindProjectile }

// OnAttach points the object along its travel direction
func (p *Projectile) OnAttach(o *engine.Object) {
	if p.dir.Len() > 0 {
		o.SetRotation(vmath.Angle(p.dir))
	}
}

func (p *Projectile) Update(o *engine.Object, dt float64) {
	o.Translate(p.dir.Mul(p.speed * dt))
}
