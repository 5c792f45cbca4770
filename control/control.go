// Package control holds the reusable behaviors attached to game objects
package control

import "github.com/lixenwraith/vi-runner/engine"

const (
	KindProjectile     engine.Kind = "projectile"
	KindKeepOnScreen   engine.Kind = "keep-on-screen"
	KindOffscreenClean engine.Kind = "offscreen-clean"
	KindPlayer         engine.Kind = "player"
	KindEnemy          engine.Kind = "enemy"
)

// Spawner is called by a control that wants a new object, e.g. a bullet, created next to the caller.
// Objects it attaches join the world from the next tick.
type Spawner func(shooter *engine.Object)
