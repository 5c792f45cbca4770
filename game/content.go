// Package game is the space-runner content built on the engine: object types,
// their spawn factories, collision rules and the session that ties them to a world
package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/component"
	"github.com/lixenwraith/vi-runner/control"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/kv"
	"github.com/lixenwraith/vi-runner/log"
	"github.com/lixenwraith/vi-runner/registry"
	"github.com/lixenwraith/vi-runner/render"
	"github.com/lixenwraith/vi-runner/vmath"
)

const (
	TagPlayer engine.Tag = "PLAYER"
	TagEnemy  engine.Tag = "ENEMY"
	TagBullet engine.Tag = "BULLET"
	TagBlock  engine.Tag = "BLOCK"
)

// Spawn type names
const (
	TypePlayer = "Player"
	TypeEnemy1 = "Enemy1"
	TypeBullet = "Bullet"
	TypeBlock  = "Block"
)

// Fields read from spawn data
const (
	FieldOwner        = "owner"
	FieldDX           = "dx"
	FieldDY           = "dy"
	FieldSpeed        = "speed"
	FieldAmplitude    = "amplitude"
	FieldFrequency    = "frequency"
	FieldFireInterval = "fire_interval"
	FieldLit          = "lit"
)

type enemyParams struct {
	Speed        float64
	Amplitude    float64
	Frequency    float64
	FireInterval float64
}

type bulletParams struct {
	Owner  string
	DX, DY float64
	Speed  float64
}

type blockParams struct {
	Lit bool
}

// Field bindings declare every spawn field a type reads and its conversion
var (
	enemyBinding = kv.NewBinding[enemyParams]().
			Float(FieldSpeed, func(p *enemyParams) *float64 { return &p.Speed }).
			Float(FieldAmplitude, func(p *enemyParams) *float64 { return &p.Amplitude }).
			Float(FieldFrequency, func(p *enemyParams) *float64 { return &p.Frequency }).
			Float(FieldFireInterval, func(p *enemyParams) *float64 { return &p.FireInterval })

	bulletBinding = kv.NewBinding[bulletParams]().
			String(FieldOwner, func(p *bulletParams) *string { return &p.Owner }).
			Float(FieldDX, func(p *bulletParams) *float64 { return &p.DX }).
			Float(FieldDY, func(p *bulletParams) *float64 { return &p.DY }).
			Float(FieldSpeed, func(p *bulletParams) *float64 { return &p.Speed })

	blockBinding = kv.NewBinding[blockParams]().
			Bool(FieldLit, func(p *blockParams) *bool { return &p.Lit })
)

var (
	playerSize = vmath.V2(12, 8)
	enemySize  = vmath.V2(10, 8)
	bulletSize = vmath.V2(6, 2)
	blockSize  = vmath.V2(16, 16)
)

// SpawnTable returns the registration table of every content type
func (s *Session) SpawnTable() []registry.Entry {
	return []registry.Entry{
		{Name: TypePlayer, Factory: s.newPlayer},
		{Name: TypeEnemy1, Factory: s.newEnemy},
		{Name: TypeBullet, Factory: s.newBullet},
		{Name: TypeBlock, Factory: s.newBlock},
	}
}

func (s *Session) newPlayer(d registry.SpawnData) (*engine.Object, error) {
	p := s.cfg.Player
	return engine.NewEntity().
		Type(TagPlayer).
		AtVec(d.Position()).
		View(render.NewSprite('>', tcell.ColorGreen, playerSize.X(), playerSize.Y())).
		With(component.NewCollidable()).
		WithControls(
			&control.Player{Input: s.input, Speed: p.Speed, Cooldown: p.Cooldown, Fire: s.playerFire},
			control.NewKeepOnScreen(),
		).
		Build()
}

func (s *Session) newEnemy(d registry.SpawnData) (*engine.Object, error) {
	p := enemyParams{Speed: 60, Amplitude: 20, Frequency: 0.5, FireInterval: 2}
	if err := registry.Decode(d, enemyBinding, &p); err != nil {
		return nil, err
	}

	return engine.NewEntity().
		Type(TagEnemy).
		AtVec(d.Position()).
		View(render.NewSprite('W', tcell.ColorRed, enemySize.X(), enemySize.Y())).
		With(component.NewCollidable()).
		WithControls(
			&control.Enemy{
				Speed:        p.Speed,
				Amplitude:    p.Amplitude,
				Frequency:    p.Frequency,
				FireInterval: p.FireInterval,
				Fire:         s.enemyFire,
			},
			control.OffscreenClean{Trailing: true},
		).
		Build()
}

// newBullet needs the owner tag; direction defaults to +x
func (s *Session) newBullet(d registry.SpawnData) (*engine.Object, error) {
	p := bulletParams{DX: 1, Speed: s.cfg.Player.BulletSpeed}
	if err := registry.Decode(d, bulletBinding, &p); err != nil {
		return nil, err
	}
	if p.Owner == "" {
		return nil, fmt.Errorf("%q: %w", FieldOwner, registry.ErrMissingField)
	}
	owner := engine.Tag(p.Owner)

	color := tcell.ColorYellow
	if owner != TagPlayer {
		color = tcell.ColorOrange
	}
	return engine.NewEntity().
		Type(TagBullet).
		AtVec(d.Position()).
		View(render.NewSprite('-', color, bulletSize.X(), bulletSize.Y())).
		With(component.NewCollidable()).
		With(&component.UserData{Value: owner}).
		WithControls(control.NewProjectile(vmath.V2(p.DX, p.DY), p.Speed), control.OffscreenClean{}).
		Build()
}

func (s *Session) newBlock(d registry.SpawnData) (*engine.Object, error) {
	var p blockParams
	if err := registry.Decode(d, blockBinding, &p); err != nil {
		return nil, err
	}
	return engine.NewEntity().
		Type(TagBlock).
		AtVec(d.Position()).
		View(render.NewSprite('#', tcell.ColorBlue, blockSize.X(), blockSize.Y())).
		With(component.NewCollidable()).
		With(&component.Highlightable{Lit: p.Lit}).
		Build()
}

// playerFire spawns a bullet at the shooter's right edge
func (s *Session) playerFire(shooter *engine.Object) {
	b := shooter.Bounds()
	origin := vmath.V2(b.Max.X(), b.Center().Y()-bulletSize.Y()/2)
	if s.fire(origin, TagPlayer, 1, s.cfg.Player.BulletSpeed) {
		s.sounds.Play(audio.SoundFire)
	}
}

// enemyFire spawns a slower bullet at the shooter's left edge
func (s *Session) enemyFire(shooter *engine.Object) {
	b := shooter.Bounds()
	origin := vmath.V2(b.Min.X()-bulletSize.X(), b.Center().Y()-bulletSize.Y()/2)
	s.fire(origin, TagEnemy, -1, s.cfg.Player.BulletSpeed/2)
}

func (s *Session) fire(origin vmath.Vec2, owner engine.Tag, dx, speed float64) bool {
	data := registry.NewSpawnData(origin.X(), origin.Y()).
		With(FieldOwner, string(owner)).
		With(FieldDX, dx).
		With(FieldSpeed, speed)
	if _, err := s.registry.SpawnAndAttach(s.world, TypeBullet, data); err != nil {
		s.logger.Warn("bullet spawn failed", log.Err(err))
		return false
	}
	return true
}
