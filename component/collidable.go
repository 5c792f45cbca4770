package component

import "github.com/lixenwraith/vi-runner/engine"

const (
	KindCollidable                = engine.KindCollidable
	KindHighlightable engine.Kind = "highlightable"
	KindUserData      engine.Kind = "userdata"
)

// Collidable flags an object for the collision pass; toggle through World.SetCollidable
type Collidable struct {
	On bool
}

// NewCollidable returns an enabled collidable flag
func NewCollidable() *Collidable { return &Collidable{On: true} }

func (c *Collidable) Kind() engine.Kind  { return KindCollidable }
func (c *Collidable) Enabled() bool      { return c.On }
func (c *Collidable) SetEnabled(on bool) { c.On = on }
