package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-runner/vmath"
)

// Sprite is the view placeholder of an object: a glyph tiled over its box
type Sprite struct {
	Glyph  rune
	Style  tcell.Style
	Size   vmath.Vec2 // world units
	NoBBox bool       // Opt out of collision extents; the box is zero-sized
}

// NewSprite builds a sprite of w x h world units
func NewSprite(glyph rune, fg tcell.Color, w, h float64) *Sprite {
	return &Sprite{
		Glyph: glyph,
		Style: tcell.StyleDefault.Foreground(fg).Background(ColorBackground),
		Size:  vmath.V2(w, h),
	}
}

// Extents is the box used for collisions and screen bounds
func (s *Sprite) Extents() vmath.Vec2 {
	if s.NoBBox {
		return vmath.Vec2{}
	}
	return s.Size
}
