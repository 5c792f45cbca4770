package input

import "github.com/gdamore/tcell/v2"

// Action is a game input derived from one or more keys
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionFire
	ActionPause
	ActionMute
	ActionQuit
	actionCount
)

var actionNames = [actionCount]string{"none", "up", "down", "left", "right", "fire", "pause", "mute", "quit"}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// KeyTable maps terminal keys to actions
type KeyTable struct {
	Keys  map[tcell.Key]Action
	Runes map[rune]Action
}

// DefaultKeyTable returns arrow keys, vi motions and WASD for movement
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Action{
			tcell.KeyUp:     ActionUp,
			tcell.KeyDown:   ActionDown,
			tcell.KeyLeft:   ActionLeft,
			tcell.KeyRight:  ActionRight,
			tcell.KeyEnter:  ActionFire,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
		},
		Runes: map[rune]Action{
			'k': ActionUp, 'w': ActionUp,
			'j': ActionDown, 's': ActionDown,
			'h': ActionLeft, 'a': ActionLeft,
			'l': ActionRight, 'd': ActionRight,
			' ': ActionFire, 'f': ActionFire,
			'p': ActionPause,
			'm': ActionMute,
			'q': ActionQuit,
		},
	}
}

// Lookup resolves a key event's key and rune
func (t *KeyTable) Lookup(key tcell.Key, r rune) Action {
	if key == tcell.KeyRune {
		return t.Runes[r]
	}
	return t.Keys[key]
}
