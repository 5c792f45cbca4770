package input

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultHold covers the terminal key-repeat gap; terminals report presses, never releases
const DefaultHold = 120 * time.Millisecond

// State is the device snapshot handed to controls once per tick
type State struct {
	Up, Down, Left, Right bool
	Fire                  bool
	Pause                 bool // Edge: set once per press
	Mute                  bool // Edge: set once per press
	Quit                  bool // Sticky once pressed
}

// Axis returns the movement direction as -1, 0 or 1 per axis, y growing downward
func (s State) Axis() (dx, dy float64) {
	if s.Left {
		dx--
	}
	if s.Right {
		dx++
	}
	if s.Up {
		dy--
	}
	if s.Down {
		dy++
	}
	return dx, dy
}

// Keyboard turns terminal key events into held-action state.
// Event handling runs on the polling goroutine, Snapshot on the simulation goroutine.
type Keyboard struct {
	mu    sync.Mutex
	table *KeyTable
	hold  time.Duration
	now   func() time.Time

	until  [actionCount]time.Time
	pauses int
	mutes  int
	quit   bool
}

// NewKeyboard creates a keyboard over table; nil table uses DefaultKeyTable
func NewKeyboard(table *KeyTable, hold time.Duration) *Keyboard {
	if table == nil {
		table = DefaultKeyTable()
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{table: table, hold: hold, now: time.Now}
}

// HandleEvent records a key event, returning false for events it ignores
func (k *Keyboard) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return k.press(key.Key(), key.Rune(), k.now())
}

func (k *Keyboard) press(key tcell.Key, r rune, at time.Time) bool {
	a := k.table.Lookup(key, r)
	if a == ActionNone {
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	switch a {
	case ActionPause:
		k.pauses++
	case ActionMute:
		k.mutes++
	case ActionQuit:
		k.quit = true
	default:
		k.until[a] = at.Add(k.hold)
	}
	return true
}

// Snapshot returns the state at now and consumes pending pause and mute presses
func (k *Keyboard) Snapshot(now time.Time) State {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := func(a Action) bool { return now.Before(k.until[a]) }
	s := State{
		Up:    held(ActionUp),
		Down:  held(ActionDown),
		Left:  held(ActionLeft),
		Right: held(ActionRight),
		Fire:  held(ActionFire),
		Pause: k.pauses%2 == 1,
		Mute:  k.mutes%2 == 1,
		Quit:  k.quit,
	}
	k.pauses, k.mutes = 0, 0
	return s
}

// QuitRequested reports whether a quit key was seen
func (k *Keyboard) QuitRequested() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.quit
}

// Run polls screen events into the keyboard until ctx is done or the screen is finalized
func (k *Keyboard) Run(ctx context.Context, screen tcell.Screen) error {
	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resize := ev.(*tcell.EventResize); resize {
				screen.Sync()
				continue
			}
			k.HandleEvent(ev)
		}
	}
}
