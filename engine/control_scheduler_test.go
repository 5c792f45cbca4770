package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControls_RunInInsertionThenAttachmentOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	rc := func(k Kind) *RecordingControl { return &RecordingControl{K: k, Log: &order} }

	_, _ = w.Attach(NewTestObject("A", 0, 0, 1, 1, rc("x"), rc("y")))
	_, _ = w.Attach(NewTestObject("B", 0, 0, 1, 1, rc("z")))
	_, _ = w.Attach(NewTestObject("C", 0, 0, 1, 1, rc("x"), rc("w")))

	w.Tick(0.1)
	assert.Equal(t, []string{"A/x", "A/y", "B/z", "C/x", "C/w"}, order)

	order = order[:0]
	w.Tick(0.1)
	assert.Equal(t, []string{"A/x", "A/y", "B/z", "C/x", "C/w"}, order)
}

func TestControls_UpdateCountMatchesTickStart(t *testing.T) {
	w := NewWorld()
	updates := 0
	count := func(*Object, float64) { updates++ }

	// Spawner adds one object per update; new objects must wait a tick
	spawner := &RecordingControl{K: "spawn", OnUpdate: func(o *Object, _ float64) {
		updates++
		_, err := o.World().Attach(NewTestObject("CHILD", 0, 0, 1, 1, &RecordingControl{K: "c", OnUpdate: count}))
		require.NoError(t, err)
	}}
	_, _ = w.Attach(NewTestObject("S", 0, 0, 1, 1, spawner))
	_, _ = w.Attach(NewTestObject("A", 0, 0, 1, 1,
		&RecordingControl{K: "a", OnUpdate: count},
		&RecordingControl{K: "b", OnUpdate: count},
	))

	w.Tick(0.1)
	assert.Equal(t, 3, updates)
	assert.Equal(t, 3, w.Len())

	updates = 0
	w.Tick(0.1)
	assert.Equal(t, 4, updates) // spawner + a + b + first child
}

func TestControls_RemovalDoesNotStopOtherObjects(t *testing.T) {
	w := NewWorld()
	var victim *Object
	killer := &RecordingControl{K: "kill", OnUpdate: func(*Object, float64) { victim.RequestRemoval() }}
	victimCtrl := &RecordingControl{K: "v"}

	_, _ = w.Attach(NewTestObject("K", 0, 0, 1, 1, killer))
	victim = NewTestObject("V", 0, 0, 1, 1, victimCtrl)
	_, _ = w.Attach(victim)

	w.Tick(0.1)
	// Marked during this tick, so it still runs this tick
	assert.Equal(t, 1, victimCtrl.Updates)
	assert.Equal(t, 1, victimCtrl.Detached)
	assert.Equal(t, 1, w.Len())

	w.Tick(0.1)
	assert.Equal(t, 1, victimCtrl.Updates)
	assert.Equal(t, 2, killer.Updates)
}

func TestControls_DetachMidTick(t *testing.T) {
	w := NewWorld()
	second := &RecordingControl{K: "second"}
	first := &RecordingControl{K: "first", OnUpdate: func(o *Object, _ float64) {
		o.DetachControl("second")
	}}
	o := NewTestObject("A", 0, 0, 1, 1, first, second)
	_, _ = w.Attach(o)

	w.Tick(0.1)
	assert.Zero(t, second.Updates)
	assert.Equal(t, 1, second.Detached)
	assert.Len(t, o.Controls(), 1)

	_, ok := o.ControlState("second")
	assert.False(t, ok)
	assert.False(t, o.DetachControl("second"))
}

func TestControls_AttachMidTickStartsNextTick(t *testing.T) {
	w := NewWorld()
	late := &RecordingControl{K: "late"}
	first := &RecordingControl{K: "first", OnUpdate: func(o *Object, _ float64) {
		if _, ok := o.Control("late"); !ok {
			require.NoError(t, o.AttachControl(late))
		}
	}}
	o := NewTestObject("A", 0, 0, 1, 1, first)
	_, _ = w.Attach(o)

	w.Tick(0.1)
	assert.Equal(t, 1, late.Attached)
	assert.Zero(t, late.Updates)
	st, _ := o.ControlState("late")
	assert.Equal(t, ControlAttached, st)

	w.Tick(0.1)
	assert.Equal(t, 1, late.Updates)
	st, _ = o.ControlState("late")
	assert.Equal(t, ControlActive, st)
}

func TestControls_AttachControlErrors(t *testing.T) {
	o := NewTestObject("A", 0, 0, 1, 1, &RecordingControl{K: "c"})
	assert.ErrorIs(t, o.AttachControl(nil), ErrNilValue)
	assert.ErrorIs(t, o.AttachControl(&RecordingControl{K: "c"}), ErrDuplicateKind)

	// Not attached yet: hook waits for World.Attach
	extra := &RecordingControl{K: "extra"}
	require.NoError(t, o.AttachControl(extra))
	assert.Zero(t, extra.Attached)

	w := NewWorld()
	_, _ = w.Attach(o)
	assert.Equal(t, 1, extra.Attached)
}

func TestControls_StateLifecycle(t *testing.T) {
	w := NewWorld()
	c := &RecordingControl{K: "c"}
	o := NewTestObject("A", 0, 0, 1, 1, c)

	st, _ := o.ControlState("c")
	assert.Equal(t, ControlPending, st)

	_, _ = w.Attach(o)
	st, _ = o.ControlState("c")
	assert.Equal(t, ControlAttached, st)

	w.Tick(0.1)
	st, _ = o.ControlState("c")
	assert.Equal(t, ControlActive, st)

	o.RequestRemoval()
	w.Tick(0.1)
	st, _ = o.ControlState("c")
	assert.Equal(t, ControlDetached, st)
	assert.Equal(t, "detached", st.String())
}
