package engine

// scheduled is one control update queued for the current tick
type scheduled struct {
	object *Object
	slot   *controlSlot
}

// runControls fires Update for every control of every object eligible at tick start,
// ordered by world insertion order then control attachment order.
// The queue is fixed before the first update so objects and controls attached by a
// control are picked up next tick, and a removal request does not cut the object's
// remaining updates short.
func (w *World) runControls(dt float64) {
	queue := w.schedule[:0]
	for _, o := range w.objects {
		if !w.eligible(o) {
			continue
		}
		for _, s := range o.controls {
			queue = append(queue, scheduled{object: o, slot: s})
		}
	}

	for _, item := range queue {
		// Detached earlier in this tick
		if item.slot.state == ControlDetached {
			continue
		}
		item.slot.update(item.object, dt)
	}

	clear(queue)
	w.schedule = queue[:0]
}
