package engine

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes handle, tag, state and transform of every live object in insertion order.
// Two worlds fed the same inputs produce the same digest, which makes replays and
// determinism checks cheap to compare.
func (w *World) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	for _, o := range w.objects {
		put(uint64(o.handle))
		_, _ = d.WriteString(string(o.tag))
		put(uint64(o.state))
		put(math.Float64bits(o.transform.Position.X()))
		put(math.Float64bits(o.transform.Position.Y()))
		put(math.Float64bits(o.transform.Rotation))
	}
	return d.Sum64()
}
