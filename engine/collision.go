package engine

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lixenwraith/vi-runner/log"
)

// Handler receives two overlapping objects, ordered as the tag pair was registered
type Handler func(a, b *Object)

// tagPair is an unordered pair of tags, lo <= hi
type tagPair struct {
	lo, hi Tag
}

func makeTagPair(a, b Tag) tagPair {
	if b < a {
		a, b = b, a
	}
	return tagPair{a, b}
}

// binding remembers the registration order so handlers see (tagA, tagB)
type binding struct {
	first Tag
	fn    Handler
}

func (b *binding) call(x, y *Object) {
	if b == nil {
		return
	}
	if x.tag != b.first && y.tag == b.first {
		x, y = y, x
	}
	b.fn(x, y)
}

type handlerSet struct {
	begin     *binding
	collision *binding
	end       *binding
}

// objectPair keys a contact by handles, a < b
type objectPair struct {
	a, b Handle
}

type contact struct {
	a, b *Object
}

// CollisionNotifier reports overlapping pairs of collidable objects to tag-pair handlers.
// It only reports; positions are never corrected.
type CollisionNotifier struct {
	logger   *log.Logger
	handlers map[tagPair]*handlerSet
	grid     *SpatialGrid

	contacts map[objectPair]contact // pairs overlapping in the previous pass
	current  map[objectPair]contact

	candidates []*Object
	pairs      [][2]int
	tested     int
}

func newCollisionNotifier(logger *log.Logger, cellSize float64) *CollisionNotifier {
	n := &CollisionNotifier{
		logger:   logger.Named("collision"),
		handlers: make(map[tagPair]*handlerSet),
		contacts: make(map[objectPair]contact),
		current:  make(map[objectPair]contact),
	}
	if cellSize > 0 {
		n.grid = NewSpatialGrid(cellSize)
	}
	return n
}

// AddHandler registers h to run every tick a (tagA, tagB) pair overlaps
func (n *CollisionNotifier) AddHandler(tagA, tagB Tag, h Handler) error {
	return n.add("collision", tagA, tagB, h, func(s *handlerSet) **binding { return &s.collision })
}

// AddBeginHandler registers h to run on the first tick a (tagA, tagB) pair overlaps
func (n *CollisionNotifier) AddBeginHandler(tagA, tagB Tag, h Handler) error {
	return n.add("begin", tagA, tagB, h, func(s *handlerSet) **binding { return &s.begin })
}

// AddEndHandler registers h to run on the first tick a previously overlapping pair
// no longer overlaps, including when one side left the world
func (n *CollisionNotifier) AddEndHandler(tagA, tagB Tag, h Handler) error {
	return n.add("end", tagA, tagB, h, func(s *handlerSet) **binding { return &s.end })
}

func (n *CollisionNotifier) add(phase string, tagA, tagB Tag, h Handler, slot func(*handlerSet) **binding) error {
	if h == nil {
		return fmt.Errorf("%s handler (%s, %s): %w", phase, tagA, tagB, ErrNilValue)
	}
	key := makeTagPair(tagA, tagB)
	set, ok := n.handlers[key]
	if !ok {
		set = &handlerSet{}
		n.handlers[key] = set
	}
	b := slot(set)
	if *b != nil {
		return fmt.Errorf("%s handler (%s, %s): %w", phase, tagA, tagB, ErrDuplicateHandler)
	}
	*b = &binding{first: tagA, fn: h}
	n.logger.Debug("handler registered",
		log.String("phase", phase),
		log.String("a", string(tagA)),
		log.String("b", string(tagB)),
	)
	return nil
}

// Contacts returns the number of registered pairs overlapping in the last pass
func (n *CollisionNotifier) Contacts() int { return len(n.contacts) }

// PairsTested returns how many candidate pairs the last pass examined
func (n *CollisionNotifier) PairsTested() int { return n.tested }

// run performs one pass over the world's collidable index.
// Membership is fixed when the pass starts; handlers may request removals or toggle
// eligibility without affecting pairs already queued.
func (n *CollisionNotifier) run(w *World) {
	cands := n.candidates[:0]
	for _, o := range w.collidable {
		if w.eligible(o) {
			cands = append(cands, o)
		}
	}
	n.candidates = cands

	pairs := n.candidatePairs(cands)
	n.tested = len(pairs)

	for _, p := range pairs {
		a, b := cands[p[0]], cands[p[1]]
		set, ok := n.handlers[makeTagPair(a.tag, b.tag)]
		if !ok || !a.Bounds().Overlaps(b.Bounds()) {
			continue
		}

		key := objectPair{a.handle, b.handle}
		n.current[key] = contact{a, b}
		if _, was := n.contacts[key]; !was {
			set.begin.call(a, b)
		}
		set.collision.call(a, b)
	}

	n.endContacts()

	n.contacts, n.current = n.current, n.contacts
	clear(n.current)
	clear(n.candidates)
}

// endContacts fires end handlers for pairs that stopped overlapping, in handle order
func (n *CollisionNotifier) endContacts() {
	var ended []objectPair
	for key := range n.contacts {
		if _, still := n.current[key]; !still {
			ended = append(ended, key)
		}
	}
	if len(ended) == 0 {
		return
	}
	slices.SortFunc(ended, func(x, y objectPair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})
	for _, key := range ended {
		c := n.contacts[key]
		if set, ok := n.handlers[makeTagPair(c.a.tag, c.b.tag)]; ok {
			set.end.call(c.a, c.b)
		}
	}
}

// candidatePairs returns index pairs (i < j) to test, sorted; brute force without a grid
func (n *CollisionNotifier) candidatePairs(cands []*Object) [][2]int {
	pairs := n.pairs[:0]
	if n.grid == nil {
		for i := 0; i < len(cands); i++ {
			for j := i + 1; j < len(cands); j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	} else {
		n.grid.Clear()
		for i, o := range cands {
			n.grid.Insert(i, o.Bounds())
		}
		pairs = n.grid.Pairs(pairs)
	}
	n.pairs = pairs
	return pairs
}
