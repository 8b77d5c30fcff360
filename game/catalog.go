package game

import "math/rand/v2"

var catalog = [...]Shape{
	KindI: newShape(KindI,
		[]Cell{1, 1, 1, 1},
	),
	KindO: newShape(KindO,
		[]Cell{1, 1},
		[]Cell{1, 1},
	),
	KindT: newShape(KindT,
		[]Cell{0, 1, 0},
		[]Cell{1, 1, 1},
	),
	KindS: newShape(KindS,
		[]Cell{0, 1, 1},
		[]Cell{1, 1, 0},
	),
	KindZ: newShape(KindZ,
		[]Cell{1, 1, 0},
		[]Cell{0, 1, 1},
	),
	KindJ: newShape(KindJ,
		[]Cell{1, 0, 0},
		[]Cell{1, 1, 1},
	),
	KindL: newShape(KindL,
		[]Cell{0, 0, 1},
		[]Cell{1, 1, 1},
	),
}

// Kinds returns every catalog piece in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, len(catalog))
	for i := range catalog {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ShapeOf returns the default orientation of the given piece.
func ShapeOf(kind Kind) Shape {
	return catalog[kind]
}

// PickRandomShape draws a piece uniformly from the catalog in its default orientation.
func PickRandomShape(r *rand.Rand) Shape {
	return catalog[r.IntN(len(catalog))]
}

// ShapeSource supplies the next piece to spawn.
type ShapeSource interface {
	Next() Shape
}

// RandomSource draws uniformly from the catalog.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source seeded with seed. Equal seeds produce equal piece streams.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomSource) Next() Shape {
	return PickRandomShape(s.rng)
}

// Sequence cycles through a fixed list of kinds. It is deterministic and mostly useful for
// replays and tests.
type Sequence struct {
	kinds []Kind
	next  int
}

// NewSequence creates a source that yields kinds in order, wrapping around at the end.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		panic("sequence requires at least one kind")
	}
	return &Sequence{kinds: kinds}
}

func (s *Sequence) Next() Shape {
	kind := s.kinds[s.next]
	s.next = (s.next + 1) % len(s.kinds)
	return catalog[kind]
}
