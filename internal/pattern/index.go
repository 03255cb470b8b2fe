package pattern

import (
	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
)

type pairKey struct{ a, b string }

func keyOf(x, y chart.Placement) pairKey {
	kx, ky := x.Key(), y.Key()
	if ky < kx {
		kx, ky = ky, kx
	}
	return pairKey{kx, ky}
}

// index answers "what aspect joins these two placements" in either order.
type index map[pairKey]aspect.Observation

func newIndex(obs []aspect.Observation) index {
	ix := make(index, len(obs))
	for _, o := range obs {
		ix[keyOf(o.A, o.B)] = o
	}
	return ix
}

// orb returns the orb of the named aspect between x and y, or false when
// they are not joined by that aspect.
func (ix index) orb(x, y chart.Placement, name string) (float64, bool) {
	o, ok := ix[keyOf(x, y)]
	if !ok || o.Aspect != name {
		return 0, false
	}
	return o.Orb, true
}

// orbAny is orb for the first of several acceptable aspect names.
func (ix index) orbAny(x, y chart.Placement, names ...string) (float64, bool) {
	o, ok := ix[keyOf(x, y)]
	if !ok {
		return 0, false
	}
	for _, n := range names {
		if o.Aspect == n {
			return o.Orb, true
		}
	}
	return 0, false
}
