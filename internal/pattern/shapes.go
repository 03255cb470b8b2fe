package pattern

import (
	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
)

// tSquares finds every opposition with a third point square to both ends.
func tSquares(pts []chart.Placement, opps []pair, ix index) []TSquare {
	var out []TSquare
	for _, opp := range opps {
		for _, k := range pts {
			if opp.has(k) {
				continue
			}
			oa, ok := ix.orb(k, opp.a, aspect.Square)
			if !ok {
				continue
			}
			ob, ok := ix.orb(k, opp.b, aspect.Square)
			if !ok {
				continue
			}
			out = append(out, TSquare{
				Apex:       k,
				Opposition: [2]chart.Placement{opp.a, opp.b},
				Modality:   k.Point.Sign().Modality(),
				AverageOrb: mean(opp.orb, oa, ob),
			})
		}
	}
	return out
}

// grandTrines finds every triple of mutually trine points.
func grandTrines(pts []chart.Placement, ix index) []GrandTrine {
	var out []GrandTrine
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			ij, ok := ix.orb(pts[i], pts[j], aspect.Trine)
			if !ok {
				continue
			}
			for k := j + 1; k < len(pts); k++ {
				ik, ok := ix.orb(pts[i], pts[k], aspect.Trine)
				if !ok {
					continue
				}
				jk, ok := ix.orb(pts[j], pts[k], aspect.Trine)
				if !ok {
					continue
				}
				out = append(out, GrandTrine{
					Points:     [3]chart.Placement{pts[i], pts[j], pts[k]},
					Element:    pts[i].Point.Sign().Element(),
					AverageOrb: mean(ij, ik, jk),
				})
			}
		}
	}
	return out
}

// grandCrosses pairs up disjoint oppositions whose four cross pairs are all
// squares. Each cross is found once, from its earlier opposition.
func grandCrosses(opps []pair, ix index) []GrandCross {
	var out []GrandCross
	for i := 0; i < len(opps); i++ {
		for j := i + 1; j < len(opps); j++ {
			p, q := opps[i], opps[j]
			if !p.disjoint(q) {
				continue
			}
			orbs, ok := crossOrbs(p, q, ix, aspect.Square)
			if !ok {
				continue
			}
			out = append(out, GrandCross{
				Points:     [4]chart.Placement{p.a, q.a, p.b, q.b},
				Modality:   p.a.Point.Sign().Modality(),
				AverageOrb: mean(append(orbs, p.orb, q.orb)...),
			})
		}
	}
	return out
}

// yods finds every sextile with a third point quincunx to both ends.
func yods(pts []chart.Placement, sextiles []pair, ix index) []Yod {
	var out []Yod
	for _, base := range sextiles {
		for _, k := range pts {
			if base.has(k) {
				continue
			}
			oa, ok := ix.orb(k, base.a, aspect.Quincunx)
			if !ok {
				continue
			}
			ob, ok := ix.orb(k, base.b, aspect.Quincunx)
			if !ok {
				continue
			}
			out = append(out, Yod{
				Apex:       k,
				Base:       [2]chart.Placement{base.a, base.b},
				AverageOrb: mean(base.orb, oa, ob),
			})
		}
	}
	return out
}

// mysticRectangles pairs up disjoint oppositions whose four cross pairs are
// each a sextile or a trine.
func mysticRectangles(opps []pair, ix index) []MysticRectangle {
	var out []MysticRectangle
	for i := 0; i < len(opps); i++ {
		for j := i + 1; j < len(opps); j++ {
			p, q := opps[i], opps[j]
			if !p.disjoint(q) {
				continue
			}
			orbs, ok := crossOrbs(p, q, ix, aspect.Sextile, aspect.Trine)
			if !ok {
				continue
			}
			out = append(out, MysticRectangle{
				Oppositions: [2][2]chart.Placement{{p.a, p.b}, {q.a, q.b}},
				AverageOrb:  mean(append(orbs, p.orb, q.orb)...),
			})
		}
	}
	return out
}

// crossOrbs returns the orbs of the four pairs joining p's ends to q's ends
// when every one of them is among the named aspects.
func crossOrbs(p, q pair, ix index, names ...string) ([]float64, bool) {
	orbs := make([]float64, 0, 6)
	for _, x := range [2]chart.Placement{p.a, p.b} {
		for _, y := range [2]chart.Placement{q.a, q.b} {
			o, ok := ix.orbAny(x, y, names...)
			if !ok {
				return nil, false
			}
			orbs = append(orbs, o)
		}
	}
	return orbs, true
}

// kites extends each Grand Trine with every outside point opposing one of
// its members.
func kites(pts []chart.Placement, trines []GrandTrine, ix index) []Kite {
	var out []Kite
	for _, gt := range trines {
		for _, k := range pts {
			if inTrine(gt, k) {
				continue
			}
			for _, m := range gt.Points {
				o, ok := ix.orb(k, m, aspect.Opposition)
				if !ok {
					continue
				}
				out = append(out, Kite{
					GrandTrine: gt.Points,
					Opposition: k,
					Anchor:     m,
					AverageOrb: mean(gt.AverageOrb, o),
				})
				break
			}
		}
	}
	return out
}

func inTrine(gt GrandTrine, x chart.Placement) bool {
	for _, m := range gt.Points {
		if m.Key() == x.Key() {
			return true
		}
	}
	return false
}
