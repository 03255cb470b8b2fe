package pattern

import (
	"slices"

	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/zodiac"
)

// Stelliums groups placements by sign, and by house when cusps holds twelve
// values, and reports every group of at least minSize members (zero or less means
// DefaultStelliumMinimum). A house group is skipped when a sign stellium
// already contains all of its members.
func (d *Detector) Stelliums(ps []chart.Placement, cusps []float64, minSize int) []Stellium {
	if minSize <= 0 {
		minSize = DefaultStelliumMinimum
	}
	pts := d.eligible(ps)

	var bySign [12][]chart.Placement
	for _, p := range pts {
		s := p.Point.Sign()
		bySign[s] = append(bySign[s], p)
	}

	var out []Stellium
	for s, group := range bySign {
		if len(group) < minSize {
			continue
		}
		sign := zodiac.Sign(s)
		out = append(out, Stellium{
			Points:     group,
			Sign:       &sign,
			Houses:     housesOf(group, cusps),
			DegreeSpan: span(group),
		})
	}
	signStelliums := len(out)

	if len(cusps) != zodiac.HouseCount {
		return out
	}

	var byHouse [12][]chart.Placement
	for _, p := range pts {
		if h, ok := zodiac.HouseOf(p.Point.Longitude, cusps); ok {
			byHouse[h-1] = append(byHouse[h-1], p)
		}
	}
	for i, group := range byHouse {
		if len(group) < minSize || covered(group, out[:signStelliums]) {
			continue
		}
		out = append(out, Stellium{
			Points:     group,
			House:      i + 1,
			Houses:     []int{i + 1},
			DegreeSpan: span(group),
		})
	}
	return out
}

// covered reports whether one stellium holds every placement of group.
func covered(group []chart.Placement, stelliums []Stellium) bool {
	for _, st := range stelliums {
		all := true
		for _, p := range group {
			if !slices.ContainsFunc(st.Points, func(q chart.Placement) bool { return q.Key() == p.Key() }) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func housesOf(group []chart.Placement, cusps []float64) []int {
	var houses []int
	for _, p := range group {
		if h, ok := zodiac.HouseOf(p.Point.Longitude, cusps); ok && !slices.Contains(houses, h) {
			houses = append(houses, h)
		}
	}
	slices.Sort(houses)
	return houses
}

func span(group []chart.Placement) float64 {
	lons := make([]float64, len(group))
	for i, p := range group {
		lons[i] = p.Point.Longitude
	}
	return zodiac.Arc(lons)
}
