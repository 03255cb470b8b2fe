package analysis

import "github.com/papapumpkin/constellate/internal/chart"

// HouseOverlay places one chart's point in a house of another chart.
type HouseOverlay struct {
	Point chart.Placement `json:"point"`
	Host  string          `json:"host"`
	House int             `json:"house"`
}

// HouseOverlayer computes the overlays for a pair of charts.
type HouseOverlayer interface {
	Overlay(a, b *chart.Chart) []HouseOverlay
}

// CuspOverlayer places each chart's points in the other chart's houses.
// A chart without cusps hosts nothing.
type CuspOverlayer struct{}

// Overlay implements HouseOverlayer.
func (CuspOverlayer) Overlay(a, b *chart.Chart) []HouseOverlay {
	var out []HouseOverlay
	out = appendOverlays(out, a, b)
	out = appendOverlays(out, b, a)
	return out
}

func appendOverlays(out []HouseOverlay, guest, host *chart.Chart) []HouseOverlay {
	if !host.HasHouses() {
		return out
	}
	for _, p := range guest.Placements() {
		if h, ok := host.HouseOf(p.Point.Longitude); ok {
			out = append(out, HouseOverlay{Point: p, Host: host.Name, House: h})
		}
	}
	return out
}
