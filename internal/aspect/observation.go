package aspect

import "github.com/papapumpkin/constellate/internal/chart"

// Motion tells whether an aspect is tightening or loosening.
type Motion string

const (
	Applying   Motion = "applying"   // orb is shrinking
	Separating Motion = "separating" // orb is growing
	Exact      Motion = "exact"      // within ExactThreshold, or no relative motion
)

// Observation is the tightest aspect found between two placements.
type Observation struct {
	A          chart.Placement `json:"a"`
	B          chart.Placement `json:"b"`
	Aspect     string          `json:"aspect"`
	Angle      float64         `json:"angle"`
	Separation float64         `json:"separation"`
	Orb        float64         `json:"orb"`
	MaxOrb     float64         `json:"max_orb"`
	Motion     Motion          `json:"motion"`
}

// Within reports whether both placements belong to the named chart.
func (o Observation) Within(name string) bool {
	return o.A.Chart == name && o.B.Chart == name
}

// Crosses reports whether the observation joins chart x to chart y, in
// either direction.
func (o Observation) Crosses(x, y string) bool {
	return (o.A.Chart == x && o.B.Chart == y) || (o.A.Chart == y && o.B.Chart == x)
}
