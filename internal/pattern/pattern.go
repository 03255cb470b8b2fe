// Package pattern recognizes multi-point aspect configurations (T-Squares,
// Grand Trines, Grand Crosses, Yods, Mystic Rectangles, Kites) and sign or
// house stelliums across one or more charts.
package pattern

import (
	"encoding/json"
	"slices"

	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/zodiac"
)

// Kind names a pattern variant. It is also the JSON discriminator.
type Kind string

const (
	KindTSquare         Kind = "t-square"
	KindGrandTrine      Kind = "grand-trine"
	KindGrandCross      Kind = "grand-cross"
	KindYod             Kind = "yod"
	KindMysticRectangle Kind = "mystic-rectangle"
	KindKite            Kind = "kite"
	KindStellium        Kind = "stellium"
)

// Pattern is the closed set of detected configurations. Only the types in
// this package implement it; switch on the concrete type to render one.
type Pattern interface {
	Kind() Kind
	// Members returns every placement in the pattern, each carrying its
	// origin chart.
	Members() []chart.Placement
	sealed()
}

// TSquare is an opposition with a third point square to both ends.
type TSquare struct {
	Apex       chart.Placement    `json:"apex"`
	Opposition [2]chart.Placement `json:"opposition"`
	Modality   zodiac.Modality    `json:"modality"`
	AverageOrb float64            `json:"average_orb"`
}

// GrandTrine is three points in mutual trine.
type GrandTrine struct {
	Points     [3]chart.Placement `json:"points"`
	Element    zodiac.Element     `json:"element"`
	AverageOrb float64            `json:"average_orb"`
}

// GrandCross is two oppositions squaring each other. Points run around the
// cross, so Points[0] opposes Points[2] and Points[1] opposes Points[3].
type GrandCross struct {
	Points     [4]chart.Placement `json:"points"`
	Modality   zodiac.Modality    `json:"modality"`
	AverageOrb float64            `json:"average_orb"`
}

// Yod is a sextile with a third point quincunx to both ends.
type Yod struct {
	Apex       chart.Placement    `json:"apex"`
	Base       [2]chart.Placement `json:"base"`
	AverageOrb float64            `json:"average_orb"`
}

// MysticRectangle is two oppositions whose ends are joined by sextiles and
// trines.
type MysticRectangle struct {
	Oppositions [2][2]chart.Placement `json:"oppositions"`
	AverageOrb  float64               `json:"average_orb"`
}

// Kite is a Grand Trine with a fourth point opposing one of its members.
type Kite struct {
	GrandTrine [3]chart.Placement `json:"grand_trine"`
	Opposition chart.Placement    `json:"opposition"`
	Anchor     chart.Placement    `json:"anchor"`
	AverageOrb float64            `json:"average_orb"`
}

// Stellium is a cluster of points sharing a sign, or a house when Sign is
// nil. Houses lists the houses the members occupy when cusps are known.
type Stellium struct {
	Points     []chart.Placement `json:"points"`
	Sign       *zodiac.Sign      `json:"sign,omitempty"`
	House      int               `json:"house,omitempty"`
	Houses     []int             `json:"houses,omitempty"`
	DegreeSpan float64           `json:"degree_span"`
}

func (TSquare) Kind() Kind         { return KindTSquare }
func (GrandTrine) Kind() Kind      { return KindGrandTrine }
func (GrandCross) Kind() Kind      { return KindGrandCross }
func (Yod) Kind() Kind             { return KindYod }
func (MysticRectangle) Kind() Kind { return KindMysticRectangle }
func (Kite) Kind() Kind            { return KindKite }
func (Stellium) Kind() Kind        { return KindStellium }

func (TSquare) sealed()         {}
func (GrandTrine) sealed()      {}
func (GrandCross) sealed()      {}
func (Yod) sealed()             {}
func (MysticRectangle) sealed() {}
func (Kite) sealed()            {}
func (Stellium) sealed()        {}

func (p TSquare) Members() []chart.Placement {
	return []chart.Placement{p.Opposition[0], p.Opposition[1], p.Apex}
}

func (p GrandTrine) Members() []chart.Placement { return p.Points[:] }

func (p GrandCross) Members() []chart.Placement { return p.Points[:] }

func (p Yod) Members() []chart.Placement {
	return []chart.Placement{p.Base[0], p.Base[1], p.Apex}
}

func (p MysticRectangle) Members() []chart.Placement {
	return []chart.Placement{p.Oppositions[0][0], p.Oppositions[0][1], p.Oppositions[1][0], p.Oppositions[1][1]}
}

func (p Kite) Members() []chart.Placement {
	return []chart.Placement{p.GrandTrine[0], p.GrandTrine[1], p.GrandTrine[2], p.Opposition}
}

func (p Stellium) Members() []chart.Placement { return p.Points }

// Provenance returns the sorted, distinct chart names of a pattern's members.
func Provenance(p Pattern) []string {
	var names []string
	for _, m := range p.Members() {
		if !slices.Contains(names, m.Chart) {
			names = append(names, m.Chart)
		}
	}
	slices.Sort(names)
	return names
}

// The JSON forms carry a "type" field so a formatter can dispatch without
// knowing the Go type.

func (p TSquare) MarshalJSON() ([]byte, error) {
	type plain TSquare
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}

func (p GrandTrine) MarshalJSON() ([]byte, error) {
	type plain GrandTrine
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}

func (p GrandCross) MarshalJSON() ([]byte, error) {
	type plain GrandCross
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}

func (p Yod) MarshalJSON() ([]byte, error) {
	type plain Yod
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}

func (p MysticRectangle) MarshalJSON() ([]byte, error) {
	type plain MysticRectangle
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}

func (p Kite) MarshalJSON() ([]byte, error) {
	type plain Kite
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}

func (p Stellium) MarshalJSON() ([]byte, error) {
	type plain Stellium
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{p.Kind(), plain(p)})
}
