package zodiac

import (
	"fmt"
	"math"
)

// Sign is a 30° zodiac sign, Aries = 0 through Pisces = 11.
type Sign int

// The twelve signs in zodiacal order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the sign's English name.
func (s Sign) String() string {
	if s < 0 || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalText encodes the sign by name so reports stay readable.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Element returns the triplicity of the sign.
func (s Sign) Element() Element {
	return Element(int(s) % 4)
}

// Modality returns the quadruplicity of the sign.
func (s Sign) Modality() Modality {
	return Modality(int(s) % 3)
}

// SignOf returns the sign containing the longitude.
func SignOf(lon float64) Sign {
	return Sign(int(Normalize(lon)/30) % 12)
}

// DegreeInSign returns the offset of the longitude into its sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(Normalize(lon), 30)
}

// SignDistance returns how many signs apart two longitudes are, counted the
// short way round: 0 for the same sign up to 6 for opposite signs.
func SignDistance(a, b float64) int {
	d := int(SignOf(a)) - int(SignOf(b))
	if d < 0 {
		d = -d
	}
	if d > 6 {
		d = 12 - d
	}
	return d
}

// Element is one of the four triplicities.
type Element int

// Elements in the order they cycle through the signs.
const (
	Fire Element = iota
	Earth
	Air
	Water
)

// String returns the element name.
func (e Element) String() string {
	switch e {
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Air:
		return "Air"
	case Water:
		return "Water"
	}
	return fmt.Sprintf("Element(%d)", int(e))
}

// MarshalText encodes the element by name.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Modality is one of the three quadruplicities.
type Modality int

// Modalities in the order they cycle through the signs.
const (
	Cardinal Modality = iota
	Fixed
	Mutable
)

// String returns the modality name.
func (m Modality) String() string {
	switch m {
	case Cardinal:
		return "Cardinal"
	case Fixed:
		return "Fixed"
	case Mutable:
		return "Mutable"
	}
	return fmt.Sprintf("Modality(%d)", int(m))
}

// MarshalText encodes the modality by name.
func (m Modality) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
