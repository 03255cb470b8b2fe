package dispositor

import (
	"strings"

	"github.com/papapumpkin/constellate/internal/zodiac"
)

// domicile lists each sign's rulers: the traditional ruler first, then the
// modern co-ruler where one exists.
var domicile = [12][]string{
	zodiac.Aries:       {"Mars"},
	zodiac.Taurus:      {"Venus"},
	zodiac.Gemini:      {"Mercury"},
	zodiac.Cancer:      {"Moon"},
	zodiac.Leo:         {"Sun"},
	zodiac.Virgo:       {"Mercury"},
	zodiac.Libra:       {"Venus"},
	zodiac.Scorpio:     {"Mars", "Pluto"},
	zodiac.Sagittarius: {"Jupiter"},
	zodiac.Capricorn:   {"Saturn"},
	zodiac.Aquarius:    {"Saturn", "Uranus"},
	zodiac.Pisces:      {"Jupiter", "Neptune"},
}

var exaltation = map[string]zodiac.Sign{
	"Sun":     zodiac.Aries,
	"Moon":    zodiac.Taurus,
	"Mercury": zodiac.Virgo,
	"Venus":   zodiac.Pisces,
	"Mars":    zodiac.Capricorn,
	"Jupiter": zodiac.Cancer,
	"Saturn":  zodiac.Libra,
}

// Rulers returns the rulers of a sign, traditional first.
func Rulers(s zodiac.Sign) []string {
	if s < zodiac.Aries || s > zodiac.Pisces {
		return nil
	}
	out := make([]string, len(domicile[s]))
	copy(out, domicile[s])
	return out
}

// Dignity is a point's essential dignity in the sign it occupies.
type Dignity string

const (
	DignityDomicile   Dignity = "domicile"
	DignityExaltation Dignity = "exaltation"
	DignityDetriment  Dignity = "detriment"
	DignityFall       Dignity = "fall"
	DignityNone       Dignity = "none"
)

// DignityOf returns the dignity of the named body in sign s. Bodies missing
// from the tables have no dignity.
func DignityOf(name string, s zodiac.Sign) Dignity {
	name = canonical(name)
	opposite := zodiac.Sign((int(s) + 6) % 12)
	switch {
	case rules(name, s):
		return DignityDomicile
	case exalted(name, s):
		return DignityExaltation
	case rules(name, opposite):
		return DignityDetriment
	case exalted(name, opposite):
		return DignityFall
	}
	return DignityNone
}

func rules(name string, s zodiac.Sign) bool {
	for _, r := range domicile[s] {
		if r == name {
			return true
		}
	}
	return false
}

func exalted(name string, s zodiac.Sign) bool {
	e, ok := exaltation[name]
	return ok && e == s
}

// canonical maps a point name onto the spelling used by the tables, so
// "venus" and "VENUS" resolve like "Venus".
func canonical(name string) string {
	for _, rs := range domicile {
		for _, r := range rs {
			if strings.EqualFold(r, name) {
				return r
			}
		}
	}
	return name
}
