package zodiac

// HouseCount is the number of cusps a house system must supply.
const HouseCount = 12

// HouseOf returns the 1-based house containing lon, scanning the twelve cusp
// intervals in order. An interval whose end cusp is smaller than its start
// wraps through 0°. It reports false when cusps does not hold exactly twelve
// values.
func HouseOf(lon float64, cusps []float64) (int, bool) {
	if len(cusps) != HouseCount {
		return 0, false
	}
	p := Normalize(lon)
	for i := 0; i < HouseCount; i++ {
		start := Normalize(cusps[i])
		end := Normalize(cusps[(i+1)%HouseCount])
		if start <= end {
			if p >= start && p < end {
				return i + 1, true
			}
			continue
		}
		if p >= start || p < end {
			return i + 1, true
		}
	}
	return 0, false
}
