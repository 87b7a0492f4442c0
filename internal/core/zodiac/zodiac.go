// Package zodiac maps ecliptic longitudes to zodiac signs.
// A sign spans 30 degrees; index 0 is Aries at the vernal equinox point
package zodiac

import "math"

// Names are the twelve sign names in zodiacal order
var Names = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Position is a longitude expressed as a sign and degrees within it
type Position struct {
	SignIndex int     `json:"sign_index"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
}

// Wrap normalizes any degree value into [0, 360)
func Wrap(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// FromLongitude converts an ecliptic longitude in [0, 360) to a Position.
// Callers must wrap longitudes first; values outside the range are not defined
func FromLongitude(lon float64) Position {
	i := int(math.Floor(lon/30)) % 12
	return Position{
		SignIndex: i,
		Sign:      Names[i],
		Degree:    math.Mod(lon, 30),
	}
}

// Sign is one entry of the fixed sign table
type Sign struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	From  int    `json:"from_degree"`
	To    int    `json:"to_degree"`
}

// Signs returns the full fixed sign table
func Signs() []Sign {
	out := make([]Sign, 0, len(Names))
	for i, n := range Names {
		out = append(out, Sign{Index: i, Name: n, From: i * 30, To: (i + 1) * 30})
	}
	return out
}
