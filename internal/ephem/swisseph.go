package ephem

import (
	perr "astrolabe/internal/platform/errors"

	"github.com/mshafiee/swephgo"
)

const (
	gregorianCal = 1   // swisseph SE_GREG_CAL
	placidus     = 'P' // Placidus house system code
)

// SwissEph adapts the Swiss Ephemeris library (via the swephgo bindings)
// to the CalcLib seam. Not thread-safe; the Engine serializes access
type SwissEph struct{}

// Init points the library at its ephemeris data directory.
// Swiss Ephemeris falls back to its built-in analytical model when the
// data files are absent, so a missing directory is not an init failure
func (SwissEph) Init(ephePath string) error {
	swephgo.SetEphePath([]byte(ephePath))
	return nil
}

// JulianDay converts a Gregorian civil date and fractional UT hour
func (SwissEph) JulianDay(year, month, day int, hourUT float64) float64 {
	return swephgo.Julday(year, month, day, hourUT, gregorianCal)
}

// Houses computes Placidus cusps; ascmc[0] is the ascendant, ascmc[1] the MC
func (SwissEph) Houses(jd, lat, lon float64) (float64, float64, error) {
	cusps := make([]float64, 13)
	ascmc := make([]float64, 10)
	if rc := swephgo.Houses(jd, lat, lon, placidus, cusps, ascmc); rc < 0 {
		return 0, 0, perr.DegenerateGeometryf(
			"house computation failed for lat=%.4f lon=%.4f (polar latitudes are a known degenerate case)", lat, lon)
	}
	return ascmc[0], ascmc[1], nil
}

// Close releases library resources
func (SwissEph) Close() { swephgo.Close() }
