// Package ephem owns the shared astronomical calculation engine and exposes
// deterministic ascendant/midheaven queries against it
package ephem

import (
	"context"
	"sync"
	"time"

	"astrolabe/internal/core/birthtime"
	"astrolabe/internal/core/zodiac"
	"astrolabe/internal/platform/config"
	perr "astrolabe/internal/platform/errors"
	"astrolabe/internal/platform/logger"
)

// CalcLib is the seam over the underlying calculation library.
// Implementations are treated as not thread-safe; the Engine serializes
// every call behind its mutex
type CalcLib interface {
	// Init loads/configures the library, pointing it at ephemeris data files
	Init(ephePath string) error

	// JulianDay converts a proleptic Gregorian civil date plus fractional
	// hour (UT) to a Julian Day number
	JulianDay(year, month, day int, hourUT float64) float64

	// Houses computes Placidus house cusps and returns the ascendant
	// (1st cusp) and midheaven (10th cusp) in degrees
	Houses(jd, lat, lon float64) (asc, mc float64, err error)

	// Close releases library resources
	Close()
}

// AstroResult carries the computed angles. When Success is false the
// angles hold sentinel zeros and must not be read; branch on Success first
type AstroResult struct {
	Ascendant float64 `json:"ascendant"`
	MC        float64 `json:"mc"`
	Success   bool    `json:"success"`
	Error     string  `json:"error,omitempty"`
}

// Options configures the Engine
type Options struct {
	// EphePath is the ephemeris data directory handed to the library
	EphePath string
}

// FromConfig builds Options from an EPHEMERIS_ scoped Conf
func FromConfig(cfg config.Conf) Options {
	return Options{
		EphePath: cfg.MayString("DATA_PATH", "/usr/share/sweph/ephe"),
	}
}

// Engine is the process-scoped owner of the calculation library.
// Initialization is lazy and single-flight: the first calculation performs
// it, concurrent callers wait, and a failed attempt is not memoized so the
// next call retries
type Engine struct {
	mu    sync.Mutex
	lib   CalcLib
	opts  Options
	ready bool
	log   logger.Logger
}

// New constructs an Engine around the given library
func New(lib CalcLib, opts Options) *Engine {
	if lib == nil {
		panic("ephem.Engine requires a non nil CalcLib")
	}
	return &Engine{
		lib:  lib,
		opts: opts,
		log:  *logger.Named("ephem"),
	}
}

// Ready reports whether the library has been initialized
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// State returns a short human label for the meta endpoint
func (e *Engine) State() string {
	if e.Ready() {
		return "ready"
	}
	return "uninitialized"
}

// ensureInitialized runs the one-time library setup. Callers must hold e.mu.
// Idempotent once ready; failure leaves the engine uninitialized so a later
// call can retry
func (e *Engine) ensureInitialized() error {
	if e.ready {
		return nil
	}
	start := time.Now()
	if err := e.lib.Init(e.opts.EphePath); err != nil {
		e.log.Error().Err(err).Str("ephe_path", e.opts.EphePath).Msg("calculation library init failed")
		return perr.Wrapf(err, perr.ErrorCodeEngineInit, "calculation library init failed")
	}
	e.ready = true
	e.log.Info().Str("ephe_path", e.opts.EphePath).Dur("elapsed", time.Since(start)).Msg("calculation library ready")
	return nil
}

// Calculate computes the ascendant and midheaven for the given birth data.
//
// The clock time is interpreted as universal time with the proleptic
// Gregorian calendar convention; Julian-calendar handling would silently
// shift results for historical dates, so the choice is fixed here.
//
// This is a boundary: every failure comes back as Success:false with a
// diagnostic, never as a panic or a Go error, and never affects engine
// state for subsequent calls
func (e *Engine) Calculate(ctx context.Context, b birthtime.BirthData) AstroResult {
	year, month, day, hour, minute, err := parseCivil(b.Date, b.Time)
	if err != nil {
		return failed(err)
	}
	if b.Latitude < -90 || b.Latitude > 90 || b.Longitude < -180 || b.Longitude > 180 {
		return failed(perr.MalformedInputf("coordinates out of range: lat=%v lon=%v", b.Latitude, b.Longitude))
	}

	if err := ctx.Err(); err != nil {
		return failed(perr.Wrapf(err, perr.ErrorCodeUnknown, "calculation canceled"))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureInitialized(); err != nil {
		return failed(err)
	}

	jd := e.lib.JulianDay(year, month, day, float64(hour)+float64(minute)/60)
	asc, mc, err := e.lib.Houses(jd, b.Latitude, b.Longitude)
	if err != nil {
		e.log.Warn().Err(err).Float64("jd", jd).
			Float64("lat", b.Latitude).Float64("lon", b.Longitude).
			Msg("house computation failed")
		return failed(err)
	}

	return AstroResult{
		Ascendant: zodiac.Wrap(asc),
		MC:        zodiac.Wrap(mc),
		Success:   true,
	}
}

// Close releases the library. Only meant for process shutdown
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		e.lib.Close()
		e.ready = false
	}
}

// failed builds the sentinel-zero failure result
func failed(err error) AstroResult {
	return AstroResult{Success: false, Error: err.Error()}
}

// parseCivil splits "2006-01-02" and "15:04" strings into integer fields
func parseCivil(date, clock string) (year, month, day, hour, minute int, err error) {
	d, derr := time.Parse("2006-01-02", date)
	if derr != nil {
		return 0, 0, 0, 0, 0, perr.MalformedInputf("invalid birth date %q: expected YYYY-MM-DD", date)
	}
	t, terr := time.Parse("15:04", clock)
	if terr != nil {
		return 0, 0, 0, 0, 0, perr.MalformedInputf("invalid birth time %q: expected HH:MM", clock)
	}
	return d.Year(), int(d.Month()), d.Day(), t.Hour(), t.Minute(), nil
}
