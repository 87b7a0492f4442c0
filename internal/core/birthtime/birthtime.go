// Package birthtime resolves fuzzy onboarding birth-time descriptors into
// exact clock times and assembles canonical birth data.
//
// Matching contract: descriptors are folded case-insensitively and checked
// against a closed table of recognized markers, first match wins in declared
// order. Anything unmatched is assumed to already be an exact HH:MM string
// and is returned unchanged; malformed strings are not rejected here, they
// surface downstream as a calculation failure
package birthtime

import (
	"strings"

	"golang.org/x/text/cases"
)

// Canonical clock times for the fuzzy buckets
const (
	clockNight   = "04:00"
	clockDay     = "12:00"
	clockEvening = "20:00"
	clockUnknown = "12:00"
)

// variant maps a descriptor marker to its canonical clock time.
// Order matters: earlier entries take priority
var variants = []struct {
	marker string
	clock  string
}{
	{"night", clockNight},
	{"day", clockDay},
	{"evening", clockEvening},
	{"unknown", clockUnknown},
	{"not sure", clockUnknown},
	{"don't know", clockUnknown},
}

var fold = cases.Fold()

// ResolveTime maps a fuzzy time-of-day descriptor to an exact HH:MM string.
// Unrecognized descriptors pass through unchanged (assumed already exact)
func ResolveTime(descriptor string) string {
	folded := fold.String(strings.TrimSpace(descriptor))
	for _, v := range variants {
		if strings.Contains(folded, v.marker) {
			return v.clock
		}
	}
	return descriptor
}

// Input is the subset of onboarding fields the normalizer consumes
type Input struct {
	Date           string
	TimeDescriptor string
	Latitude       float64
	Longitude      float64
}

// BirthData is a fully resolved birth event: calendar date, exact clock
// time to the minute, and real-valued geographic coordinates
type BirthData struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToBirthData is a pure projection: date and coordinates are copied
// verbatim, the time descriptor is resolved via ResolveTime
func ToBirthData(in Input) BirthData {
	return BirthData{
		Date:      in.Date,
		Time:      ResolveTime(in.TimeDescriptor),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
}
