package service

import (
	"context"
	"errors"
	"testing"

	"astrolabe/internal/ephem"
	"astrolabe/internal/platform/testkit"
	"astrolabe/internal/services/api/chart/domain"
)

// stubLib is a minimal calculation library for wiring the real engine
type stubLib struct {
	asc, mc   float64
	housesErr error
}

func (s *stubLib) Init(string) error { return nil }
func (s *stubLib) JulianDay(year, month, day int, hourUT float64) float64 {
	return float64(year) + hourUT
}
func (s *stubLib) Houses(jd, lat, lon float64) (float64, float64, error) {
	if s.housesErr != nil {
		return 0, 0, s.housesErr
	}
	return s.asc, s.mc, nil
}
func (s *stubLib) Close() {}

func newSvc(lib ephem.CalcLib) *Svc {
	return New(ephem.New(lib, ephem.Options{}))
}

func input() domain.OnboardingInput {
	return domain.OnboardingInput{
		Name:       "Amelie",
		Email:      "amelie@example.com",
		BirthDate:  "2002-10-03",
		BirthTime:  "evening",
		BirthPlace: "Paris",
		Latitude:   48.8844,
		Longitude:  2.2667,
	}
}

func TestNewPanicsOnNilEngine(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil) })
}

func TestNatalResolvesFuzzyTimeAndComputesAngles(t *testing.T) {
	s := newSvc(&stubLib{asc: 95.2, mc: 5.7})

	chart, err := s.Natal(context.Background(), input())
	if err != nil {
		t.Fatalf("Natal failed: %v", err)
	}

	if !chart.Success {
		t.Fatalf("expected success, got %+v", chart)
	}
	if chart.ChartID == "" {
		t.Fatal("chart id must be assigned")
	}
	if chart.BirthTime != "20:00" {
		t.Fatalf("fuzzy descriptor not resolved: %q", chart.BirthTime)
	}
	if chart.BirthDate != "2002-10-03" || chart.BirthPlace != "Paris" {
		t.Fatalf("birth fields not carried through: %+v", chart)
	}

	if chart.Ascendant == nil || chart.MC == nil {
		t.Fatalf("angles must be present on success: %+v", chart)
	}
	if chart.Ascendant.Degrees != 95.2 || chart.Ascendant.Position.Sign != "Cancer" {
		t.Fatalf("unexpected ascendant: %+v", chart.Ascendant)
	}
	if chart.MC.Degrees != 5.7 || chart.MC.Position.Sign != "Aries" {
		t.Fatalf("unexpected mc: %+v", chart.MC)
	}
}

func TestNatalFailureKeepsNilAngles(t *testing.T) {
	s := newSvc(&stubLib{housesErr: errors.New("polar latitude")})

	chart, err := s.Natal(context.Background(), input())
	if err != nil {
		t.Fatalf("calculation failures must not become transport errors: %v", err)
	}
	if chart.Success {
		t.Fatalf("expected failure, got %+v", chart)
	}
	if chart.Error == "" {
		t.Fatal("failure must carry a diagnostic")
	}
	if chart.Ascendant != nil || chart.MC != nil {
		t.Fatalf("failed chart must not expose angles: %+v", chart)
	}
}

func TestNatalAssignsFreshChartIDs(t *testing.T) {
	s := newSvc(&stubLib{asc: 10, mc: 20})

	a, _ := s.Natal(context.Background(), input())
	b, _ := s.Natal(context.Background(), input())
	if a.ChartID == b.ChartID {
		t.Fatalf("chart ids must be unique per computation: %q", a.ChartID)
	}
}

func TestSigns(t *testing.T) {
	s := newSvc(&stubLib{})
	signs := s.Signs()
	if len(signs) != 12 || signs[0].Name != "Aries" {
		t.Fatalf("unexpected sign table: %+v", signs)
	}
}
