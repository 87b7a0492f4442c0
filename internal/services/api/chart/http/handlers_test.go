package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"astrolabe/internal/core/zodiac"
	phttp "astrolabe/internal/platform/net/http"
	"astrolabe/internal/services/api/chart/domain"

	"github.com/go-chi/chi/v5"
)

// fakeSvc returns a canned chart
type fakeSvc struct {
	chart domain.NatalChart
	err   error
	last  domain.OnboardingInput
}

func (f *fakeSvc) Natal(_ context.Context, in domain.OnboardingInput) (domain.NatalChart, error) {
	f.last = in
	return f.chart, f.err
}

func (f *fakeSvc) Signs() []zodiac.Sign { return zodiac.Signs() }

func mount(svc *fakeSvc) *chi.Mux {
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), svc)
	return m
}

const validPayload = `{
	"name": "Amelie",
	"email": "amelie@example.com",
	"birth_date": "2002-10-03",
	"birth_time": "evening",
	"birth_place": "Paris",
	"latitude": 48.8844,
	"longitude": 2.2667
}`

func TestNatalReturnsEnvelopedChart(t *testing.T) {
	svc := &fakeSvc{chart: domain.NatalChart{
		ChartID:   "abc",
		BirthTime: "20:00",
		Success:   true,
		Ascendant: &domain.Angle{Degrees: 95.2, Position: zodiac.FromLongitude(95.2)},
		MC:        &domain.Angle{Degrees: 5.7, Position: zodiac.FromLongitude(5.7)},
	}}
	m := mount(svc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/natal", strings.NewReader(validPayload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var env struct {
		StatusCode int               `json:"status_code"`
		Data       domain.NatalChart `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if env.StatusCode != 200 || !env.Data.Success || env.Data.ChartID != "abc" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Data.Ascendant == nil || env.Data.Ascendant.Position.Sign != "Cancer" {
		t.Fatalf("ascendant lost in transit: %+v", env.Data)
	}
	if svc.last.BirthTime != "evening" {
		t.Fatalf("input not passed through: %+v", svc.last)
	}
}

func TestNatalCalculationFailureStaysHTTP200(t *testing.T) {
	svc := &fakeSvc{chart: domain.NatalChart{Success: false, Error: "invalid birth date"}}
	m := mount(svc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/natal", strings.NewReader(validPayload))
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("calculation failures ride a 200, got %d", rec.Code)
	}

	var env struct {
		Data domain.NatalChart `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if env.Data.Success || env.Data.Error == "" || env.Data.Ascendant != nil {
		t.Fatalf("unexpected failure shape: %+v", env.Data)
	}
}

func TestNatalRejectsInvalidPayload(t *testing.T) {
	svc := &fakeSvc{}
	m := mount(svc)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"A","birth_date":"2002-10-03","birth_time":"day","birth_place":"Paris"}`},
		{"bad email", strings.Replace(validPayload, "amelie@example.com", "not-an-email", 1)},
		{"latitude out of range", strings.Replace(validPayload, "48.8844", "91", 1)},
		{"malformed json", `{"name":`},
		{"empty body", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(stdhttp.MethodPost, "/natal", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			m.ServeHTTP(rec, req)

			if rec.Code != stdhttp.StatusBadRequest {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			if svc.last != (domain.OnboardingInput{}) {
				t.Fatalf("service must not be called for invalid input: %+v", svc.last)
			}
		})
	}
}

func TestSignsEndpoint(t *testing.T) {
	m := mount(&fakeSvc{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/signs", nil)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var env struct {
		Data []zodiac.Sign `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if len(env.Data) != 12 || env.Data[0].Name != "Aries" {
		t.Fatalf("unexpected sign table: %+v", env.Data)
	}
}
