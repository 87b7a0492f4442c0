package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"astrolabe/internal/ephem"
	phttp "astrolabe/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type idleLib struct{}

func (idleLib) Init(string) error { return nil }

func (idleLib) JulianDay(int, int, int, float64) float64 { return 0 }

func (idleLib) Houses(float64, float64, float64) (float64, float64, error) { return 0, 0, nil }

func (idleLib) Close() {}

func mount(t *testing.T) *chi.Mux {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), Deps{
		ServiceName: "astrolabe-api",
		StartedAt:   time.Now().Add(-time.Minute),
		Engine:      ephem.New(idleLib{}, ephem.Options{}),
	})
	return m
}

func getJSON(t *testing.T, m *chi.Mux, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("GET %s = %d", path, rec.Code)
	}
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope for %s: %v", path, err)
	}
	return env.Data
}

func TestHealthEndpoint(t *testing.T) {
	data := getJSON(t, mount(t), "/health")
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", data)
	}
	if data["engine"] != "uninitialized" {
		t.Fatalf("health must surface engine state: %+v", data)
	}
}

func TestVersionEndpoint(t *testing.T) {
	data := getJSON(t, mount(t), "/version")
	if data["service"] != "astrolabe-api" {
		t.Fatalf("unexpected version payload: %+v", data)
	}
	if _, ok := data["version"]; !ok {
		t.Fatalf("version missing: %+v", data)
	}
}

func TestServiceEndpoint(t *testing.T) {
	data := getJSON(t, mount(t), "/service")
	if data["service"] != "astrolabe-api" {
		t.Fatalf("unexpected service payload: %+v", data)
	}
	if data["uptime"] == "" || data["started"] == "" {
		t.Fatalf("uptime fields missing: %+v", data)
	}
}

func TestEngineEndpointReportsLazyState(t *testing.T) {
	data := getJSON(t, mount(t), "/engine")
	if data["state"] != "uninitialized" {
		t.Fatalf("fresh engine must report uninitialized: %+v", data)
	}
	if data["ready"] != false {
		t.Fatalf("fresh engine must not be ready: %+v", data)
	}
}
