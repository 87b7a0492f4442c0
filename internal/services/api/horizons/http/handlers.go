// Package http provides the horizons relay transport.
//
// The wire format here is fixed by the clients that already consume the
// relay, so it deliberately skips the shared envelope: success bodies are
// the upstream JSON verbatim, failures are {"error": <msg>, "result": null}
// with a 500
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"astrolabe/internal/modkit/httpkit"
	svc "astrolabe/internal/services/api/horizons/service"
)

// errWire is the legacy error body
type errWire struct {
	Error  string `json:"error"`
	Result any    `json:"result"`
}

// Register mounts the relay endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/", h.relay)
	r.Options("/", h.preflight)
}

type handlers struct{ svc svc.Service }

// setCORS writes the permissive cross-origin headers expected by the
// browser clients of this relay
func setCORS(w stdhttp.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// preflight answers OPTIONS probes immediately without an upstream call
func (h *handlers) preflight(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	setCORS(w)
	w.WriteHeader(stdhttp.StatusNoContent)
}

// swagger:route GET /horizons Horizons horizonsRelay
// @Summary Relay a planetary-position query to the JPL Horizons API
// @Tags Horizons
// @Produce json
// @Success 200 {object} any "upstream payload, relayed verbatim"
// @Failure 500 {object} errWire "error envelope"
// @Router /horizons [get]
func (h *handlers) relay(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	body, err := h.svc.Relay(r.Context(), r.URL.RawQuery)

	setCORS(w)
	w.Header().Set("Content-Type", "application/json")

	if err != nil {
		w.WriteHeader(stdhttp.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errWire{Error: err.Error(), Result: nil})
		return
	}
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(body)
}
