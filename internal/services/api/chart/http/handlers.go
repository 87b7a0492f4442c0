// Package http provides http transport for charts
package http

import (
	stdhttp "net/http"

	"astrolabe/internal/modkit/httpkit"
	"astrolabe/internal/services/api/chart/domain"
	svc "astrolabe/internal/services/api/chart/service"
)

// Register mounts chart endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// natal chart from onboarding input
	httpkit.PostJSON[domain.OnboardingInput](r, "/natal", h.natal)

	// fixed sign table
	httpkit.Get(r, "/signs", h.signs)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /chart/natal Chart chartNatal
// @Summary Compute ascendant and midheaven for a birth event
// @Tags Chart
// @Accept json
// @Produce json
// @Param payload body domain.OnboardingInput true "Onboarding input"
// @Success 200 {object} domain.NatalChart "ok"
// @Router /chart/natal [post]
func (h *handlers) natal(r *stdhttp.Request, in domain.OnboardingInput) (any, error) {
	return h.svc.Natal(r.Context(), in)
}

// swagger:route GET /chart/signs Chart chartSigns
// @Summary The twelve zodiac signs in order
// @Tags Chart
// @Produce json
// @Success 200 {array} zodiac.Sign "ok"
// @Router /chart/signs [get]
func (h *handlers) signs(_ *stdhttp.Request) (any, error) {
	return h.svc.Signs(), nil
}
