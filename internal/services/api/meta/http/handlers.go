// Package http provides http transport for service metadata
package http

import (
	stdhttp "net/http"
	"time"

	"astrolabe/internal/core/version"
	"astrolabe/internal/ephem"
	"astrolabe/internal/modkit/httpkit"
)

// Deps carries what the meta endpoints report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Engine      *ephem.Engine
}

// Register mounts meta endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/engine", h.engine)
}

type handlers struct{ deps Deps }

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness probe with engine state
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *stdhttp.Request) (any, error) {
	return map[string]any{
		"status": "ok",
		"engine": h.deps.Engine.State(),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build version information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *stdhttp.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service identity and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *stdhttp.Request) (any, error) {
	return map[string]any{
		"service": h.deps.ServiceName,
		"started": h.deps.StartedAt.UTC().Format(time.RFC3339),
		"uptime":  time.Since(h.deps.StartedAt).Round(time.Second).String(),
	}, nil
}

// swagger:route GET /meta/engine Meta metaEngine
// @Summary Calculation engine state
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string]any "ok"
// @Router /meta/engine [get]
func (h *handlers) engine(_ *stdhttp.Request) (any, error) {
	return map[string]any{
		"state": h.deps.Engine.State(),
		"ready": h.deps.Engine.Ready(),
	}, nil
}
