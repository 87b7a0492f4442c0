// Package module wires the horizons relay into the API using modkit
package module

import (
	"net/http"
	"time"

	"astrolabe/internal/adapters/horizons"
	modkit "astrolabe/internal/modkit"
	"astrolabe/internal/modkit/httpkit"
	str "astrolabe/internal/platform/strings"
	horizonshttp "astrolabe/internal/services/api/horizons/http"
	horizonssvc "astrolabe/internal/services/api/horizons/service"
)

// Module implements the horizons relay module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	svc horizonssvc.Service
}

// New constructs the horizons module. Client and cache settings come from
// the HORIZONS_ config scope
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("horizons"), modkit.WithPrefix("/horizons")}, opts...)...)

	cfg := deps.Cfg.Prefix("HORIZONS_")
	client := horizons.NewClient(horizons.Options{
		BaseURL:    cfg.MayString("BASE_URL", ""),
		UserAgent:  cfg.MayString("USER_AGENT", ""),
		Timeout:    cfg.MayDuration("TIMEOUT", 0),
		MaxRetries: cfg.MayInt("MAX_RETRIES", 0),
		RetryBase:  cfg.MayDuration("RETRY_BASE", 0),
	})
	svc := horizonssvc.New(client, horizonssvc.Options{
		CacheTTL: cfg.MayDuration("CACHE_TTL", 60*time.Second),
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		horizonshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
