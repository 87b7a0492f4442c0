// Package module wires charts into the API using modkit
package module

import (
	"net/http"

	"astrolabe/internal/ephem"
	modkit "astrolabe/internal/modkit"
	"astrolabe/internal/modkit/httpkit"
	str "astrolabe/internal/platform/strings"
	charthttp "astrolabe/internal/services/api/chart/http"
	chartsvc "astrolabe/internal/services/api/chart/service"
)

// Module implements the chart module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	svc chartsvc.Service
}

// New constructs the chart module around the shared engine
func New(deps modkit.Deps, engine *ephem.Engine, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("chart"), modkit.WithPrefix("/chart")}, opts...)...)

	svc := chartsvc.New(engine)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		charthttp.Register(r, m.svc)
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
