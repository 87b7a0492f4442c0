// Package module wires the meta endpoints into the API using modkit
package module

import (
	"net/http"

	modkit "astrolabe/internal/modkit"
	"astrolabe/internal/modkit/httpkit"
	str "astrolabe/internal/platform/strings"
	metahttp "astrolabe/internal/services/api/meta/http"
)

// Module implements the meta module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)
}

// New constructs the meta module
func New(deps modkit.Deps, hd metahttp.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, hd)
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
