// Package api assembles the http modules into the versioned API surface
package api

import (
	"time"

	"astrolabe/internal/ephem"
	modkit "astrolabe/internal/modkit"
	"astrolabe/internal/modkit/httpkit"
	"astrolabe/internal/modkit/module"
	"astrolabe/internal/platform/config"
	"astrolabe/internal/platform/logger"
	phttp "astrolabe/internal/platform/net/http"
	chartmod "astrolabe/internal/services/api/chart/module"
	horizonsmod "astrolabe/internal/services/api/horizons/module"
	metahttp "astrolabe/internal/services/api/meta/http"
	metamod "astrolabe/internal/services/api/meta/module"
)

// Options configures the API surface
type Options struct {
	Config        config.Conf
	Logger        logger.Logger
	Engine        *ephem.Engine
	ServiceName   string
	EnableSwagger bool
}

// Mount registers all API modules under /api/v1 plus the docs route
func Mount(r phttp.Router, opts Options) {
	deps := modkit.Deps{Log: opts.Logger, Cfg: opts.Config}

	mods := []module.Module{
		metamod.New(deps, metahttp.Deps{
			ServiceName: opts.ServiceName,
			StartedAt:   time.Now(),
			Engine:      opts.Engine,
		}),
		chartmod.New(deps, opts.Engine),
		horizonsmod.New(deps),
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(apiR httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(apiR)
		}
	})

	phttp.MountSwagger(r, opts.EnableSwagger)
}
