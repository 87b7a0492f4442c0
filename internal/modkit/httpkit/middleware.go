package httpkit

import (
	"net/http"
	"time"

	"astrolabe/internal/platform/net/middleware"
)

// CommonStack returns a baseline per scope middleware slice
// compose with extra middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin (permissive; the horizons relay also sets its own headers)
		middleware.CORS(middleware.CORSOptions{}),

		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
