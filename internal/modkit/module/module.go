// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "astrolabe/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Name() string
}
