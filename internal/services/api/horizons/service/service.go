// Package service contains the horizons relay workflow
package service

import (
	"context"
	"encoding/json"
	"time"

	"astrolabe/internal/adapters/horizons"
	"astrolabe/internal/platform/logger"

	gocache "github.com/patrickmn/go-cache"
)

// Service defines the relay contract
type Service interface {
	Relay(ctx context.Context, rawQuery string) (json.RawMessage, error)
}

// Options configures the relay service
type Options struct {
	// CacheTTL bounds in-process reuse of identical queries; 0 disables caching
	CacheTTL time.Duration
}

// Svc implements Service with a short-lived response cache keyed by the
// full raw query string
type Svc struct {
	client *horizons.Client
	cache  *gocache.Cache
	log    logger.Logger
}

// New creates a new relay service
func New(client *horizons.Client, opts Options) *Svc {
	if client == nil {
		panic("horizons.Service requires a non nil Client")
	}
	s := &Svc{
		client: client,
		log:    *logger.Named("horizons-relay"),
	}
	if opts.CacheTTL > 0 {
		s.cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return s
}

// Relay forwards the raw query verbatim and returns the upstream JSON.
// Identical queries within the TTL are served from cache without an
// upstream call; errors are never cached
func (s *Svc) Relay(ctx context.Context, rawQuery string) (json.RawMessage, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(rawQuery); ok {
			s.log.Debug().Str("query", rawQuery).Msg("horizons cache hit")
			return v.(json.RawMessage), nil
		}
	}

	body, err := s.client.Query(ctx, rawQuery)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(rawQuery, body, gocache.DefaultExpiration)
	}
	return body, nil
}
