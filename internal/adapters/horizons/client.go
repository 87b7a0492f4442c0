// Package horizons provides a resilient client for the JPL Horizons
// ephemeris API. Query parameters are treated as opaque: the raw query
// string is relayed verbatim and the upstream stays the validator
package horizons

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "astrolabe/internal/platform/errors"
	"astrolabe/internal/platform/logger"
)

const (
	baseURLDefault   = "https://ssd.jpl.nasa.gov/api/horizons.api"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "astrolabe-api"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond

	// excerptLimit bounds how much upstream body we keep for diagnostics
	excerptLimit = 2048
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient failures only; upstream rejections
	// are authoritative and never retried
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a thin relay over the Horizons REST API with bounded retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("horizons"),
		sleep: time.Sleep,
	}
}

// Query issues a GET with the caller's raw query string appended unchanged
// and returns the upstream JSON body verbatim.
//
// rawQuery is copied as-is: same names, same values, same order. Transport
// errors and transient 502/503/504 responses are retried with exponential
// backoff up to MaxRetries; other non-2xx statuses fail immediately with
// the upstream status and a body excerpt
func (c *Client) Query(ctx context.Context, rawQuery string) (json.RawMessage, error) {
	url := c.opts.BaseURL
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeTransport, "horizons request canceled")
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "horizons new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.http.Do(req)
		lat := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeTransport, "horizons request canceled")
			}
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeTransport, "horizons unreachable")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("horizons transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("query", rawQuery).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("horizons http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body, rerr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if rerr != nil {
				return nil, perr.Wrapf(rerr, perr.ErrorCodeTransport, "horizons body read failed")
			}
			if !json.Valid(body) {
				return nil, perr.Upstreamf("horizons returned invalid JSON")
			}
			return json.RawMessage(body), nil

		case resp.StatusCode == http.StatusBadGateway ||
			resp.StatusCode == http.StatusServiceUnavailable ||
			resp.StatusCode == http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Upstreamf("horizons transient server error status %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Int("status", resp.StatusCode).
				Msg("horizons transient error retrying")
			c.sleep(back)
			attempts++
			continue

		default:
			// read a small tail for diagnostics then return
			body, _ := io.ReadAll(io.LimitReader(resp.Body, excerptLimit))
			_ = resp.Body.Close()
			return nil, perr.Upstreamf("horizons error status %d: %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	if ceil := int64(10 * time.Second / time.Millisecond); ms > ceil {
		ms = ceil
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, excerptLimit))
	return rc.Close()
}
