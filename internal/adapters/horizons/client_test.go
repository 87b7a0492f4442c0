package horizons

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "astrolabe/internal/platform/errors"
	"astrolabe/internal/platform/testkit"
)

// newTestClient points a client at the given server and stubs out sleeping
func newTestClient(t *testing.T, srv *httptest.Server, o Options) *Client {
	t.Helper()
	o.BaseURL = srv.URL
	c := NewClient(o)
	c.sleep = func(time.Duration) {}
	return c
}

func TestQueryRelaysRawQueryVerbatim(t *testing.T) {
	const raw = "format=json&COMMAND='499'&CENTER='500@399'&START_TIME='2002-10-03'"

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	body, err := c.Query(context.Background(), raw)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if gotQuery != raw {
		t.Fatalf("query not relayed verbatim:\n got  %q\n want %q", gotQuery, raw)
	}
	if string(body) != `{"result":"ok"}` {
		t.Fatalf("body not returned verbatim: %s", body)
	}
}

func TestQuerySetsHeaders(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{UserAgent: "probe"})
	if _, err := c.Query(context.Background(), ""); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if ua != "probe" || accept != "application/json" {
		t.Fatalf("unexpected headers ua=%q accept=%q", ua, accept)
	}
}

func TestQueryUpstreamRejectionNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad COMMAND", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{MaxRetries: 3})
	_, err := c.Query(context.Background(), "COMMAND=nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream code, got %v (code %d)", err, perr.CodeOf(err))
	}
	testkit.MustContain(t, err.Error(), "status 400")
	testkit.MustContain(t, err.Error(), "bad COMMAND")
	if got := hits.Load(); got != 1 {
		t.Fatalf("4xx must not be retried, got %d hits", got)
	}
	if perr.Retryable(err) {
		t.Fatal("upstream rejection must not be retryable")
	}
}

func TestQueryRetriesTransientStatusThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"result":"eventually"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{MaxRetries: 3, RetryBase: time.Millisecond})
	body, err := c.Query(context.Background(), "")
	if err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if string(body) != `{"result":"eventually"}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestQueryRetriesExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{MaxRetries: 2, RetryBase: time.Millisecond})
	_, err := c.Query(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream code, got %v", err)
	}
	// initial attempt plus two retries
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestQueryTransportErrorExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(Options{BaseURL: srv.URL, MaxRetries: 2, RetryBase: time.Millisecond})
	var slept int
	c.sleep = func(time.Duration) { slept++ }

	_, err := c.Query(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeTransport) {
		t.Fatalf("expected transport code, got %v", err)
	}
	if !perr.Retryable(err) {
		t.Fatal("transport failures should be retryable")
	}
	if slept != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %d", slept)
	}
}

func TestQueryInvalidUpstreamJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	_, err := c.Query(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("expected upstream code, got %v", err)
	}
	testkit.MustContain(t, err.Error(), "invalid JSON")
}

func TestQueryCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, srv, Options{})
	_, err := c.Query(ctx, "")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !perr.IsCode(err, perr.ErrorCodeTransport) {
		t.Fatalf("expected transport code, got %v", err)
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	c := NewClient(Options{RetryBase: 500 * time.Millisecond})

	if c.backoff(0) != 500*time.Millisecond {
		t.Fatalf("backoff(0) = %v", c.backoff(0))
	}
	if c.backoff(1) != time.Second {
		t.Fatalf("backoff(1) = %v", c.backoff(1))
	}
	if c.backoff(2) != 2*time.Second {
		t.Fatalf("backoff(2) = %v", c.backoff(2))
	}
	if c.backoff(20) != 10*time.Second {
		t.Fatalf("backoff must cap at 10s, got %v", c.backoff(20))
	}
}
