package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeEngineInit, http.StatusInternalServerError},
		{ErrorCodeMalformedInput, http.StatusBadRequest},
		{ErrorCodeDegenerateGeometry, http.StatusUnprocessableEntity},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeTransport, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := HTTPStatusCode(tc.code); got != tc.want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestWrapPreservesCauseAndCode(t *testing.T) {
	cause := stderrs.New("disk on fire")
	err := Wrapf(cause, ErrorCodeEngineInit, "calculation library init failed")

	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped cause must survive errors.Is")
	}
	if CodeOf(err) != ErrorCodeEngineInit {
		t.Fatalf("CodeOf = %d", CodeOf(err))
	}
	if got := err.Error(); got != "calculation library init failed: disk on fire" {
		t.Fatalf("Error() = %q", got)
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
}

func TestCodeOfForeignError(t *testing.T) {
	if CodeOf(fmt.Errorf("plain")) != ErrorCodeUnknown {
		t.Fatal("foreign errors default to Unknown")
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatal("nil defaults to Unknown")
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(Upstreamf("horizons error status 400"))
	if w.Code != ErrorCodeUpstream || w.Message == "" {
		t.Fatalf("unexpected wire: %+v", w)
	}

	w = WireFrom(fmt.Errorf("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("unexpected wire for foreign error: %+v", w)
	}

	if w = WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil must map to zero wire: %+v", w)
	}
}

func TestWithFieldCopyOnWrite(t *testing.T) {
	base := Newf(ErrorCodeValidation, "email is required")
	withField := WithField(base, "email")

	e, ok := As(withField)
	if !ok || e.Field() != "email" {
		t.Fatalf("field not attached: %+v", e)
	}
	if orig, _ := As(base); orig.Field() != "" {
		t.Fatal("original must stay untouched")
	}

	foreign := fmt.Errorf("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatal("foreign errors pass through unchanged")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(Transportf("connection refused")) {
		t.Fatal("transport errors are retryable")
	}
	if Retryable(Upstreamf("status 400")) {
		t.Fatal("upstream rejections are not retryable")
	}
	if Retryable(nil) {
		t.Fatal("nil is not retryable")
	}
}

func TestHTTPBundle(t *testing.T) {
	status, wire := HTTP(DegenerateGeometryf("polar latitude"))
	if status != http.StatusUnprocessableEntity || wire.Code != ErrorCodeDegenerateGeometry {
		t.Fatalf("HTTP() = %d %+v", status, wire)
	}

	status, wire = HTTP(nil)
	if status != http.StatusOK || wire != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", status, wire)
	}
}
