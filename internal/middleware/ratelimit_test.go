package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func newLimitedHandler(burst int) http.Handler {
	mw := RateLimitMiddleware(RateLimitConfig{
		// A tiny sustained rate keeps the bucket from refilling mid-test;
		// the burst is the effective per-test allowance.
		RequestsPerSecond: 0.001,
		Burst:             burst,
	}, zap.NewNop())

	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests past the burst are blocked with 429", prop.ForAll(
		func(burst int, excess int) bool {
			handler := newLimitedHandler(burst)

			successCount := 0
			blockedCount := 0
			for i := 0; i < burst+excess; i++ {
				w := doRequest(handler, "192.168.1.100:54321")
				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			return successCount == burst && blockedCount == excess
		},
		gen.IntRange(1, 50),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitBlockedResponseHeaders(t *testing.T) {
	handler := newLimitedHandler(1)

	if w := doRequest(handler, "10.0.0.1:1111"); w.Code != http.StatusOK {
		t.Fatalf("first request: got status %d, want 200", w.Code)
	}

	w := doRequest(handler, "10.0.0.1:2222")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got status %d, want 429", w.Code)
	}
	for _, header := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"} {
		if w.Header().Get(header) == "" {
			t.Errorf("blocked response missing %s header", header)
		}
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
}

func TestRateLimitClientsDoNotShareBuckets(t *testing.T) {
	handler := newLimitedHandler(2)

	// Exhaust the first client's bucket. The port is ignored: the bucket key
	// is the host alone.
	for i := 0; i < 2; i++ {
		if w := doRequest(handler, "10.0.0.1:1111"); w.Code != http.StatusOK {
			t.Fatalf("client A request %d: got status %d, want 200", i, w.Code)
		}
	}
	if w := doRequest(handler, "10.0.0.1:2222"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("client A over budget: got status %d, want 429", w.Code)
	}

	// A different address still has a full bucket.
	if w := doRequest(handler, "10.0.0.2:1111"); w.Code != http.StatusOK {
		t.Fatalf("client B: got status %d, want 200", w.Code)
	}
}
