package httpserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"campus_market/internal/adapters/observability"
)

const timeoutBody = `{"type":"about:blank","title":"Request Timed Out","status":503}`

// Timeout bounds a request. The deadline answer is a problem document like
// every other error the BFF writes.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(problemTyped{w}, r)
		})
	}
}

// problemTyped labels an untyped 503, which only the timeout writes.
type problemTyped struct{ http.ResponseWriter }

func (w problemTyped) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/problem+json")
	}
	w.ResponseWriter.WriteHeader(code)
}

// Instrument wraps the response once and feeds both the request metrics and
// the access log from it.
func Instrument(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			took := time.Since(start)
			observability.ObserveHTTP(route, r.Method, status, took)

			accessEvent(l, route, status).
				Str("route", route).
				Str("req_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", took).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// accessEvent picks the level: probes are noise, 5xx are ours to fix.
func accessEvent(l zerolog.Logger, route string, status int) *zerolog.Event {
	switch {
	case route == "/healthz":
		return l.Debug()
	case status >= http.StatusInternalServerError:
		return l.Error()
	case status >= http.StatusBadRequest:
		return l.Warn()
	default:
		return l.Info()
	}
}

// routePattern keeps metric labels bounded; unmatched paths share one label.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// first X-Forwarded-For hop, then X-Real-IP, then the peer address
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
