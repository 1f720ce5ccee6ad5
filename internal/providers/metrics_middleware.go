package providers

import (
	"net/http"
	"time"
)

// responseRecorder remembers the status and body size written by a handler.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Instrument records request count and latency per path and writes one
// access line per request. Failed requests are logged as warnings.
func Instrument(metrics MetricsProviderInterface, logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.IncRequestsTotal(r.URL.Path, rec.status)
		metrics.ObserveRequestDuration(r.URL.Path, elapsed)

		t := GetLogTypeByRequestType(r.Method)
		if rec.status >= http.StatusBadRequest {
			logger.Warnf(t, "%s %s %d in=%d out=%d %s", r.Method, r.URL.Path, rec.status, r.ContentLength, rec.bytes, elapsed)
			return
		}
		logger.Debugf(t, "%s %s %d in=%d out=%d %s", r.Method, r.URL.Path, rec.status, r.ContentLength, rec.bytes, elapsed)
	})
}
