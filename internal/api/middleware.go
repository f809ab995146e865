package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/drewstone/hyperlane-monorepo/internal/metrics"
)

// instrument wraps a handler with request metrics. The route pattern (not
// the raw path) is used as the label to keep cardinality bounded.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		h(sw, r)

		metrics.APIRequestsTotal.WithLabelValues(route, strconv.Itoa(sw.statusCode)).Inc()
		metrics.APIRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.written = true
	}
	return sw.ResponseWriter.Write(b)
}
