package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/contextbridge/bridge/internal/store"
)

// recordUsage writes one api_usage row per request, off the request path so
// a slow insert never delays the response.
func (s *Server) recordUsage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		usage := store.Usage{
			Endpoint:   r.Method + " " + r.URL.Path,
			IPAddress:  clientIP(r),
			UserAgent:  r.UserAgent(),
			Status:     ww.Status(),
			Processing: time.Since(start),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.db.RecordUsage(ctx, usage); err != nil {
				slog.Warn("failed to record api usage", "endpoint", usage.Endpoint, "error", err)
			}
		}()
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
