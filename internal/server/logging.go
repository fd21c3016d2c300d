package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(logger *zap.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.String("host", r.Host),
			zap.String("ua", r.UserAgent()),
			zap.String("from", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
