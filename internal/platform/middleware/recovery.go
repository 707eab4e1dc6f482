package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	dErrors "retrato/pkg/domain-errors"
	"retrato/pkg/platform/httputil"
	"retrato/pkg/requestcontext"
)

// Recover turns a panic into a generic 500 and logs the stack server-side.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("panic recovered",
						zap.String("request_id", requestcontext.RequestID(r.Context())),
						zap.String("path", r.URL.Path),
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
