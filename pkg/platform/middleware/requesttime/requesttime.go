// Package requesttime pins one "now" per HTTP request so cache freshness checks
// and export timestamps within a request agree.
package requesttime

import (
	"net/http"
	"time"

	"retrato/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
