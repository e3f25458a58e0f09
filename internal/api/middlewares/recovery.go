package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"code.cloudfoundry.org/lager"

	"github.com/5w1tchy/passcheck-api/internal/api/apperr"
)

// Recovery turns a panic into a 500 problem and logs the stack. The request body
// is never logged.
func Recovery(logger lager.Logger) func(http.Handler) http.Handler {
	logger = logger.Session("recovery")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					rid := GetRequestID(r)
					if rid == "" {
						rid = "unknown"
					}
					logger.Error("panic", fmt.Errorf("%v", rec), lager.Data{
						"request_id": rid,
						"method":     r.Method,
						"path":       r.URL.Path,
						"stack":      string(debug.Stack()),
					})

					// Don't expose internal errors to client
					apperr.WriteStatus(w, r, http.StatusInternalServerError, apperr.CodeInternal, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
