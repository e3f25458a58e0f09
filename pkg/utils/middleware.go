package utils

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps handler so that the first middleware listed runs first
// (outermost). Nil entries are skipped.
func ApplyMiddleware(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if m := middlewares[i]; m != nil {
			handler = m(handler)
		}
	}
	return handler
}
