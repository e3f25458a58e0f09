package middlewares

import (
	"net/http"
	"os"
	"strconv"
)

// DefaultMaxBodySize fits a JSON envelope around the longest accepted password.
const DefaultMaxBodySize int64 = 4 << 10

// MaxBodySizeFromEnv reads MAX_BODY_SIZE in bytes.
func MaxBodySizeFromEnv() int64 {
	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxBodySize
}

// BodySizeLimit caps request bodies; handlers see *http.MaxBytesError on overflow.
func BodySizeLimit(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only apply to requests with bodies
			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
