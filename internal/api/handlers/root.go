package handlers

import (
	"net/http"

	"github.com/5w1tchy/passcheck-api/internal/api/httpx"
)

// RootHandler serves a short banner describing the API.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, map[string]any{
		"service": "passcheck-api",
		"endpoints": []string{
			"POST /analyze",
			"GET /healthz",
		},
	})
}
