package handlers

import (
	"net/http"

	"github.com/5w1tchy/passcheck-api/internal/api/httpx"
	"github.com/5w1tchy/passcheck-api/internal/reference"
)

type healthResponse struct {
	Status          string `json:"status"`
	CommonPasswords int    `json:"common_passwords"`
	DictionaryWords int    `json:"dictionary_words"`
}

// Health reports liveness plus the size of the loaded word lists.
func Health(ref *reference.Data) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.OK(w, healthResponse{
			Status:          "ok",
			CommonPasswords: ref.Common.Len(),
			DictionaryWords: ref.Dictionary.Len(),
		})
	})
}
