package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"code.cloudfoundry.org/lager"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	"github.com/5w1tchy/passcheck-api/internal/api/apperr"
	"github.com/5w1tchy/passcheck-api/internal/api/httpx"
	"github.com/5w1tchy/passcheck-api/internal/validate"
)

type analyzeRequest struct {
	Password *string `json:"password"`
}

// Analyze scores the password in a {"password": "..."} body. The password is
// never logged; only the outcome of boundary checks is.
func Analyze(an *analysis.Analyzer, maxLen int, logger lager.Logger) http.Handler {
	logger = logger.Session("analyze")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, apperr.CodeBodyTooLarge, "request body too large")
				return
			}
			apperr.WriteStatus(w, r, http.StatusBadRequest, apperr.CodeInvalidJSON, "could not read body")
			return
		}

		// encoding/json would silently replace invalid bytes with U+FFFD
		if !utf8.Valid(raw) {
			reject(w, r, logger, validate.ErrInvalidEncoding)
			return
		}

		var body analyzeRequest
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			apperr.WriteStatus(w, r, http.StatusBadRequest, apperr.CodeInvalidJSON, "invalid JSON")
			return
		}
		if body.Password == nil {
			apperr.Write(w, r, apperr.Field(http.StatusBadRequest, "password", apperr.CodeRequired, "password is required"))
			return
		}

		if err := validate.Password(*body.Password, maxLen); err != nil {
			reject(w, r, logger, err)
			return
		}

		res := an.Analyze(*body.Password)
		if r.URL.Query().Get("pretty") == "1" {
			httpx.WriteJSONIndent(w, http.StatusOK, res)
			return
		}
		httpx.OK(w, res)
	})
}

func reject(w http.ResponseWriter, r *http.Request, logger lager.Logger, err error) {
	status, code, msg := http.StatusBadRequest, apperr.CodeInvalidEncoding, "password must be valid UTF-8"
	if errors.Is(err, validate.ErrInputTooLong) {
		status, code, msg = http.StatusUnprocessableEntity, apperr.CodeTooLong, "password is too long"
	}
	logger.Info("rejected", lager.Data{"reason": code, "request_id": r.Header.Get("X-Request-ID")})
	apperr.Write(w, r, apperr.Field(status, "password", code, msg))
}
