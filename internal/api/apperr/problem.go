package apperr

import (
	"encoding/json"
	"net/http"
)

// Problem codes returned in FieldError.Code and as the last segment of Type.
const (
	CodeInvalidJSON     = "invalid_json"
	CodeRequired        = "required"
	CodeInvalidEncoding = "input_invalid_encoding"
	CodeTooLong         = "input_too_long"
	CodeBodyTooLarge    = "body_too_large"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal"
)

const typeBase = "https://passcheck.dev/problems/"

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`    // one of the Code* constants
	Message string `json:"message"` // human readable
}

type Problem struct {
	Type        string       `json:"type,omitempty"`   // RFC7807 type URI
	Title       string       `json:"title"`            // short summary
	Status      int          `json:"status"`           // HTTP status code
	Detail      string       `json:"detail,omitempty"` // human details
	Instance    string       `json:"instance,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
	Retryable   bool         `json:"retryable,omitempty"`
}

// New builds a problem whose type URI is derived from code.
func New(status int, code, detail string) Problem {
	return Problem{
		Type:   typeBase + code,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// Field builds a problem carrying a single field error with the same code.
func Field(status int, field, code, msg string) Problem {
	p := New(status, code, msg)
	p.FieldErrors = []FieldError{{Field: field, Code: code, Message: msg}}
	return p
}

func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}
	if p.RequestID == "" && r != nil {
		// RequestID middleware mirrors the id into the request header
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			p.RequestID = rid
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Convenience: fast write with just status+code+detail
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	Write(w, r, New(status, code, detail))
}
