package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"code.cloudfoundry.org/lager/lagertest"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	"github.com/5w1tchy/passcheck-api/internal/api/apperr"
	"github.com/5w1tchy/passcheck-api/internal/api/handlers"
	"github.com/5w1tchy/passcheck-api/internal/reference"
)

func newHandler(t *testing.T, maxLen int) (http.Handler, *lagertest.TestLogger) {
	t.Helper()
	logger := lagertest.NewTestLogger("test")
	an := analysis.New(reference.Default(), analysis.DefaultOptions())
	return handlers.Analyze(an, maxLen, logger), logger
}

func post(h http.Handler, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", target, strings.NewReader(body)))
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apperr.Problem {
	t.Helper()
	var p apperr.Problem
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	return p
}

func TestAnalyze_OK(t *testing.T) {
	h, _ := newHandler(t, 256)
	rec := post(h, "/analyze", `{"password":"password"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var res analysis.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.Common || !res.ReuseRisk || res.Rating != analysis.Fair {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestAnalyze_EmptyPassword(t *testing.T) {
	h, _ := newHandler(t, 256)
	rec := post(h, "/analyze", `{"password":""}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"patterns":[]`) {
		t.Errorf("Expected empty patterns array, got %s", rec.Body.String())
	}
}

func TestAnalyze_Pretty(t *testing.T) {
	h, _ := newHandler(t, 256)
	rec := post(h, "/analyze?pretty=1", `{"password":"a"}`)
	if !strings.Contains(rec.Body.String(), "\n  \"length\": 1") {
		t.Errorf("Expected indented JSON, got %s", rec.Body.String())
	}
}

func TestAnalyze_BoundaryErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"invalid json", `{"password":`, http.StatusBadRequest, apperr.CodeInvalidJSON},
		{"unknown field", `{"password":"x","user":"bob"}`, http.StatusBadRequest, apperr.CodeInvalidJSON},
		{"missing password", `{}`, http.StatusBadRequest, apperr.CodeRequired},
		{"invalid utf8", "{\"password\":\"ab\xffcd\"}", http.StatusBadRequest, apperr.CodeInvalidEncoding},
		{"too long", `{"password":"` + strings.Repeat("é", 9) + `"}`, http.StatusUnprocessableEntity, apperr.CodeTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHandler(t, 8)
			rec := post(h, "/analyze", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			p := decodeProblem(t, rec)
			if !strings.HasSuffix(p.Type, tt.code) {
				t.Errorf("Expected type ending in %s, got %s", tt.code, p.Type)
			}
		})
	}
}

func TestAnalyze_AtLimit(t *testing.T) {
	h, _ := newHandler(t, 8)
	if rec := post(h, "/analyze", `{"password":"`+strings.Repeat("é", 8)+`"}`); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 at the limit, got %d", rec.Code)
	}
}

func TestAnalyze_RejectionNeverLogsPassword(t *testing.T) {
	h, logger := newHandler(t, 4)
	post(h, "/analyze", `{"password":"hunter22"}`)

	if msgs := logger.LogMessages(); len(msgs) != 1 || !strings.HasSuffix(msgs[0], "analyze.rejected") {
		t.Errorf("Expected one rejection log, got %v", msgs)
	}
	if strings.Contains(string(logger.Buffer().Contents()), "hunter22") {
		t.Error("Password leaked into logs")
	}
}

func TestRootHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RootHandler(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "passcheck-api") {
		t.Errorf("Unexpected banner: %d %s", rec.Code, rec.Body.String())
	}
}
