package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	mw "github.com/5w1tchy/passcheck-api/internal/api/middlewares"
	"github.com/5w1tchy/passcheck-api/internal/api/router"
	"github.com/5w1tchy/passcheck-api/internal/reference"
)

func newDeps(t *testing.T) (router.Deps, *lagertest.TestLogger) {
	t.Helper()
	logger := lagertest.NewTestLogger("test")
	ref := reference.Default()
	return router.Deps{
		Analyzer:          analysis.New(ref, analysis.DefaultOptions()),
		Reference:         ref,
		MaxPasswordLength: 256,
		Logger:            logger,
	}, logger
}

func TestHandler_Analyze(t *testing.T) {
	deps, logger := newDeps(t)
	h := router.Handler(deps, router.Options{MaxBodySize: mw.DefaultMaxBodySize})

	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(`{"password":"Tr0ub4dor&3"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res analysis.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Strength != 93 || res.Length != 11 {
		t.Errorf("Unexpected result: %+v", res)
	}
	for _, hdr := range []string{"X-Request-ID", "X-Response-Time"} {
		if rec.Header().Get(hdr) == "" {
			t.Errorf("Expected %s header", hdr)
		}
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Expected no-store, got %q", rec.Header().Get("Cache-Control"))
	}
	if strings.Contains(string(logger.Buffer().Contents()), "Tr0ub4dor") {
		t.Error("Password leaked into logs")
	}
}

func TestHandler_Routes(t *testing.T) {
	deps, _ := newDeps(t)
	h := router.Handler(deps, router.Options{})

	tests := []struct {
		method, path string
		want         int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/healthz", http.StatusOK},
		{"GET", "/analyze", http.StatusMethodNotAllowed},
		{"GET", "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rec.Code)
		}
	}
}

func TestHandler_Health(t *testing.T) {
	deps, _ := newDeps(t)
	rec := httptest.NewRecorder()
	router.Router(deps).ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	var body struct {
		Status          string `json:"status"`
		CommonPasswords int    `json:"common_passwords"`
		DictionaryWords int    `json:"dictionary_words"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.CommonPasswords != deps.Reference.Common.Len() || body.DictionaryWords == 0 {
		t.Errorf("Unexpected health body: %+v", body)
	}
}

func TestHandler_BodyTooLarge(t *testing.T) {
	deps, _ := newDeps(t)
	h := router.Handler(deps, router.Options{MaxBodySize: 32})

	body := `{"password":"` + strings.Repeat("a", 64) + `"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/analyze", strings.NewReader(body)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", rec.Code)
	}
}

func TestHandler_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	deps, _ := newDeps(t)
	h := router.Handler(deps, router.Options{
		Redis:     rdb,
		RateLimit: mw.RateLimitConfig{WindowLimit: 1, Window: time.Minute},
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("POST", "/analyze", strings.NewReader(`{"password":"x"}`)))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 429], got %v", codes)
	}
}
