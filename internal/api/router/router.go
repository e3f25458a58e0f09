package router

import (
	"net/http"

	"code.cloudfoundry.org/lager"
	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	"github.com/5w1tchy/passcheck-api/internal/api/handlers"
	mw "github.com/5w1tchy/passcheck-api/internal/api/middlewares"
	"github.com/5w1tchy/passcheck-api/internal/reference"
	"github.com/5w1tchy/passcheck-api/pkg/utils"
)

// Deps is everything the routes read. All of it is shared and read-only.
type Deps struct {
	Analyzer          *analysis.Analyzer
	Reference         *reference.Data
	MaxPasswordLength int
	Logger            lager.Logger
}

// Options configures the middleware chain around the routes.
type Options struct {
	Origins     []string
	MaxBodySize int64
	Redis       *redis.Client // nil disables rate limiting
	RateLimit   mw.RateLimitConfig
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.RootHandler)
	mux.Handle("GET /healthz", handlers.Health(d.Reference))
	mux.Handle("POST /analyze", handlers.Analyze(d.Analyzer, d.MaxPasswordLength, d.Logger))

	return mux
}

// Handler wraps Router in the full chain, outermost first: Recovery, RequestID,
// CORS, ResponseTime, SecurityHeaders, BodySizeLimit, rate limits, Compression.
func Handler(d Deps, o Options) http.Handler {
	chain := []utils.Middleware{
		mw.Recovery(d.Logger),
		mw.RequestID,
		mw.Cors(o.Origins, d.Logger),
		mw.ResponseTime(d.Logger),
		mw.SecurityHeaders,
		mw.BodySizeLimit(o.MaxBodySize),
	}
	if o.Redis != nil {
		for _, m := range mw.RateLimit(o.Redis, o.RateLimit, d.Logger) {
			chain = append(chain, m)
		}
	}
	chain = append(chain, mw.Compression)

	return utils.ApplyMiddleware(Router(d), chain...)
}
