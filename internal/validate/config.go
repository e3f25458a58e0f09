package validate

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/passcheck-api/internal/reference"
)

// Env validates env configuration and reports every problem at once.
// Fail-fast on bad config.
func Env() error {
	var result *multierror.Error

	for _, key := range []string{"MAX_PASSWORD_LENGTH", "MAX_BODY_SIZE", "ANALYSIS_MIN_WORD_LENGTH", "RATE_LIMIT_BURST", "RATE_LIMIT_WINDOW_MAX"} {
		if err := envMinInt(key, 1); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", key, err))
		}
	}
	if err := envPositiveFloat("RATE_LIMIT_RPS"); err != nil {
		result = multierror.Append(result, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
	}
	if _, err := envDuration("RATE_LIMIT_WINDOW", "1h"); err != nil {
		result = multierror.Append(result, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err))
	}

	kind, err := reference.ParseKind(os.Getenv("WORDLIST_SOURCE"))
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("WORDLIST_SOURCE: %w", err))
	}
	required := map[reference.Kind]string{
		reference.KindDir:      "WORDLIST_DIR",
		reference.KindS3:       "WORDLIST_S3_BUCKET",
		reference.KindPostgres: "REFERENCE_DATABASE_URL",
	}
	if key, ok := required[kind]; ok && os.Getenv(key) == "" {
		result = multierror.Append(result, fmt.Errorf("%s is required when WORDLIST_SOURCE=%s", key, kind))
	}

	return result.ErrorOrNil()
}

// MaxPasswordLength reads MAX_PASSWORD_LENGTH, falling back to the default.
func MaxPasswordLength() int {
	if n, err := strconv.Atoi(os.Getenv("MAX_PASSWORD_LENGTH")); err == nil && n > 0 {
		return n
	}
	return DefaultMaxPasswordLength
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(appEnv string) []string {
	var warns []string

	if n := MaxPasswordLength(); n > 1024 {
		warns = append(warns, fmt.Sprintf("MAX_PASSWORD_LENGTH=%d is > 1024; long inputs make dictionary scans slower", n))
	}

	// Production-specific nudges
	if strings.EqualFold(appEnv, "production") {
		if os.Getenv("REDIS_URL") == "" && os.Getenv("REDIS_ADDR") == "" {
			warns = append(warns, "no REDIS_URL/REDIS_ADDR; /analyze runs without rate limiting")
		}
		if u := os.Getenv("REDIS_URL"); strings.HasPrefix(u, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if os.Getenv("REDIS_ADDR") != "" && os.Getenv("REDIS_PASSWORD") == "" {
			warns = append(warns, "REDIS_ADDR provided without REDIS_PASSWORD; require auth in production")
		}
		if os.Getenv("CORS_ALLOWED_ORIGINS") == "" {
			warns = append(warns, "CORS_ALLOWED_ORIGINS not set; only localhost origins are allowed")
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(ctx context.Context, rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

// --- helpers ---

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func envMinInt(key string, min int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil // unset -> code defaults apply elsewhere
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return fmt.Errorf("must be >= %d", min)
	}
	return nil
}

func envPositiveFloat(key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("invalid rate %q", v)
	}
	return nil
}
