// Package wordsource picks and runs the word-list Source named by the config.
package wordsource

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/lager"

	"github.com/5w1tchy/passcheck-api/internal/reference"
	"github.com/5w1tchy/passcheck-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/passcheck-api/internal/storage/s3"
	wordliststore "github.com/5w1tchy/passcheck-api/internal/store/wordlists"
)

// loadTimeout bounds remote fetches at start-up.
const loadTimeout = 30 * time.Second

// Load builds reference data from the configured source. Remote handles are
// closed before it returns; the result is fully in memory.
func Load(ctx context.Context, p reference.Params, logger lager.Logger) (*reference.Data, error) {
	logger = logger.Session("reference", lager.Data{"source": p.Source})

	kind, err := reference.ParseKind(p.Source)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	var src reference.Source
	switch kind {
	case reference.KindEmbedded:
		src = reference.EmbeddedSource{}
	case reference.KindDir:
		src = reference.DirSource{Dir: p.Dir}
	case reference.KindS3:
		client, err := s3.NewClient(ctx, p.Bucket)
		if err != nil {
			return nil, err
		}
		src = reference.ObjectSource{Store: client, CommonKey: p.CommonKey, DictionaryKey: p.DictionaryKey}
	case reference.KindPostgres:
		db, err := sqlconnect.ConnectDB(ctx, p.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("reference: connect: %w", err)
		}
		defer db.Close()
		src = wordliststore.New(db)
	}

	start := time.Now()
	data, err := reference.Load(ctx, src)
	if err != nil {
		logger.Error("load-failed", err)
		return nil, err
	}
	logger.Info("loaded", lager.Data{
		"common_passwords": data.Common.Len(),
		"dictionary_words": data.Dictionary.Len(),
		"duration_ms":      time.Since(start).Milliseconds(),
	})
	return data, nil
}
