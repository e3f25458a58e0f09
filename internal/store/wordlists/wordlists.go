package wordliststore

import (
	"context"
	"fmt"

	"github.com/5w1tchy/passcheck-api/internal/reference"
	"github.com/5w1tchy/passcheck-api/internal/store/dbx"
)

// Values of reference_words.list.
const (
	ListCommon     = "common"
	ListDictionary = "dictionary"
)

const selectWords = `SELECT list, word FROM reference_words WHERE list IN ($1, $2) ORDER BY list, word`

// Source loads both lists from the reference_words table.
type Source struct{ q dbx.Queryer }

func New(q dbx.Queryer) *Source { return &Source{q: q} }

var _ reference.Source = (*Source)(nil)

func (s *Source) Load(ctx context.Context) (reference.Lists, error) {
	rows, err := dbx.Query(ctx, s.q, selectWords, ListCommon, ListDictionary)
	if err != nil {
		return reference.Lists{}, fmt.Errorf("wordlists: query: %w", err)
	}
	defer rows.Close()

	var out reference.Lists
	for rows.Next() {
		var list, word string
		if err := rows.Scan(&list, &word); err != nil {
			return reference.Lists{}, fmt.Errorf("wordlists: scan: %w", err)
		}
		switch list {
		case ListCommon:
			out.Common = append(out.Common, word)
		case ListDictionary:
			out.Dictionary = append(out.Dictionary, word)
		}
	}
	if err := rows.Err(); err != nil {
		return reference.Lists{}, fmt.Errorf("wordlists: rows: %w", err)
	}
	return out, nil
}
