package reference

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bits-and-blooms/bloom/v3"
)

// falsePositiveRate is the Bloom pre-filter target; a false positive only costs a map lookup.
const falsePositiveRate = 0.01

// WordSet is a lower-cased, deduplicated set of words. It is never mutated after
// NewWordSet returns, so one instance is shared by every analysis.
type WordSet struct {
	words  map[string]struct{}
	filter *bloom.BloomFilter
	maxLen int
}

// Lower lower-cases s one rune at a time so rune positions survive the mapping.
func Lower(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// NewWordSet trims and lower-cases words, dropping blanks and "#" comments.
func NewWordSet(words []string) *WordSet {
	set := make(map[string]struct{}, len(words))
	maxLen := 0
	for _, w := range words {
		w = Lower(strings.TrimSpace(w))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if _, ok := set[w]; ok {
			continue
		}
		set[w] = struct{}{}
		if n := utf8.RuneCountInString(w); n > maxLen {
			maxLen = n
		}
	}

	n := uint(len(set))
	if n == 0 {
		n = 1
	}
	filter := bloom.NewWithEstimates(n, falsePositiveRate)
	for w := range set {
		filter.AddString(w)
	}
	return &WordSet{words: set, filter: filter, maxLen: maxLen}
}

// Has reports whether the already lower-cased w is in the set.
func (s *WordSet) Has(w string) bool {
	if s == nil || len(s.words) == 0 {
		return false
	}
	if !s.filter.TestString(w) {
		return false
	}
	_, ok := s.words[w]
	return ok
}

func (s *WordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// MaxLen is the rune length of the longest word; it bounds substring scans.
func (s *WordSet) MaxLen() int {
	if s == nil {
		return 0
	}
	return s.maxLen
}

// ParseWords reads one word per line.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
