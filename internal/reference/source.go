package reference

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	CommonFile     = "common_passwords.txt"
	DictionaryFile = "dictionary.txt"
)

// Source loads raw lists. Sources run once, before the first analysis.
type Source interface {
	Load(ctx context.Context) (Lists, error)
}

// EmbeddedSource serves the lists compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(context.Context) (Lists, error) { return Embedded(), nil }

// DirSource reads CommonFile and DictionaryFile from Dir.
type DirSource struct {
	Dir string
}

func (s DirSource) Load(context.Context) (Lists, error) {
	common, err := readWordFile(filepath.Join(s.Dir, CommonFile))
	if err != nil {
		return Lists{}, err
	}
	dict, err := readWordFile(filepath.Join(s.Dir, DictionaryFile))
	if err != nil {
		return Lists{}, err
	}
	return Lists{Common: common, Dictionary: dict}, nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference: open %s: %w", path, err)
	}
	defer f.Close()
	words, err := ParseWords(f)
	if err != nil {
		return nil, fmt.Errorf("reference: read %s: %w", path, err)
	}
	return words, nil
}

// ObjectReader fetches one object by key from a bucket-like store.
type ObjectReader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ObjectSource reads both lists from an object store.
type ObjectSource struct {
	Store         ObjectReader
	CommonKey     string
	DictionaryKey string
}

func (s ObjectSource) Load(ctx context.Context) (Lists, error) {
	common, err := s.read(ctx, s.CommonKey)
	if err != nil {
		return Lists{}, err
	}
	dict, err := s.read(ctx, s.DictionaryKey)
	if err != nil {
		return Lists{}, err
	}
	return Lists{Common: common, Dictionary: dict}, nil
}

func (s ObjectSource) read(ctx context.Context, key string) ([]string, error) {
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reference: fetch %s: %w", key, err)
	}
	defer rc.Close()
	words, err := ParseWords(rc)
	if err != nil {
		return nil, fmt.Errorf("reference: read %s: %w", key, err)
	}
	return words, nil
}

// Load runs src and builds validated data from what it returns.
func Load(ctx context.Context, src Source) (*Data, error) {
	lists, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Build(lists)
}

// Kind names where word lists come from.
type Kind string

const (
	KindEmbedded Kind = "embedded"
	KindDir      Kind = "dir"
	KindS3       Kind = "s3"
	KindPostgres Kind = "postgres"
)

// ParseKind accepts the WORDLIST_SOURCE values; empty means embedded.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindEmbedded, nil
	case KindEmbedded, KindDir, KindS3, KindPostgres:
		return k, nil
	default:
		return "", fmt.Errorf("unknown word list source %q", s)
	}
}
