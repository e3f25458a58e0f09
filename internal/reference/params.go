package reference

import "os"

// Params selects and locates the word-list source.
type Params struct {
	Source        string
	Dir           string
	Bucket        string
	CommonKey     string
	DictionaryKey string
	DatabaseURL   string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadParamsFromEnv reads WORDLIST_* and REFERENCE_DATABASE_URL.
func LoadParamsFromEnv() Params {
	return Params{
		Source:        envOr("WORDLIST_SOURCE", string(KindEmbedded)),
		Dir:           os.Getenv("WORDLIST_DIR"),
		Bucket:        os.Getenv("WORDLIST_S3_BUCKET"),
		CommonKey:     envOr("WORDLIST_S3_COMMON_KEY", "wordlists/"+CommonFile),
		DictionaryKey: envOr("WORDLIST_S3_DICTIONARY_KEY", "wordlists/"+DictionaryFile),
		DatabaseURL:   os.Getenv("REFERENCE_DATABASE_URL"),
	}
}
