package validate

import (
	"errors"
	"unicode/utf8"
)

// DefaultMaxPasswordLength bounds analysis work per request, in code points.
const DefaultMaxPasswordLength = 256

var (
	ErrInvalidEncoding = errors.New("input_invalid_encoding")
	ErrInputTooLong    = errors.New("input_too_long")
)

// Password checks the boundary rules the engine relies on: valid UTF-8 and at most
// maxLen code points. maxLen <= 0 disables the length check.
func Password(pwd string, maxLen int) error {
	if !utf8.ValidString(pwd) {
		return ErrInvalidEncoding
	}
	if maxLen > 0 && utf8.RuneCountInString(pwd) > maxLen {
		return ErrInputTooLong
	}
	return nil
}
