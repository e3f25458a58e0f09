// Package reference holds the static word lists and keyboard layout the analyzer
// reads from. Everything here is built once at start-up and then only read.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed data/common_passwords.txt
var embeddedCommon string

//go:embed data/dictionary.txt
var embeddedDictionary string

var ErrEmptyList = errors.New("reference: empty word list")

// Lists is raw word-list content as loaded from a Source.
type Lists struct {
	Common     []string
	Dictionary []string
}

// Data is the shared, read-only reference set passed to every analysis.
type Data struct {
	Common     *WordSet
	Dictionary *WordSet
	Keyboard   Adjacency
}

// Validate fails when either word list ended up empty.
func (d *Data) Validate() error {
	if d.Common.Len() == 0 {
		return fmt.Errorf("%w: common passwords", ErrEmptyList)
	}
	if d.Dictionary.Len() == 0 {
		return fmt.Errorf("%w: dictionary words", ErrEmptyList)
	}
	return nil
}

// Build turns raw lists into validated reference data.
func Build(l Lists) (*Data, error) {
	d := &Data{
		Common:     NewWordSet(l.Common),
		Dictionary: NewWordSet(l.Dictionary),
		Keyboard:   QWERTY(),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Embedded returns the lists compiled into the binary.
func Embedded() Lists {
	return Lists{
		Common:     strings.Split(embeddedCommon, "\n"),
		Dictionary: strings.Split(embeddedDictionary, "\n"),
	}
}

// Default builds reference data from the embedded lists. It panics if they are empty,
// which can only happen with a broken build.
func Default() *Data {
	d, err := Build(Embedded())
	if err != nil {
		panic(err)
	}
	return d
}
