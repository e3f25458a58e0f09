package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	"github.com/5w1tchy/passcheck-api/internal/reference"
	"github.com/5w1tchy/passcheck-api/internal/validate"
)

type Opts struct {
	WordlistDir   string `long:"wordlist-dir" description:"directory holding common_passwords.txt and dictionary.txt" value-name:"DIR"`
	MinWordLength int    `long:"min-word-length" default:"4" description:"shortest dictionary word to report" value-name:"N"`
	MaxLength     int    `long:"max-length" default:"256" description:"longest accepted password, in code points" value-name:"N"`
	Pretty        bool   `long:"pretty" description:"indent the JSON output"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run analyzes one password from args or the first line of stdin and prints the
// result as JSON. It returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts Opts
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] [PASSWORD]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, "pwcheck:", err)
		return 2
	}
	if len(rest) > 1 {
		fmt.Fprintln(stderr, "pwcheck: expected at most one PASSWORD argument")
		return 2
	}

	password, err := readPassword(rest, stdin)
	if err != nil {
		fmt.Fprintln(stderr, "pwcheck:", err)
		return 1
	}
	if err := validate.Password(password, opts.MaxLength); err != nil {
		fmt.Fprintln(stderr, "pwcheck:", err)
		return 1
	}

	ref, err := loadReference(opts.WordlistDir)
	if err != nil {
		fmt.Fprintln(stderr, "pwcheck:", err)
		return 1
	}

	res := analysis.New(ref, analysis.Options{MinWordLength: opts.MinWordLength}).Analyze(password)

	enc := json.NewEncoder(stdout)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		fmt.Fprintln(stderr, "pwcheck:", err)
		return 1
	}
	return 0
}

func readPassword(rest []string, stdin io.Reader) (string, error) {
	if len(rest) == 1 {
		return rest[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func loadReference(dir string) (*reference.Data, error) {
	if dir == "" {
		return reference.Default(), nil
	}
	return reference.Load(context.Background(), reference.DirSource{Dir: dir})
}
