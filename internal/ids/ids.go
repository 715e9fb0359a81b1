// Package ids reads ordered lists of object identifiers for the merge
// tools.
package ids

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the sentinel input path meaning standard input.
const Stdin = "-"

// ErrEmptyInput is returned by Read when the input file has no content.
var ErrEmptyInput = errors.New("input file is empty")

// Read returns the identifiers listed in the named file, one per line, in
// file order. The path Stdin ("-") reads from stdin instead. Lines are
// trimmed of surrounding whitespace; blank lines are skipped. Duplicates
// are preserved. A missing or zero-length file is an error.
func Read(path string, stdin io.Reader) ([]string, error) {
	if path == Stdin {
		return scan(stdin)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("input file %q: %w", path, ErrEmptyInput)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}
	defer f.Close()
	return scan(f)
}

func scan(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}
	return out, nil
}
