package ids_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/sdr-ops/dormerge/internal/ids"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "druids.txt")
	be.NilErr(t, os.WriteFile(name, []byte(content), 0644))
	return name
}

func TestReadFile(t *testing.T) {
	name := writeFile(t, "bb000bb0001\nbb000bb0002\nbb000bb0001\n")
	got, err := ids.Read(name, nil)
	be.NilErr(t, err)
	// order and duplicates preserved
	be.AllEqual(t, []string{"bb000bb0001", "bb000bb0002", "bb000bb0001"}, got)
}

func TestReadTrimsWhitespace(t *testing.T) {
	name := writeFile(t, "  bb000bb0001\t\nbb000bb0002  \n")
	got, err := ids.Read(name, nil)
	be.NilErr(t, err)
	be.AllEqual(t, []string{"bb000bb0001", "bb000bb0002"}, got)
}

func TestReadSkipsBlankLines(t *testing.T) {
	name := writeFile(t, "bb000bb0001\n\n   \nbb000bb0002\n")
	got, err := ids.Read(name, nil)
	be.NilErr(t, err)
	be.AllEqual(t, []string{"bb000bb0001", "bb000bb0002"}, got)
}

func TestReadStdin(t *testing.T) {
	stdin := strings.NewReader("bb000bb0001\nbb000bb0002\n")
	got, err := ids.Read(ids.Stdin, stdin)
	be.NilErr(t, err)
	be.AllEqual(t, []string{"bb000bb0001", "bb000bb0002"}, got)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ids.Read(filepath.Join(t.TempDir(), "no-such-file"), nil)
	be.Nonzero(t, err)
	be.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadEmptyFile(t *testing.T) {
	name := writeFile(t, "")
	_, err := ids.Read(name, nil)
	be.Nonzero(t, err)
	be.True(t, errors.Is(err, ids.ErrEmptyInput))
}
