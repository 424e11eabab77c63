package cli

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	perrors "github.com/matzehuels/permute/pkg/errors"
)

// maxLineSize bounds a single element read from a file.
const maxLineSize = 1 << 20

// readElements collects the elements to enumerate.
//
// With a file, elements are read one per line; blank lines and lines
// starting with '#' are skipped, and "-" reads from stdin. Otherwise every
// argument is an element, and arguments containing commas are split on
// them, so "a,b,c" and "a b c" are equivalent.
func readElements(args []string, file string, stdin io.Reader) ([]string, error) {
	if file != "" {
		if len(args) > 0 {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "pass elements either as arguments or with --file, not both")
		}
		return readElementsFile(file, stdin)
	}

	if len(args) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "no elements given; pass them as arguments or use --file")
	}

	var elems []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if err := perrors.ValidateElement(part); err != nil {
				return nil, err
			}
			elems = append(elems, part)
		}
	}
	if elems == nil {
		elems = []string{}
	}
	return elems, nil
}

func readElementsFile(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return scanElements(stdin)
	}
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "input file %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	return scanElements(f)
}

func scanElements(r io.Reader) ([]string, error) {
	elems := []string{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		elems = append(elems, line)
	}
	if err := sc.Err(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read elements")
	}
	return elems, nil
}
