package cli

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// itemWriter writes enumerated items to an output stream.
type itemWriter interface {
	// Write writes the ordinal-th item (1-based).
	Write(ordinal int64, item []string) error
	// Flush writes any buffered data.
	Flush() error
}

// outputOptions controls how items are printed.
type outputOptions struct {
	format    string
	separator string
	limit     int
	number    bool
}

// newItemWriter returns a writer for the given format.
// Text output joins elements with opts.separator, one item per line. JSON
// output is newline-delimited: one array per line.
func newItemWriter(w io.Writer, opts outputOptions) (itemWriter, error) {
	if err := validateFormat(opts.format); err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(w)
	if opts.format == FormatJSON {
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)
		return &jsonItemWriter{w: bw, enc: enc, number: opts.number}, nil
	}
	return &textItemWriter{w: bw, sep: opts.separator, number: opts.number}, nil
}

type textItemWriter struct {
	w      *bufio.Writer
	sep    string
	number bool
}

func (t *textItemWriter) Write(ordinal int64, item []string) error {
	if t.number {
		t.w.WriteString(strconv.FormatInt(ordinal, 10))
		t.w.WriteString("\t")
	}
	t.w.WriteString(strings.Join(item, t.sep))
	return t.w.WriteByte('\n')
}

func (t *textItemWriter) Flush() error { return t.w.Flush() }

type jsonItemWriter struct {
	w      *bufio.Writer
	enc    *json.Encoder
	number bool
}

// numberedItem is the JSON shape of an item printed with --number.
type numberedItem struct {
	N    int64    `json:"n"`
	Item []string `json:"item"`
}

func (j *jsonItemWriter) Write(ordinal int64, item []string) error {
	if j.number {
		return j.enc.Encode(numberedItem{N: ordinal, Item: item})
	}
	return j.enc.Encode(item)
}

func (j *jsonItemWriter) Flush() error { return j.w.Flush() }
