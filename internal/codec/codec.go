// Package codec converts catalog items, suppliers and sale records to and
// from the flat text stores. Decoders never stop at a bad record: it is
// reported as a LineError and decoding continues with the next one.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrMalformed marks a record that does not match its store layout.
var ErrMalformed = errors.New("codec: malformed record")

// LineError describes a skipped record. Line is 1-based.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// MaxLineBytes bounds a single store line. Longer lines are reported as
// LineErrors and skipped.
const MaxLineBytes = 1 << 20

// ErrLineTooLong marks a line longer than MaxLineBytes.
var ErrLineTooLong = fmt.Errorf("%w: line longer than %d bytes", ErrMalformed, MaxLineBytes)

const excerptBytes = 80

type line struct {
	no   int
	text string
	err  error
}

// readLines splits r into lines. An overlong line keeps only an excerpt of
// its text and carries ErrLineTooLong. The error is set only when r fails,
// and the lines read before the failure are still returned.
func readLines(r io.Reader) ([]line, error) {
	var out []line
	br := bufio.NewReader(r)
	for no := 1; ; no++ {
		text, err := br.ReadString('\n')
		if text != "" {
			out = append(out, newLine(no, text))
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("codec: read: %w", err)
		}
	}
}

func newLine(no int, text string) line {
	text = strings.TrimRight(strings.TrimSuffix(text, "\n"), "\r")
	if len(text) > MaxLineBytes {
		return line{no: no, text: text[:excerptBytes] + "...", err: ErrLineTooLong}
	}
	return line{no: no, text: text}
}

func report(logger *slog.Logger, store string, errs []LineError) {
	if logger == nil {
		return
	}
	for _, e := range errs {
		logger.Warn("skipped malformed record",
			slog.String("store", store),
			slog.Int("line", e.Line),
			slog.String("text", e.Text),
			slog.Any("error", e.Err),
		)
	}
}
