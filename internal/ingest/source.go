package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// StdinPath is the CLI sentinel for reading rows from standard input.
const StdinPath = "-"

// RequiredColumns are the header columns every source must provide.
var RequiredColumns = []string{"timestamp", "event_type", "severity"}

// InputError reports a source that cannot be analyzed at all: unreadable,
// empty, or missing required header columns. Row-level problems are not
// input errors; they become rejects.
type InputError struct {
	Msg string
	Err error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Source iterates raw rows of a delimited incident feed. It treats files
// and streams uniformly; the caller owns opening and closing the
// underlying reader.
type Source struct {
	reader *csv.Reader
	header []string
	line   int
}

// NewSource wraps an open reader and validates its header line.
func NewSource(r io.Reader) (*Source, error) {
	if r == nil {
		return nil, &InputError{Msg: "no input source"}
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, &InputError{Msg: "input is empty"}
	}
	if err != nil {
		return nil, &InputError{Msg: "failed to read header", Err: err}
	}

	header := make([]string, len(head))
	for i, name := range head {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var missing []string
	for _, col := range RequiredColumns {
		found := false
		for _, name := range header {
			if name == col {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &InputError{Msg: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	return &Source{reader: cr, header: header, line: 1}, nil
}

// Header returns the normalized column names in input order.
func (s *Source) Header() []string {
	return append([]string(nil), s.header...)
}

// Next returns the next raw row as a column-to-value map and its 1-based
// line number. It returns io.EOF once the source is exhausted. A non-EOF
// error covers only the returned row; iteration may continue.
func (s *Source) Next() (map[string]string, int, error) {
	fields, err := s.reader.Read()
	s.line++
	if err == io.EOF {
		return nil, 0, io.EOF
	}
	if err != nil {
		return nil, s.line, err
	}

	row := make(map[string]string, len(s.header))
	for i, name := range s.header {
		if i < len(fields) {
			row[name] = fields[i]
		}
	}
	return row, s.line, nil
}
