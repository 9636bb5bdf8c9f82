// Package codec reads and writes the navigation configuration as text.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rexliu/navb/pkg/nav"
)

// ErrMalformed indicates text that is not a valid navigation configuration.
var ErrMalformed = errors.New("malformed configuration")

// Parse decodes JSON text into a configuration. Unknown fields are rejected.
// Parsing is all-or-nothing: on any error the zero Config is returned.
func Parse(data []byte) (nav.Config, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nav.Config{}, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nav.Config{}, fmt.Errorf("%w: top-level value must be an object", ErrMalformed)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg nav.Config
	if err := dec.Decode(&cfg); err != nil {
		return nav.Config{}, fmt.Errorf("%w: %v", ErrMalformed, describe(data, err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nav.Config{}, fmt.Errorf("%w: unexpected data after top-level object", ErrMalformed)
	}
	return cfg, nil
}

// Format renders cfg as two-space indented JSON with a trailing newline.
func Format(cfg nav.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reformat pretty-prints arbitrary JSON text without interpreting it.
func Reformat(data []byte) ([]byte, error) {
	if err := Check(data); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Check reports whether data is syntactically valid JSON.
func Check(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return fmt.Errorf("%w: %v", ErrMalformed, describe(data, err))
	}
	return nil
}

// describe adds a line/column to syntax errors.
func describe(data []byte, err error) error {
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		line, col := position(data, syntax.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := position(data, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}
	return err
}

func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
