package appdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// RawStatement is an undecoded statement read back from a data file.
type RawStatement struct {
	Declaration string
	Value       json.RawMessage
}

var assign = []byte(" = ")

// ParseStatements splits a data file into its statements. Each statement is
// `decl = <json>` optionally followed by `;`.
func ParseStatements(content []byte) ([]RawStatement, error) {
	var out []RawStatement
	rest := content
	for {
		rest = bytes.TrimLeft(rest, " \t\r\n")
		if len(rest) == 0 {
			return out, nil
		}

		idx := bytes.Index(rest, assign)
		if idx < 0 {
			msg := fmt.Sprintf("statement %d has no assignment", len(out)+1)
			return nil, &DataError{Kind: ParseError, Message: &msg, Err: ErrMalformed}
		}
		decl := strings.TrimSpace(string(rest[:idx]))
		body := rest[idx+len(assign):]

		dec := json.NewDecoder(bytes.NewReader(body))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			msg := fmt.Sprintf("statement %q", decl)
			return nil, &DataError{Kind: ParseError, Message: &msg, Err: ErrMalformed, Cause: err}
		}
		out = append(out, RawStatement{Declaration: decl, Value: raw})

		rest = bytes.TrimLeft(body[dec.InputOffset():], " \t\r\n")
		rest = bytes.TrimPrefix(rest, []byte(";"))
	}
}

// Decode reads the translation held by the first statement of a data file.
// Content without an assignment is decoded as bare JSON.
func Decode(content []byte) (*Bundle, error) {
	var raw []byte
	if bytes.Contains(content, assign) {
		stmts, err := ParseStatements(content)
		if err != nil {
			return nil, err
		}
		raw = stmts[0].Value
	} else {
		raw = bytes.TrimRight(bytes.TrimSpace(content), ";")
	}

	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, &DataError{Kind: ParseError, Err: ErrMalformed, Cause: err}
	}
	return &bundle, nil
}

// ReadFile decodes the translation held in a data file.
func ReadFile(path string) (*Bundle, error) {
	content, err := os.ReadFile(path) // nolint: gosec
	if err != nil {
		msg := fmt.Sprintf("failed to read data file: %s", path)
		return nil, &DataError{Kind: FileError, Message: &msg, Err: ErrNotFound, Cause: err}
	}
	return Decode(content)
}

// ReadJSONFile decodes a plain JSON translation file. Unlike ReadFile it
// never looks for statements, so verse text may contain " = ".
func ReadJSONFile(path string) (*Bundle, error) {
	content, err := os.ReadFile(path) // nolint: gosec
	if err != nil {
		msg := fmt.Sprintf("failed to read source file: %s", path)
		return nil, &DataError{Kind: FileError, Message: &msg, Err: ErrNotFound, Cause: err}
	}

	var bundle Bundle
	if err := json.Unmarshal(content, &bundle); err != nil {
		msg := fmt.Sprintf("source file %s", path)
		return nil, &DataError{Kind: ParseError, Message: &msg, Err: ErrMalformed, Cause: err}
	}
	return &bundle, nil
}
