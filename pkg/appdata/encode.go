package appdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// Statement is one `<Declaration> = <Value>;` assignment in a data file,
// e.g. "const KTB_DATA" or "window.BIBLE_DATA".
type Statement struct {
	Declaration string
	Value       any
}

var declarationPattern = regexp.MustCompile(`^((const|let|var) )?[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// ValidDeclaration reports whether decl is an assignable JS target,
// optionally preceded by const, let or var.
func ValidDeclaration(decl string) bool {
	return declarationPattern.MatchString(decl)
}

// marshalCompact encodes v as compact JSON without escaping non-ASCII or
// HTML characters. U+2028 and U+2029 are written raw as well.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeSeparators(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

var (
	lineSep = []byte(`\u2028`)
	paraSep = []byte(`\u2029`)
)

// unescapeSeparators turns the \u2028 and \u2029 escapes written by
// encoding/json back into the characters. Other escape pairs are copied
// whole so an escaped backslash followed by "u2028" is left alone.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		switch rest := data[i:]; {
		case bytes.HasPrefix(rest, lineSep):
			out = append(out, "\u2028"...)
			i += len(lineSep) - 1
		case bytes.HasPrefix(rest, paraSep):
			out = append(out, "\u2029"...)
			i += len(paraSep) - 1
		default:
			out = append(out, data[i], data[i+1])
			i++
		}
	}
	return out
}

// WriteStatements writes each statement as `decl = json;`, separated by a
// newline. With trailingNewline every statement is terminated by ";\n".
func WriteStatements(w io.Writer, trailingNewline bool, stmts ...Statement) error {
	for i, stmt := range stmts {
		if !ValidDeclaration(stmt.Declaration) {
			return fmt.Errorf("invalid declaration: %q", stmt.Declaration)
		}
		data, err := marshalCompact(stmt.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", stmt.Declaration, err)
		}

		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, stmt.Declaration+" = "); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		end := ";"
		if trailingNewline {
			end = ";\n"
		}
		if _, err := io.WriteString(w, end); err != nil {
			return err
		}
	}
	return nil
}

// Render returns the data file contents for stmts.
func Render(trailingNewline bool, stmts ...Statement) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteStatements(&buf, trailingNewline, stmts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders stmts to path, creating parent directories.
func WriteFile(path string, trailingNewline bool, stmts ...Statement) ([]byte, error) {
	data, err := Render(trailingNewline, stmts...)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { // nolint: gosec
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return data, nil
}
