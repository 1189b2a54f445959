package appdata

import (
	"errors"
	"strings"
)

// DataErrorKind says which stage of loading a data file failed.
type DataErrorKind string

const (
	FileError  DataErrorKind = "file"  // the file could not be read
	ParseError DataErrorKind = "parse" // the content is not a data file
	RangeError DataErrorKind = "range" // a reference points outside the data
)

var (
	ErrNotFound        = errors.New("data file not found")
	ErrMalformed       = errors.New("malformed data file")
	ErrUnknownBook     = errors.New("unknown book")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrVerseOutOfRange = errors.New("verse out of range")
)

// DataError wraps one of the sentinels above. Message adds context such as
// the path or reference; Cause keeps the underlying I/O or JSON error.
type DataError struct {
	Kind    DataErrorKind
	Message *string
	Err     error
	Cause   error
}

func (e *DataError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	if e.Message != nil {
		b.WriteString(*e.Message)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *DataError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
