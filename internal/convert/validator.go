package convert

import (
	"fmt"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

// Validator checks the structure of produced bundles.
type Validator struct {
	scheme canon.Scheme
}

// NewValidator creates a validator for bundles numbered with scheme.
func NewValidator(scheme canon.Scheme) *Validator {
	return &Validator{scheme: scheme}
}

// Validate checks a bundle. Chapter-count mismatches, verse gaps and
// duplicate verses are warnings; everything else is an error.
func (v *Validator) Validate(bundle *appdata.Bundle) []ValidationError {
	var errors []ValidationError

	if bundle.Translation == "" {
		errors = append(errors, ValidationError{
			Type:    "translation",
			Message: "missing translation code",
		})
	}
	if len(bundle.Books) == 0 {
		errors = append(errors, ValidationError{
			Type:    "book",
			Message: "no books found",
		})
	}

	seen := make(map[int]bool)
	for _, book := range bundle.Books {
		if book.BookId < 1 || book.BookId > 66 {
			errors = append(errors, ValidationError{
				Book:     book.BookId,
				Type:     "book",
				Message:  fmt.Sprintf("BookId %d out of range", book.BookId),
				Expected: "1-66",
				Actual:   book.BookId,
			})
		}
		if seen[book.BookId] {
			errors = append(errors, ValidationError{
				Book:    book.BookId,
				Type:    "book",
				Message: fmt.Sprintf("duplicate BookId %d", book.BookId),
			})
		}
		seen[book.BookId] = true

		errors = append(errors, v.validateChapters(book)...)
	}

	return errors
}

// validateChapters checks chapter order and the canonical chapter count.
func (v *Validator) validateChapters(book appdata.Book) []ValidationError {
	var errors []ValidationError

	if len(book.Chapters) == 0 {
		errors = append(errors, ValidationError{
			Book:    book.BookId,
			Type:    "chapter",
			Message: "book has no chapters",
		})
		return errors
	}

	previous := 0
	for _, ch := range book.Chapters {
		if ch.ChapterId <= previous {
			errors = append(errors, ValidationError{
				Book:     book.BookId,
				Chapter:  ch.ChapterId,
				Type:     "chapter",
				Message:  fmt.Sprintf("chapter %d out of order or duplicated", ch.ChapterId),
				Expected: fmt.Sprintf("> %d", previous),
				Actual:   ch.ChapterId,
			})
		}
		previous = ch.ChapterId
		errors = append(errors, v.validateVerses(book.BookId, ch)...)
	}

	if osis := v.scheme.OSIS(book.BookId); osis != "" {
		if want := canon.ChapterCount(osis); want != len(book.Chapters) {
			errors = append(errors, ValidationError{
				Book:     book.BookId,
				Type:     "count",
				Message:  fmt.Sprintf("chapter count mismatch for %s", osis),
				Expected: want,
				Actual:   len(book.Chapters),
				Warning:  true,
			})
		}
	}

	return errors
}

// validateVerses checks that verse numbers are positive, ascending and
// carry text.
func (v *Validator) validateVerses(bookID int, ch appdata.Chapter) []ValidationError {
	var errors []ValidationError

	if len(ch.Verses) == 0 {
		errors = append(errors, ValidationError{
			Book:    bookID,
			Chapter: ch.ChapterId,
			Type:    "verse",
			Message: "no verses found in chapter",
		})
		return errors
	}

	previous := 0
	for _, verse := range ch.Verses {
		switch {
		case verse.VerseId < 1:
			errors = append(errors, ValidationError{
				Book:     bookID,
				Chapter:  ch.ChapterId,
				Type:     "verse",
				Message:  "invalid verse number",
				Expected: ">= 1",
				Actual:   verse.VerseId,
			})
		case verse.VerseId < previous:
			errors = append(errors, ValidationError{
				Book:     bookID,
				Chapter:  ch.ChapterId,
				Type:     "verse",
				Message:  fmt.Sprintf("verse %d out of order", verse.VerseId),
				Expected: fmt.Sprintf(">= %d", previous),
				Actual:   verse.VerseId,
			})
		case verse.VerseId == previous:
			errors = append(errors, ValidationError{
				Book:    bookID,
				Chapter: ch.ChapterId,
				Type:    "verse",
				Message: fmt.Sprintf("duplicate verse %d", verse.VerseId),
				Warning: true,
			})
		case verse.VerseId > previous+1:
			errors = append(errors, ValidationError{
				Book:     bookID,
				Chapter:  ch.ChapterId,
				Type:     "verse",
				Message:  fmt.Sprintf("gap in verse numbers: expected %d, got %d", previous+1, verse.VerseId),
				Expected: previous + 1,
				Actual:   verse.VerseId,
				Warning:  true,
			})
		}
		if verse.VerseId > previous {
			previous = verse.VerseId
		}

		if verse.Text == "" {
			errors = append(errors, ValidationError{
				Book:    bookID,
				Chapter: ch.ChapterId,
				Type:    "verse",
				Message: fmt.Sprintf("verse %d has empty text", verse.VerseId),
			})
		}
	}

	return errors
}
