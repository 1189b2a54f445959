package appdata

import (
	"fmt"
	"os"
	"sync"

	"github.com/julianstephens/canonref/bibleref"
	"github.com/julianstephens/canonref/util"

	"github.com/julianstephens/bible-app-data/internal/canon"
)

// Dataset is a data file loaded for reference lookups.
type Dataset struct {
	path      string
	scheme    canon.Scheme
	Bundle    *Bundle
	Books     *bibleref.Table
	booksByID map[string]*Book    // OSIS -> Book
	chapters  map[string]*Chapter // cache of indexed chapters
	mu        sync.RWMutex
}

// Resolved is the result of resolving a reference against a Dataset.
type Resolved struct {
	Ref      *bibleref.BibleRef
	BookName string
	Chapter  Chapter
	Verses   []Verse
}

// Open loads a data file. scheme decides which BookId each OSIS code maps to.
func Open(path string, scheme canon.Scheme) (*Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &DataError{
			Kind:  FileError,
			Err:   ErrNotFound,
			Cause: err,
		}
	}

	bundle, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewDataset(path, bundle, scheme)
}

// NewDataset indexes an already decoded bundle.
func NewDataset(path string, bundle *Bundle, scheme canon.Scheme) (*Dataset, error) {
	d := &Dataset{
		path:      path,
		scheme:    scheme,
		Bundle:    bundle,
		booksByID: make(map[string]*Book),
		chapters:  make(map[string]*Chapter),
	}

	var refBooks []bibleref.Book
	for i := range bundle.Books {
		book := &bundle.Books[i]
		osis := scheme.OSIS(book.BookId)
		if osis == "" {
			continue
		}
		if _, dup := d.booksByID[osis]; dup {
			continue
		}
		d.booksByID[osis] = book
		refBooks = append(refBooks, bibleref.Book{
			OSIS:      osis,
			Name:      book.BookName,
			Aliases:   []string{book.BookName},
			Testament: canon.Testament(osis),
			Order:     book.BookId,
			Chapters:  canon.ChapterCount(osis),
		})
	}

	table, err := bibleref.NewTable(refBooks)
	if err != nil {
		msg := "failed to build reference table"
		return nil, &DataError{
			Kind:    ParseError,
			Message: &msg,
			Err:     ErrMalformed,
			Cause:   err,
		}
	}
	d.Books = table

	return d, nil
}

// Path returns the file the dataset was loaded from.
func (d *Dataset) Path() string {
	return d.path
}

// Resolve returns the verses a reference points at. A missing chapter means
// chapter 1; a missing verse range means the whole chapter.
func (d *Dataset) Resolve(ref *bibleref.BibleRef) (*Resolved, error) {
	if ref.OSIS == "" {
		msg := "no book specified in reference"
		return nil, &DataError{
			Kind:    RangeError,
			Message: &msg,
			Err:     ErrUnknownBook,
		}
	}

	book, exists := d.booksByID[ref.OSIS]
	if !exists {
		msg := fmt.Sprintf("unknown book: %s", ref.OSIS)
		return nil, &DataError{
			Kind:    RangeError,
			Message: &msg,
			Err:     ErrUnknownBook,
		}
	}

	chapter := ref.Chapter
	if chapter == 0 {
		chapter = 1
	}

	ch, err := d.chapter(ref.OSIS, book, chapter)
	if err != nil {
		return nil, err
	}

	verses := extractVerses(ch, ref.Verse)
	if ref.Verse != nil && len(verses) == 0 {
		msg := fmt.Sprintf("%s %d:%d not present", ref.OSIS, chapter, ref.Verse.StartVerse)
		return nil, &DataError{
			Kind:    RangeError,
			Message: &msg,
			Err:     ErrVerseOutOfRange,
		}
	}

	return &Resolved{
		Ref:      ref,
		BookName: book.BookName,
		Chapter:  *ch,
		Verses:   verses,
	}, nil
}

// chapter looks a chapter up, with caching.
func (d *Dataset) chapter(osis string, book *Book, chapter int) (*Chapter, error) {
	cacheKey := fmt.Sprintf("%s:%d", osis, chapter)

	d.mu.RLock()
	if ch, exists := d.chapters[cacheKey]; exists {
		d.mu.RUnlock()
		return ch, nil
	}
	d.mu.RUnlock()

	ch := book.Chapter(chapter)
	if ch == nil {
		msg := fmt.Sprintf("chapter %d not found in %s", chapter, book.BookName)
		return nil, &DataError{
			Kind:    RangeError,
			Message: &msg,
			Err:     ErrChapterNotFound,
		}
	}

	d.mu.Lock()
	d.chapters[cacheKey] = ch
	d.mu.Unlock()

	return ch, nil
}

func extractVerses(chapter *Chapter, verseRange *util.VerseRange) []Verse {
	if verseRange == nil {
		return chapter.Verses
	}

	startVerse := verseRange.StartVerse
	endVerse := startVerse
	if verseRange.EndVerse != nil {
		endVerse = *verseRange.EndVerse
	}

	var result []Verse
	for _, verse := range chapter.Verses {
		if verse.VerseId >= startVerse && verse.VerseId <= endVerse {
			result = append(result, verse)
		}
	}
	return result
}
