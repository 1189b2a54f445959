package convert

import (
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/internal/mybible"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

type bookBuilder struct {
	book     appdata.Book
	chapters map[int]*appdata.Chapter
}

// Builder accumulates MyBible rows into a bundle and its search map.
type Builder struct {
	translation string
	scheme      canon.Scheme
	clean       func(string) string
	lower       cases.Caser
	log         logrus.FieldLogger

	books   []*bookBuilder
	byID    map[int]*bookBuilder
	bookMap *appdata.BookMap
	stats   Stats
}

// NewBuilder returns a builder remapping book numbers with scheme and
// cleaning verse text with clean.
func NewBuilder(translation string, scheme canon.Scheme, clean func(string) string, log logrus.FieldLogger) *Builder {
	return &Builder{
		translation: translation,
		scheme:      scheme,
		clean:       clean,
		lower:       cases.Lower(language.Und),
		log:         log,
		byID:        make(map[int]*bookBuilder),
		bookMap:     appdata.NewBookMap(),
	}
}

// AddBook registers a books row. Unknown book numbers are skipped.
func (b *Builder) AddBook(row mybible.Book) {
	bookID, ok := b.scheme.BookID(row.Number)
	if !ok {
		b.log.WithField("book_number", row.Number).Warnf("Skipping unknown book number: %d (%s)", row.Number, row.ShortName)
		b.stats.SkippedBooks = append(b.stats.SkippedBooks, row.Number)
		return
	}

	bb := &bookBuilder{
		book:     appdata.Book{BookId: bookID, BookName: row.LongName},
		chapters: make(map[int]*appdata.Chapter),
	}
	b.books = append(b.books, bb)
	if _, exists := b.byID[bookID]; !exists {
		b.byID[bookID] = bb
	}

	if row.ShortName != "" {
		b.bookMap.Set(b.lower.String(row.ShortName), bookID)
	}
	if row.LongName != "" {
		b.bookMap.Set(b.lower.String(row.LongName), bookID)
	}
}

// AddVerse files a verses row under its book and chapter. Verses of unknown
// or unregistered books are skipped.
func (b *Builder) AddVerse(row mybible.Verse) {
	bookID, ok := b.scheme.BookID(row.BookNumber)
	if !ok {
		b.stats.SkippedVerses++
		return
	}
	bb, ok := b.byID[bookID]
	if !ok {
		b.stats.SkippedVerses++
		return
	}

	ch, ok := bb.chapters[row.Chapter]
	if !ok {
		ch = &appdata.Chapter{ChapterId: row.Chapter, Verses: []appdata.Verse{}}
		bb.chapters[row.Chapter] = ch
	}
	ch.Verses = append(ch.Verses, appdata.Verse{
		VerseId: row.Verse,
		Text:    b.clean(row.Text),
	})
}

// Found returns the number of registered books.
func (b *Builder) Found() int {
	return len(b.books)
}

// Finish assembles the bundle. Chapters are sorted, books without chapters
// are dropped and, with sortBooks, books are ordered by BookId.
func (b *Builder) Finish(sortBooks bool) (*appdata.Bundle, *appdata.BookMap, Stats) {
	bundle := &appdata.Bundle{Translation: b.translation, Books: []appdata.Book{}}

	for _, bb := range b.books {
		if len(bb.chapters) == 0 {
			continue
		}
		ids := make([]int, 0, len(bb.chapters))
		for id := range bb.chapters {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		book := bb.book
		book.Chapters = make([]appdata.Chapter, 0, len(ids))
		for _, id := range ids {
			book.Chapters = append(book.Chapters, *bb.chapters[id])
		}
		bundle.Books = append(bundle.Books, book)
	}

	if sortBooks {
		sort.SliceStable(bundle.Books, func(i, j int) bool {
			return bundle.Books[i].BookId < bundle.Books[j].BookId
		})
	}

	stats := b.stats
	stats.Books = len(bundle.Books)
	for _, book := range bundle.Books {
		stats.Chapters += len(book.Chapters)
		for _, ch := range book.Chapters {
			stats.Verses += len(ch.Verses)
		}
	}
	return bundle, b.bookMap, stats
}
