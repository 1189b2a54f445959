package convert

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/internal/mybible"
	"github.com/julianstephens/bible-app-data/internal/textclean"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

func TestBuilderSynodal(t *testing.T) {
	logger, hook := test.NewNullLogger()
	b := NewBuilder("KTB", canon.Synodal, textclean.Clean, logger)

	for _, row := range []mybible.Book{
		{Number: 10, ShortName: "Жар", LongName: "Жаратылыс"},
		{Number: 170, ShortName: "Тов", LongName: "Товит"},
		{Number: 520, ShortName: "Рим", LongName: "Римдіктерге"},
		{Number: 660, ShortName: "Жақ", LongName: "Жақып"},
		{Number: 730, ShortName: "Аян", LongName: ""},
	} {
		b.AddBook(row)
	}
	assert.Equal(t, 4, b.Found())

	for _, row := range []mybible.Verse{
		{BookNumber: 10, Chapter: 2, Verse: 1, Text: "<pb/>екінші тарау"},
		{BookNumber: 10, Chapter: 1, Verse: 1, Text: "Бастапқыда<br/>Құдай "},
		{BookNumber: 10, Chapter: 1, Verse: 2, Text: "Жер"},
		{BookNumber: 170, Chapter: 1, Verse: 1, Text: "skipped"},
		{BookNumber: 520, Chapter: 1, Verse: 1, Text: "Пауыл"},
		{BookNumber: 660, Chapter: 1, Verse: 1, Text: "Жақып"},
	} {
		b.AddVerse(row)
	}

	bundle, bookMap, stats := b.Finish(false)

	require.Len(t, bundle.Books, 3, "revelation has no verses and is dropped")
	assert.Equal(t, "KTB", bundle.Translation)

	// MyBible order is kept: Romans (52) before James (45).
	assert.Equal(t, []int{1, 52, 45}, []int{bundle.Books[0].BookId, bundle.Books[1].BookId, bundle.Books[2].BookId})
	assert.Equal(t, "Жаратылыс", bundle.Books[0].BookName)

	gen := bundle.Books[0]
	require.Len(t, gen.Chapters, 2)
	assert.Equal(t, 1, gen.Chapters[0].ChapterId)
	assert.Equal(t, []appdata.Verse{{VerseId: 1, Text: "Бастапқыда Құдай"}, {VerseId: 2, Text: "Жер"}}, gen.Chapters[0].Verses)
	assert.Equal(t, "екінші тарау", gen.Chapters[1].Verses[0].Text)

	assert.Equal(t, []string{"жар", "жаратылыс", "рим", "римдіктерге", "жақ", "жақып", "аян"}, bookMap.Keys())
	id, _ := bookMap.Get("жақып")
	assert.Equal(t, 45, id)
	id, _ = bookMap.Get("аян")
	assert.Equal(t, 66, id)

	assert.Equal(t, []int{170}, stats.SkippedBooks)
	assert.Equal(t, 1, stats.SkippedVerses)
	assert.Equal(t, 3, stats.Books)
	assert.Equal(t, 4, stats.Chapters)
	assert.Equal(t, 5, stats.Verses)

	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "Skipping unknown book number: 170")
}

func TestBuilderSortsBooks(t *testing.T) {
	logger, _ := test.NewNullLogger()
	b := NewBuilder("KYB", canon.Protestant, textclean.Clean, logger)

	b.AddBook(mybible.Book{Number: 660, ShortName: "Жкп", LongName: "Жакып"})
	b.AddBook(mybible.Book{Number: 10, ShortName: "Баш", LongName: "Башталыш"})
	b.AddVerse(mybible.Verse{BookNumber: 10, Chapter: 1, Verse: 1, Text: "a"})
	b.AddVerse(mybible.Verse{BookNumber: 660, Chapter: 1, Verse: 1, Text: "b"})

	bundle, _, _ := b.Finish(true)
	require.Len(t, bundle.Books, 2)
	assert.Equal(t, 1, bundle.Books[0].BookId)
	assert.Equal(t, 59, bundle.Books[1].BookId)
}

func TestBuilderDuplicateBookRows(t *testing.T) {
	logger, _ := test.NewNullLogger()
	b := NewBuilder("KYB", canon.Protestant, textclean.Clean, logger)

	b.AddBook(mybible.Book{Number: 10, ShortName: "A", LongName: "First"})
	b.AddBook(mybible.Book{Number: 10, ShortName: "B", LongName: "Second"})
	b.AddVerse(mybible.Verse{BookNumber: 10, Chapter: 1, Verse: 1, Text: "text"})

	bundle, bookMap, _ := b.Finish(false)
	require.Len(t, bundle.Books, 1)
	assert.Equal(t, "First", bundle.Books[0].BookName)
	assert.Equal(t, 4, bookMap.Len())
}

func TestBuilderStripMarkup(t *testing.T) {
	logger, _ := test.NewNullLogger()
	b := NewBuilder("KYB", canon.Protestant, textclean.Cleaner(true), logger)

	b.AddBook(mybible.Book{Number: 10, LongName: "Башталыш"})
	b.AddVerse(mybible.Verse{BookNumber: 10, Chapter: 1, Verse: 1, Text: "Башында<f>[1]</f> Кудай"})

	bundle, bookMap, _ := b.Finish(false)
	assert.Equal(t, "Башында Кудай", bundle.Books[0].Chapters[0].Verses[0].Text)
	assert.Equal(t, []string{"башталыш"}, bookMap.Keys())
}
