// Package appdata reads and writes the JavaScript data files consumed by the
// client application: one JSON literal per `<declaration> = ...;` statement.
package appdata

// Bundle is a complete translation as embedded in a data file.
type Bundle struct {
	Translation string `json:"Translation"`
	Books       []Book `json:"Books"`
}

// Book is one book of a translation. BookId follows the app numbering.
type Book struct {
	BookId   int       `json:"BookId"` //nolint:revive // wire name
	BookName string    `json:"BookName"`
	Chapters []Chapter `json:"Chapters"`
}

// Chapter holds the verses of one chapter in ascending VerseId order.
type Chapter struct {
	ChapterId int     `json:"ChapterId"` //nolint:revive // wire name
	Verses    []Verse `json:"Verses"`
}

// Verse is a single verse.
type Verse struct {
	VerseId int    `json:"VerseId"` //nolint:revive // wire name
	Text    string `json:"Text"`
}

// Book returns the first book with the given id, or nil.
func (b *Bundle) Book(id int) *Book {
	for i := range b.Books {
		if b.Books[i].BookId == id {
			return &b.Books[i]
		}
	}
	return nil
}

// Chapter returns the first chapter with the given id, or nil.
func (b *Book) Chapter(id int) *Chapter {
	for i := range b.Chapters {
		if b.Chapters[i].ChapterId == id {
			return &b.Chapters[i]
		}
	}
	return nil
}

// Verse returns the first verse with the given id, or nil.
func (c *Chapter) Verse(id int) *Verse {
	for i := range c.Verses {
		if c.Verses[i].VerseId == id {
			return &c.Verses[i]
		}
	}
	return nil
}

// VerseCount returns the number of verses across all books.
func (b *Bundle) VerseCount() int {
	total := 0
	for _, book := range b.Books {
		for _, ch := range book.Chapters {
			total += len(ch.Verses)
		}
	}
	return total
}
