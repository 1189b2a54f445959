// Package mybible reads MyBible.zone Bible modules (.SQLite3).
//
// The schema uses lowercase table and column names:
//   - books: book_number, short_name, long_name
//   - verses: book_number, chapter, verse, text
//   - info: name, value pairs (optional)
package mybible

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure Go driver, registers "sqlite"
)

const driverName = "sqlite"

// Book is a row of the books table.
type Book struct {
	Number    int
	ShortName string
	LongName  string
}

// Verse is a row of the verses table.
type Verse struct {
	BookNumber int
	Chapter    int
	Verse      int
	Text       string
}

// DB is an open MyBible module.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens a module read-only.
func Open(path string) (*DB, error) {
	db, err := sql.Open(driverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return &DB{db: db, path: path}, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		err := d.db.Close()
		d.db = nil
		return err
	}
	return nil
}

// Books returns the books table ordered by book_number.
func (d *DB) Books(ctx context.Context) ([]Book, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT book_number, short_name, long_name FROM books ORDER BY book_number")
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		var short, long sql.NullString
		if err := rows.Scan(&b.Number, &short, &long); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		b.ShortName = short.String
		b.LongName = long.String
		books = append(books, b)
	}
	return books, rows.Err()
}

// EachVerse calls fn for every verse ordered by book, chapter and verse.
// Iteration stops at the first error fn returns.
func (d *DB) EachVerse(ctx context.Context, fn func(Verse) error) error {
	rows, err := d.db.QueryContext(ctx, "SELECT book_number, chapter, verse, text FROM verses ORDER BY book_number, chapter, verse")
	if err != nil {
		return fmt.Errorf("querying verses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Verse
		var text sql.NullString
		if err := rows.Scan(&v.BookNumber, &v.Chapter, &v.Verse, &text); err != nil {
			return fmt.Errorf("scanning verse: %w", err)
		}
		v.Text = text.String
		if err := fn(v); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Verses returns all verses.
func (d *DB) Verses(ctx context.Context) ([]Verse, error) {
	var verses []Verse
	err := d.EachVerse(ctx, func(v Verse) error {
		verses = append(verses, v)
		return nil
	})
	return verses, err
}

// Info returns the info table. Modules without one yield an empty map.
func (d *DB) Info(ctx context.Context) (map[string]string, error) {
	info := make(map[string]string)

	var exists int
	err := d.db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'info'").Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking info table: %w", err)
	}
	if exists == 0 {
		return info, nil
	}

	rows, err := d.db.QueryContext(ctx, "SELECT name, value FROM info")
	if err != nil {
		return nil, fmt.Errorf("querying info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning info: %w", err)
		}
		info[name] = value.String
	}
	return info, rows.Err()
}
