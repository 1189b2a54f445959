package mybible

import (
	"archive/zip"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureBook and fixtureVerse describe rows of a test module.
type fixtureBook struct {
	number      int
	short, long string
}

type fixtureVerse struct {
	book, chapter, verse int
	text                 any
}

// createModule writes a MyBible module at path.
func createModule(t *testing.T, path string, withInfo bool, books []fixtureBook, verses []fixtureVerse) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		"CREATE TABLE books (book_color TEXT, book_number NUMERIC, short_name TEXT, long_name TEXT)",
		"CREATE TABLE verses (book_number NUMERIC, chapter NUMERIC, verse NUMERIC, text TEXT)",
	}
	if withInfo {
		stmts = append(stmts, "CREATE TABLE info (name TEXT, value TEXT)",
			"INSERT INTO info VALUES ('description', 'Test Bible'), ('language', 'kk')")
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	for _, b := range books {
		_, err := db.Exec("INSERT INTO books (book_color, book_number, short_name, long_name) VALUES ('#ccc', ?, ?, ?)", b.number, b.short, b.long)
		require.NoError(t, err)
	}
	for _, v := range verses {
		_, err := db.Exec("INSERT INTO verses VALUES (?, ?, ?, ?)", v.book, v.chapter, v.verse, v.text)
		require.NoError(t, err)
	}
}

// zipFiles writes a zip at zipPath with the given entry name -> source file.
func zipFiles(t *testing.T, zipPath string, entries map[string]string) {
	t.Helper()

	out, err := os.Create(zipPath)
	require.NoError(t, err)
	defer out.Close()

	w := zip.NewWriter(out)
	for name, src := range entries {
		data := []byte("readme")
		if src != "" {
			data, err = os.ReadFile(src)
			require.NoError(t, err)
		}
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}
