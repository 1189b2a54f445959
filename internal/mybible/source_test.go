package mybible

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestLocate(t *testing.T) {
	tmp := t.TempDir()
	module := filepath.Join(tmp, "build", "KTB'22.SQLite3")
	createModule(t, module, false, []fixtureBook{{10, "Жар", "Жаратылыс"}}, nil)

	archive := filepath.Join(tmp, "kaz_bible.zip")
	zipFiles(t, archive, map[string]string{
		"readme.txt":           "",
		"bible/KTB'22.SQLite3": module,
	})

	emptyArchive := filepath.Join(tmp, "empty.zip")
	zipFiles(t, emptyArchive, map[string]string{"readme.txt": ""})

	tests := []struct {
		name          string
		source        Source
		wantPath      string
		wantExtracted bool
		wantErr       error
		wantAnyErr    bool
	}{
		{
			name:     "existing database is used directly",
			source:   Source{Database: module, Archive: archive},
			wantPath: module,
		},
		{
			name: "missing database is extracted from archive",
			source: Source{
				Database:   filepath.Join(tmp, "ktb_temp", "KTB'22.SQLite3"),
				Archive:    archive,
				ExtractDir: filepath.Join(tmp, "ktb_temp"),
			},
			wantPath:      filepath.Join(tmp, "ktb_temp", "bible", "KTB'22.SQLite3"),
			wantExtracted: true,
		},
		{
			name:    "archive without module",
			source:  Source{Database: filepath.Join(tmp, "none.SQLite3"), Archive: emptyArchive, ExtractDir: filepath.Join(tmp, "x")},
			wantErr: ErrNoDatabase,
		},
		{
			name:       "no archive configured",
			source:     Source{Database: filepath.Join(tmp, "none.SQLite3")},
			wantAnyErr: true,
		},
		{
			name:       "archive missing",
			source:     Source{Database: filepath.Join(tmp, "none.SQLite3"), Archive: filepath.Join(tmp, "nope.zip")},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, extracted, err := tt.source.Locate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAnyErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantExtracted, extracted)

			db, err := Open(path)
			require.NoError(t, err)
			defer db.Close()
		})
	}
}

func TestLocateXZ(t *testing.T) {
	tmp := t.TempDir()
	module := filepath.Join(tmp, "src.SQLite3")
	createModule(t, module, false, []fixtureBook{{10, "Бт", "Башталыш"}}, nil)

	raw, err := os.ReadFile(module)
	require.NoError(t, err)

	target := filepath.Join(tmp, "bible module", "KYB.SQLite3")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0750))
	f, err := os.Create(target + ".xz")
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	path, extracted, err := Source{Database: target}.Locate()
	require.NoError(t, err)
	assert.True(t, extracted)
	assert.Equal(t, target, path)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestListArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "a.zip")
	zipFiles(t, archive, map[string]string{"readme.txt": ""})

	names, err := ListArchive(archive)
	require.NoError(t, err)
	assert.Equal(t, []string{"readme.txt"}, names)

	_, err = ListArchive(filepath.Join(t.TempDir(), "missing.zip"))
	assert.Error(t, err)
}

func TestEntryPathRejectsEscape(t *testing.T) {
	_, err := entryPath("/tmp/x", "../evil.SQLite3")
	assert.Error(t, err)

	p, err := entryPath("/tmp/x", "dir/ok.SQLite3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/x", "dir", "ok.SQLite3"), p)
}
