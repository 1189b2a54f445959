package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bible-app-data/internal/canon"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"KTB", "KYB", "RST"}, cfg.Names())

	ktb, ok := cfg.Job("ktb")
	require.True(t, ok)
	assert.Equal(t, "ktb_temp/KTB'22.SQLite3", ktb.Database)
	assert.Equal(t, "sources/kaz_bible.zip", ktb.Archive)
	assert.Equal(t, canon.Synodal, ktb.ParsedScheme())
	assert.False(t, ktb.SortBooks)

	kyb, ok := cfg.Job("KYB")
	require.True(t, ok)
	assert.True(t, kyb.SortBooks)
	assert.True(t, kyb.TrailingNewline)
	assert.Equal(t, "window.KYB_DATA", kyb.DataVar)

	rst, ok := cfg.Job("RST")
	require.True(t, ok)
	assert.Equal(t, KindRST, rst.Kind)
	assert.Equal(t, "app/js/data/bible_data.js", rst.Output)

	_, ok = cfg.Job("NRT")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "valid file",
			yaml: `
jobs:
  - name: KTB
    kind: mybible
    scheme: synodal
    archive: sources/kaz_bible.zip
    output: out/ktb.js
    data_var: const KTB_DATA
    map_var: const KTB_BOOK_MAP
    strip_markup: true
    compress: true
`,
			check: func(t *testing.T, cfg *Config) {
				job := cfg.Jobs[0]
				assert.True(t, job.StripMarkup)
				assert.True(t, job.Compress)
				assert.Equal(t, "out/ktb.js", job.Output)
			},
		},
		{
			name:    "unknown key",
			yaml:    "jobs:\n  - name: X\n    kind: rst\n    source: a\n    output: b\n    data_var: window.X\n    colour: red\n",
			wantErr: true,
		},
		{
			name:    "unknown kind",
			yaml:    "jobs:\n  - name: X\n    kind: usfm\n    output: b\n    data_var: window.X\n",
			wantErr: true,
		},
		{
			name:    "bad declaration",
			yaml:    "jobs:\n  - name: X\n    kind: rst\n    source: a\n    output: b\n    data_var: window X\n",
			wantErr: true,
		},
		{
			name:    "duplicate names",
			yaml:    "jobs:\n  - {name: X, kind: rst, source: a, output: b, data_var: window.X}\n  - {name: x, kind: rst, source: a, output: c, data_var: window.Y}\n",
			wantErr: true,
		},
		{
			name:    "no jobs",
			yaml:    "jobs: []\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "convert.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0600))

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWithRoot(t *testing.T) {
	job, _ := Default().Job("KTB")
	got := job.WithRoot("/repo")
	assert.Equal(t, filepath.Join("/repo", "ktb_temp", "KTB'22.SQLite3"), got.Database)
	assert.Equal(t, filepath.Join("/repo", "app/js/data/ktb_data.js"), got.Output)
	assert.Equal(t, "", got.Source)

	abs := Job{Output: "/abs/out.js"}.WithRoot("/repo")
	assert.Equal(t, "/abs/out.js", abs.Output)

	assert.Equal(t, job, job.WithRoot("."))
}
