package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rstSource = `{"Books":[{"BookId":19,"BookName":"Псалмы","Chapters":[{"ChapterId":9,"Verses":[{"VerseId":1,"Text":"(9:22) Боже мой"},{"VerseId":2,"Text":"%s"}]}]}]}`

func writeRST(t *testing.T, root, second string) {
	t.Helper()
	dir := filepath.Join(root, "sources")
	require.NoError(t, os.MkdirAll(dir, 0750))
	content := fmt.Sprintf(rstSource, second)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rst.json"), []byte(content), 0600))
}

func newTestApp(t *testing.T, g Globals) *App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	app, err := NewApp(context.Background(), g, logger)
	require.NoError(t, err)
	return app
}

func TestAppRun(t *testing.T) {
	tests := []struct {
		name    string
		second  string
		strict  bool
		jobs    []string
		wantErr string
	}{
		{name: "rst", second: "Для чего", jobs: []string{"rst"}},
		{name: "unknown job", second: "x", jobs: []string{"NRT"}, wantErr: `unknown job "NRT" (available: KTB, KYB, RST)`},
		{name: "missing source", jobs: []string{"KYB"}, wantErr: "job KYB failed"},
		{name: "invalid output tolerated", second: "", jobs: []string{"RST"}},
		{name: "invalid output strict", second: "", strict: true, jobs: []string{"RST"}, wantErr: "validation failed for RST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeRST(t, root, tt.second)

			app := newTestApp(t, Globals{Root: root, Strict: tt.strict})
			err := app.Run(tt.jobs...)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, err = os.Stat(filepath.Join(root, "app", "js", "data", "bible_data.js"))
			assert.NoError(t, err)
		})
	}
}

func TestAppConfigFile(t *testing.T) {
	root := t.TempDir()
	writeRST(t, root, "Для чего")

	cfgPath := filepath.Join(root, "convert.yaml")
	cfg := `jobs:
  - name: NRT
    kind: rst
    source: sources/rst.json
    output: out/nrt_data.js
    data_var: window.NRT_DATA
    compress: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0600))

	app := newTestApp(t, Globals{Config: cfgPath, Root: root})
	require.NoError(t, (&AllCmd{}).Run(app))

	data, err := os.ReadFile(filepath.Join(root, "out", "nrt_data.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `window.NRT_DATA = {"Translation":"RST",`)
	_, err = os.Stat(filepath.Join(root, "out", "nrt_data.js.zst"))
	assert.NoError(t, err)

	err = (&KTBCmd{}).Run(app)
	assert.ErrorContains(t, err, `unknown job "KTB"`)
}

func TestNewAppBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "convert.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("jobs:\n  - name: X\n    kind: usfm\n"), 0600))

	logger, _ := test.NewNullLogger()
	_, err := NewApp(context.Background(), Globals{Config: cfgPath}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading job file")
}

func TestAppRunParallel(t *testing.T) {
	root := t.TempDir()
	writeRST(t, root, "Для чего")

	cfgPath := filepath.Join(root, "convert.yaml")
	cfg := `jobs:
  - name: RST
    kind: rst
    source: sources/rst.json
    output: out/bible_data.js
    data_var: window.BIBLE_DATA
  - name: NRT
    kind: rst
    source: sources/rst.json
    output: out/nrt_data.js
    data_var: window.NRT_DATA
  - name: KYB
    kind: mybible
    database: bible module/KYB.SQLite3
    output: out/kyb_data.js
    data_var: window.KYB_DATA
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0600))
	app := newTestApp(t, Globals{Config: cfgPath, Root: root})

	require.NoError(t, app.RunParallel(2, "RST", "NRT"))
	for _, name := range []string{"bible_data.js", "nrt_data.js"} {
		_, err := os.Stat(filepath.Join(root, "out", name))
		assert.NoError(t, err, name)
	}

	err := (&AllCmd{Parallel: 3}).Run(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job KYB failed")
}
