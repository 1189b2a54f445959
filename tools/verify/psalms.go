package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/canonref/bibleref"
	refutil "github.com/julianstephens/canonref/util"
	"github.com/pkg/errors"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/internal/psalms"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
	"github.com/julianstephens/bible-app-data/tools/util"
)

// Chapters whose start moves when RST Psalms are renumbered.
var offsetChapters = []int{9, 10, 11, 22, 23, 113, 114, 115, 116, 146, 147}

func (c *PsalmsCmd) Run(spinner *util.Spinner, out io.Writer) error {
	spinner.Stop()
	for _, path := range c.Files {
		fmt.Fprintf(out, "--- Checking %s ---\n", path)
		probe(out, path, []int{22, 23}, 60, func(chapter int, text string, found bool) {
			if found {
				fmt.Fprintf(out, "Psalm %d:1 -> %s...\n", chapter, text)
			}
		})
	}
	return nil
}

func (c *OffsetsCmd) Run(spinner *util.Spinner, out io.Writer) error {
	spinner.Stop()
	for _, path := range c.Files {
		fmt.Fprintf(out, "--- Checking %s ---\n", filepath.Base(path))
		probe(out, path, offsetChapters, 40, func(chapter int, text string, found bool) {
			if !found {
				fmt.Fprintf(out, "CH %d: MISSING\n", chapter)
				return
			}
			fmt.Fprintf(out, "CH %d: %s...\n", chapter, text)
		})
	}
	return nil
}

// probe reports the first verse of each Psalm chapter, cut to width runes.
// Problems with the file itself are printed, not returned.
func probe(out io.Writer, path string, chapters []int, width int, report func(chapter int, text string, found bool)) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "File not found: %s\n", path)
		return
	}

	ds, err := appdata.Open(path, canon.Protestant)
	if err != nil {
		fmt.Fprintf(out, "Error (%s): %v\n", path, err)
		return
	}
	if ds.Bundle.Book(canon.PsalmsBookID) == nil {
		fmt.Fprintln(out, "Psalms not found!")
		return
	}

	osis := canon.Protestant.OSIS(canon.PsalmsBookID)
	for _, chapter := range chapters {
		ref := &bibleref.BibleRef{
			OSIS:    osis,
			Chapter: chapter,
			Verse:   &refutil.VerseRange{StartVerse: 1},
		}
		resolved, err := ds.Resolve(ref)
		switch {
		case err == nil:
			report(chapter, psalms.Excerpt(resolved.Verses[0].Text, width), true)
		case errors.Is(err, appdata.ErrChapterNotFound), errors.Is(err, appdata.ErrVerseOutOfRange):
			report(chapter, "", false)
		default:
			fmt.Fprintf(out, "Error (%s): %v\n", path, err)
			return
		}
	}
}
