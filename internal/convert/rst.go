package convert

import (
	"github.com/sirupsen/logrus"

	"github.com/julianstephens/bible-app-data/internal/canon"
	"github.com/julianstephens/bible-app-data/internal/psalms"
	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

// RSTTranslation is the translation code of the RST bundle.
const RSTTranslation = "RST"

// BuildRST fixes book names and Psalm numbering of a decoded RST source.
// Books with a zero BookId are dropped.
func BuildRST(src *appdata.Bundle, log logrus.FieldLogger) (*appdata.Bundle, Stats) {
	var stats Stats
	out := &appdata.Bundle{Translation: RSTTranslation, Books: []appdata.Book{}}

	for _, book := range src.Books {
		if book.BookId == 0 {
			continue
		}

		if name, ok := canon.RussianName(book.BookId); ok {
			if book.BookName != name {
				log.Infof("Fixing Book %d: '%s' -> '%s'", book.BookId, book.BookName, name)
				stats.RenamedBooks++
			}
			book.BookName = name
		} else {
			log.Warnf("No trusted name for Book ID %d. Keeping '%s'", book.BookId, book.BookName)
			stats.UntrustedBooks = append(stats.UntrustedBooks, book.BookId)
		}

		if book.BookId == canon.PsalmsBookID {
			log.Info("Reprocessing Psalms to match RST/LXX numbering...")
			res := psalms.Renumber(book.Chapters)
			for _, merr := range res.Errors {
				log.WithError(merr.Err).Errorf("Error parsing marker in '%s...'", psalms.Excerpt(merr.Text, 20))
			}
			book.Chapters = res.Chapters
			stats.PsalmMarkers = res.Markers
			stats.PsalmMoves = res.Moved
			stats.PsalmErrors = len(res.Errors)
			log.Infof("Psalms reprocessed: %d chapters.", len(res.Chapters))
		}

		out.Books = append(out.Books, book)
	}

	stats.Books = len(out.Books)
	for _, book := range out.Books {
		stats.Chapters += len(book.Chapters)
		for _, ch := range book.Chapters {
			stats.Verses += len(ch.Verses)
		}
	}
	return out, stats
}
