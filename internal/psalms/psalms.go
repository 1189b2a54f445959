// Package psalms re-splits Psalm verses by their embedded (chapter:verse)
// markers, moving a source numbered in one convention into the other.
package psalms

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/julianstephens/bible-app-data/pkg/appdata"
)

// Marker is a parsed "(C:V)" prefix.
type Marker struct {
	Chapter  int
	Verse    int
	HasVerse bool // false when V is not all digits
}

// MarkerError records a verse whose marker could not be parsed. The verse is
// kept where it was with its text untouched.
type MarkerError struct {
	Chapter int
	Verse   int
	Text    string
	Err     error
}

func (e MarkerError) Error() string {
	return fmt.Sprintf("marker in %d:%d (%q): %v", e.Chapter, e.Verse, Excerpt(e.Text, 20), e.Err)
}

// Result is the outcome of Renumber.
type Result struct {
	Chapters []appdata.Chapter
	Markers  int // verses carrying a valid marker
	Moved    int // verses whose chapter or verse number changed
	Errors   []MarkerError
}

// ParseMarker looks for a leading "(C:V)" marker. found is false when the
// text carries no colon marker at all; err is set when a marker is present
// but malformed. A leading parenthetical without a colon is a heading: it is
// cut from rest but found stays false. rest is the text following the
// parenthetical, trimmed, or text itself when nothing was cut.
func ParseMarker(text string) (m Marker, rest string, found bool, err error) {
	t := strings.TrimLeftFunc(text, unicode.IsSpace)
	if !strings.HasPrefix(t, "(") {
		return Marker{}, text, false, nil
	}
	end := strings.IndexByte(t, ')')
	if end < 0 {
		return Marker{}, text, false, nil
	}
	body := t[1:end]
	if !strings.Contains(body, ":") {
		return Marker{}, strings.TrimSpace(t[end+1:]), false, nil
	}

	parts := strings.Split(body, ":")
	if len(parts) != 2 {
		return Marker{}, text, true, fmt.Errorf("expected one colon in %q", body)
	}
	chapter, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Marker{}, text, true, fmt.Errorf("invalid chapter in %q: %w", body, err)
	}

	m = Marker{Chapter: chapter}
	if isDigits(parts[1]) {
		m.Verse, err = strconv.Atoi(parts[1])
		if err != nil {
			return Marker{}, text, true, fmt.Errorf("invalid verse in %q: %w", body, err)
		}
		m.HasVerse = true
	}
	return m, strings.TrimSpace(t[end+1:]), true, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Renumber walks every verse in source order and files it under the chapter
// and verse named by its marker, or under its source position when it has
// none. Chapters come back in ascending order with verses stably sorted.
func Renumber(chapters []appdata.Chapter) Result {
	var res Result
	buckets := make(map[int][]appdata.Verse)

	for _, ch := range chapters {
		for _, v := range ch.Verses {
			targetChapter, targetVerse := ch.ChapterId, v.VerseId
			text := v.Text

			m, rest, found, err := ParseMarker(v.Text)
			switch {
			case err != nil:
				res.Errors = append(res.Errors, MarkerError{
					Chapter: ch.ChapterId,
					Verse:   v.VerseId,
					Text:    v.Text,
					Err:     err,
				})
			case found:
				res.Markers++
				targetChapter = m.Chapter
				if m.HasVerse {
					targetVerse = m.Verse
				}
				text = rest
			default:
				text = rest
			}

			if targetChapter != ch.ChapterId || targetVerse != v.VerseId {
				res.Moved++
			}
			buckets[targetChapter] = append(buckets[targetChapter], appdata.Verse{
				VerseId: targetVerse,
				Text:    text,
			})
		}
	}

	ids := make([]int, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	res.Chapters = make([]appdata.Chapter, 0, len(ids))
	for _, id := range ids {
		verses := buckets[id]
		sort.SliceStable(verses, func(i, j int) bool {
			return verses[i].VerseId < verses[j].VerseId
		})
		res.Chapters = append(res.Chapters, appdata.Chapter{ChapterId: id, Verses: verses})
	}
	return res
}

// Excerpt returns at most n runes of s.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
