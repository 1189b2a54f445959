package canon

import (
	"fmt"
	"strings"
)

// Scheme is an app BookId numbering.
type Scheme string

const (
	// Synodal orders the General epistles (James..Jude) before Paul.
	Synodal Scheme = "synodal"
	// Protestant keeps the Western order, identical to MyBible order.
	Protestant Scheme = "protestant"
)

// ParseScheme returns the scheme for a case-insensitive name.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(name))) {
	case Synodal:
		return Synodal, nil
	case Protestant, "":
		return Protestant, nil
	default:
		return "", fmt.Errorf("unknown numbering scheme: %q", name)
	}
}

type schemeTable struct {
	toBookID map[int]int    // MyBible number -> BookId
	toOSIS   map[int]string // BookId -> OSIS
	fromOSIS map[string]int // OSIS -> BookId
}

var tables = map[Scheme]*schemeTable{
	Synodal:    buildTable(synodalID),
	Protestant: buildTable(protestantID),
}

func protestantID(index int, _ BookInfo) int {
	return index + 1
}

// synodalID moves the seven General epistles (MyBible 660..720) right after
// Acts and shifts Paul's fourteen epistles (520..650) behind them.
func synodalID(index int, b BookInfo) int {
	switch {
	case b.MyBible >= 660 && b.MyBible <= 720:
		return 45 + (b.MyBible-660)/10
	case b.MyBible >= 520 && b.MyBible <= 650:
		return 52 + (b.MyBible-520)/10
	default:
		return index + 1
	}
}

func buildTable(id func(int, BookInfo) int) *schemeTable {
	t := &schemeTable{
		toBookID: make(map[int]int, len(bookOrder)),
		toOSIS:   make(map[int]string, len(bookOrder)),
		fromOSIS: make(map[string]int, len(bookOrder)),
	}
	for i, b := range bookOrder {
		bookID := id(i, b)
		t.toBookID[b.MyBible] = bookID
		t.toOSIS[bookID] = b.OSIS
		t.fromOSIS[b.OSIS] = bookID
	}
	return t
}

func (s Scheme) table() *schemeTable {
	if t, ok := tables[s]; ok {
		return t
	}
	return tables[Protestant]
}

// BookID maps a MyBible book_number onto the scheme's BookId.
func (s Scheme) BookID(mybible int) (int, bool) {
	id, ok := s.table().toBookID[mybible]
	return id, ok
}

// OSIS returns the OSIS identifier of a BookId, or "".
func (s Scheme) OSIS(bookID int) string {
	return s.table().toOSIS[bookID]
}

// BookIDForOSIS returns the BookId carrying an OSIS identifier.
func (s Scheme) BookIDForOSIS(osis string) (int, bool) {
	id, ok := s.table().fromOSIS[osis]
	return id, ok
}

// Mapping returns a copy of the MyBible -> BookId table.
func (s Scheme) Mapping() map[int]int {
	src := s.table().toBookID
	out := make(map[int]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
