// Package canon holds the static book tables used to remap MyBible book
// numbers onto the app's BookId numbering.
package canon

// BookInfo describes one book of the 66-book canon.
type BookInfo struct {
	MyBible  int    // MyBible.zone book_number
	OSIS     string // OSIS book identifier
	Abbr     string // UBS abbreviation
	Chapters int    // chapter count
}

// bookOrder lists the canon in MyBible order, which is also the Western
// Protestant order (Paul's epistles before the General epistles).
var bookOrder = []BookInfo{
	// Old Testament
	{10, "Gen", "GEN", 50}, {20, "Exod", "EXO", 40}, {30, "Lev", "LEV", 27},
	{40, "Num", "NUM", 36}, {50, "Deut", "DEU", 34}, {60, "Josh", "JOS", 24},
	{70, "Judg", "JDG", 21}, {80, "Ruth", "RUT", 4}, {90, "1Sam", "1SA", 31},
	{100, "2Sam", "2SA", 24}, {110, "1Kgs", "1KI", 22}, {120, "2Kgs", "2KI", 25},
	{130, "1Chr", "1CH", 29}, {140, "2Chr", "2CH", 36}, {150, "Ezra", "EZR", 10},
	{160, "Neh", "NEH", 13}, {190, "Esth", "EST", 10}, {220, "Job", "JOB", 42},
	{230, "Ps", "PSA", 150}, {240, "Prov", "PRO", 31}, {250, "Eccl", "ECC", 12},
	{260, "Song", "SNG", 8}, {290, "Isa", "ISA", 66}, {300, "Jer", "JER", 52},
	{310, "Lam", "LAM", 5}, {330, "Ezek", "EZK", 48}, {340, "Dan", "DAN", 12},
	{350, "Hos", "HOS", 14}, {360, "Joel", "JOL", 3}, {370, "Amos", "AMO", 9},
	{380, "Obad", "OBA", 1}, {390, "Jonah", "JON", 4}, {400, "Mic", "MIC", 7},
	{410, "Nah", "NAM", 3}, {420, "Hab", "HAB", 3}, {430, "Zeph", "ZEP", 3},
	{440, "Hag", "HAG", 2}, {450, "Zech", "ZEC", 14}, {460, "Mal", "MAL", 4},
	// Gospels and Acts
	{470, "Matt", "MAT", 28}, {480, "Mark", "MRK", 16}, {490, "Luke", "LUK", 24},
	{500, "John", "JHN", 21}, {510, "Acts", "ACT", 28},
	// Pauline epistles
	{520, "Rom", "ROM", 16}, {530, "1Cor", "1CO", 16}, {540, "2Cor", "2CO", 13},
	{550, "Gal", "GAL", 6}, {560, "Eph", "EPH", 6}, {570, "Phil", "PHP", 4},
	{580, "Col", "COL", 4}, {590, "1Thess", "1TH", 5}, {600, "2Thess", "2TH", 3},
	{610, "1Tim", "1TI", 6}, {620, "2Tim", "2TI", 4}, {630, "Titus", "TIT", 3},
	{640, "Phlm", "PHM", 1}, {650, "Heb", "HEB", 13},
	// General epistles
	{660, "Jas", "JAS", 5}, {670, "1Pet", "1PE", 5}, {680, "2Pet", "2PE", 3},
	{690, "1John", "1JN", 5}, {700, "2John", "2JN", 1}, {710, "3John", "3JN", 1},
	{720, "Jude", "JUD", 1},
	// Revelation
	{730, "Rev", "REV", 22},
}

var (
	booksByMyBible = make(map[int]BookInfo, len(bookOrder))
	booksByOSIS    = make(map[string]BookInfo, len(bookOrder))
)

func init() {
	for _, b := range bookOrder {
		booksByMyBible[b.MyBible] = b
		booksByOSIS[b.OSIS] = b
	}
}

// Books returns the canon in MyBible order.
func Books() []BookInfo {
	out := make([]BookInfo, len(bookOrder))
	copy(out, bookOrder)
	return out
}

// ByMyBible returns the book with the given MyBible book_number.
func ByMyBible(number int) (BookInfo, bool) {
	b, ok := booksByMyBible[number]
	return b, ok
}

// ByOSIS returns the book with the given OSIS identifier.
func ByOSIS(osis string) (BookInfo, bool) {
	b, ok := booksByOSIS[osis]
	return b, ok
}

// ChapterCount returns the expected chapter count for a book, or 0.
func ChapterCount(osis string) int {
	return booksByOSIS[osis].Chapters
}

// Testament returns "OT" or "NT" for a book, or "" when unknown.
func Testament(osis string) string {
	b, ok := booksByOSIS[osis]
	if !ok {
		return ""
	}
	if b.MyBible < 470 { // OT ends at Malachi
		return "OT"
	}
	return "NT"
}
