package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Бастапқыда Құдай", "Бастапқыда Құдай"},
		{"paragraph break removed", "<pb/>In the beginning", "In the beginning"},
		{"line break becomes space", "first<br/>second", "first second"},
		{"surrounding whitespace trimmed", "  text \n", "text"},
		{"other markup untouched", "word<f>[1]</f> <i>x</i>", "word<f>[1]</f> <i>x</i>"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"footnote dropped", "light<f>[a]</f> was", "light was"},
		{"strong numbers dropped", "God<S>430</S> created<S>1254</S>", "God created"},
		{"formatting kept", "<J>I am</J> the <i>way</i>", "I am the way"},
		{"entities unescaped", "a &amp; b", "a & b"},
		{"breaks separate words", "one<br/>two<pb/>three", "one two three"},
		{"unbalanced hidden close ignored", "a</f> b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}

func TestCleaner(t *testing.T) {
	assert.Equal(t, "a<S>1</S> b", Cleaner(false)("a<S>1</S><br/>b"))
	assert.Equal(t, "a b", Cleaner(true)("a<S>1</S><br/>b"))
}
