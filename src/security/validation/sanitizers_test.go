package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "JohnDoe", StripUnprintable("John\x00\tDoe\n"))
	assert.Equal(t, "Zoë Ünal", StripUnprintable("Zoë Ünal"))
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"  John  ":        "John",
		"Mary   Ann":      "Mary Ann",
		"Jo\u0007hn":      "John",
		"John\tDoe":       "John Doe",
		"\t\n":            "",
		"Jean-Luc O'Neil": "Jean-Luc O'Neil",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanName(in), "input %q", in)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\|b \*c\* \_d\_`, EscapeMarkdown("a|b *c* _d_"))
	assert.Equal(t, "plain", EscapeMarkdown("plain"))
}
