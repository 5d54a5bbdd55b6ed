package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My First Post", "my-first-post"},
		{"Hello, World!!  Foo--Bar", "hello-world-foo-bar"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"---", ""},
		{"", ""},
		{"Already-a-slug", "already-a-slug"},
		{"Números & Ümlauts", "nmeros-mlauts"},
		{"123 Go", "123-go"},
		{"!!!punctuation only???", "punctuation-only"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"My First Post", "Hello, World!!  Foo--Bar", "a - b - c"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "re-slugging %q changed the result", in)
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("my-first-post"))
	assert.True(t, ValidSlug("a"))
	assert.True(t, ValidSlug("123-go"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("My-Post"))
	assert.False(t, ValidSlug("has space"))
	assert.False(t, ValidSlug("ünicode"))
}
