package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/a/", true},
		{"/a/b/", true},
		{"/a/b/c/", true},
		{"", false},
		{"a/", false},
		{"/a", false},
		{"//", false},
		{"/a//b/", false},
		{"/A/", false},
		{"/a1/", false},
		{"/a/b", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Valid(c.path), "Valid(%q)", c.path)
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count("/"))
	assert.Equal(t, 1, Count("/a/"))
	assert.Equal(t, 3, Count("/a/b/c/"))
}

func TestSplit(t *testing.T) {
	comp, rest, ok := Split("/a/b/c/")
	assert.True(t, ok)
	assert.Equal(t, "a", comp)
	assert.Equal(t, "/b/c/", rest)

	comp, rest, ok = Split(rest)
	assert.True(t, ok)
	assert.Equal(t, "b", comp)
	assert.Equal(t, "/c/", rest)

	comp, rest, ok = Split(rest)
	assert.True(t, ok)
	assert.Equal(t, "c", comp)
	assert.Equal(t, "/", rest)

	_, _, ok = Split(rest)
	assert.False(t, ok)

	_, _, ok = Split(Root)
	assert.False(t, ok)
}

func TestComponents(t *testing.T) {
	assert.Nil(t, Components("/"))
	assert.Equal(t, []string{"a", "b", "c"}, Components("/a/b/c/"))
}

func TestIsStrictPrefix(t *testing.T) {
	assert.True(t, IsStrictPrefix("/a/", "/a/b/"))
	assert.True(t, IsStrictPrefix("/a/", "/a/b/c/"))
	assert.False(t, IsStrictPrefix("/a/", "/a/"))
	assert.False(t, IsStrictPrefix("/a/", "/ab/"))
	assert.False(t, IsStrictPrefix("/a/b/", "/a/"))
	assert.True(t, IsStrictPrefix(Root, "/a/"))
}
