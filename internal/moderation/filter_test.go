package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFindsBannedWord(t *testing.T) {
	f := NewFilter([]string{"heck", "darn"})

	word, hit := f.Check("what the HECK is this")
	assert.True(t, hit)
	assert.Equal(t, "heck", word)
}

func TestCheckIsCaseInsensitiveBothWays(t *testing.T) {
	f := NewFilter([]string{"DaRn"})

	_, hit := f.Check("well dArN it")
	assert.True(t, hit)
}

func TestCheckStopsAtFirstMatch(t *testing.T) {
	f := NewFilter([]string{"darn", "heck"})

	word, hit := f.Check("heck and darn")
	assert.True(t, hit)
	// list order decides which word reports, not text order
	assert.Equal(t, "darn", word)
}

func TestCheckCleanText(t *testing.T) {
	f := NewFilter([]string{"heck", "darn"})

	_, hit := f.Check("good dog, very polite")
	assert.False(t, hit)
}

func TestCheckScansEveryEntry(t *testing.T) {
	// the last entry must be reachable
	f := NewFilter([]string{"alpha", "beta", "gamma"})

	word, hit := f.Check("some gamma rays")
	assert.True(t, hit)
	assert.Equal(t, "gamma", word)
}

func TestCheckEmptyList(t *testing.T) {
	f := NewFilter(nil)

	_, hit := f.Check("anything goes")
	assert.False(t, hit)
}

func TestNewFilterNormalizes(t *testing.T) {
	f := NewFilter([]string{"  Heck  ", "", "   "})

	word, hit := f.Check("heckle")
	assert.True(t, hit) // substring match, not word-boundary
	assert.Equal(t, "heck", word)
}
