package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultMatchOptions() matchOptions {
	return matchOptions{distance: 100, threshold: 0.4, minMatchCharLength: 2}
}

func TestMatcher_Identical(t *testing.T) {
	m := newMatcher([]rune("react basics"), 32, defaultMatchOptions())
	ok, score := m.match([]rune("react basics"))
	assert.True(t, ok)
	assert.Zero(t, score)
}

func TestMatcher_Substring(t *testing.T) {
	m := newMatcher([]rune("basics"), 32, defaultMatchOptions())

	ok, score := m.match([]rune("react basics"))
	assert.True(t, ok)
	assert.InDelta(t, 0.06, score, 1e-9, "exact occurrence six runes from the start")
}

func TestMatcher_OneTypo(t *testing.T) {
	m := newMatcher([]rune("reakt basics"), 32, defaultMatchOptions())

	ok, score := m.match([]rune("react basics"))
	assert.True(t, ok)
	assert.InDelta(t, 1.0/12, score, 1e-9)
}

func TestMatcher_TooFarAway(t *testing.T) {
	m := newMatcher([]rune("needle"), 32, defaultMatchOptions())
	text := []rune("this sentence is long enough that the final needle sits past the limit")

	ok, _ := m.match(text)
	assert.False(t, ok)

	opts := defaultMatchOptions()
	opts.ignoreLocation = true
	ok, score := newMatcher([]rune("needle"), 32, opts).match(text)
	assert.True(t, ok)
	assert.InDelta(t, 0.001, score, 1e-9)
}

func TestMatcher_ZeroDistance(t *testing.T) {
	opts := defaultMatchOptions()
	opts.distance = 0

	ok, _ := newMatcher([]rune("basics"), 32, opts).match([]rune("react basics"))
	assert.False(t, ok)

	ok, score := newMatcher([]rune("react"), 32, opts).match([]rune("react basics"))
	assert.True(t, ok)
	assert.InDelta(t, 0.001, score, 1e-9)
}

func TestMatcher_Unrelated(t *testing.T) {
	m := newMatcher([]rune("kubernetes"), 32, defaultMatchOptions())
	ok, score := m.match([]rune("css grid"))
	assert.False(t, ok)
	assert.Equal(t, 1.0, score)
}

func TestMatcher_Unicode(t *testing.T) {
	m := newMatcher([]rune("café"), 32, defaultMatchOptions())
	ok, _ := m.match([]rune("le café noir"))
	assert.True(t, ok)
}

func TestNewMatcher_Chunks(t *testing.T) {
	pattern := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	m := newMatcher(pattern, 32, defaultMatchOptions())

	if assert.Len(t, m.chunks, 2) {
		assert.Equal(t, 0, m.chunks[0].offset)
		assert.Len(t, m.chunks[0].pattern, 32)
		assert.Equal(t, 4, m.chunks[1].offset)
		assert.Equal(t, "efghijklmnopqrstuvwxyz0123456789", string(m.chunks[1].pattern))
	}
}

func TestHasRun(t *testing.T) {
	assert.True(t, hasRun([]bool{false, true, true, false}, 2))
	assert.False(t, hasRun([]bool{true, false, true, false}, 2))
	assert.False(t, hasRun(nil, 1))
}
