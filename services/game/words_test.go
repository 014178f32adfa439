package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWordListTrimsAndDropsBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("chicken\n\n  banana  \nrocket\n\n"), 0o644))

	wl, err := LoadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken", "banana", "rocket"}, wl.words)
}

func TestLoadWordListEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := LoadWordList(path)
	assert.Error(t, err)
}

func TestLoadWordListMissingFile(t *testing.T) {
	_, err := LoadWordList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSampleDrawsFromPool(t *testing.T) {
	wl, err := NewWordList([]string{"a", "b", "c"})
	require.NoError(t, err)

	rng := NewRng(1)
	options := wl.Sample(rng, 3)
	assert.Len(t, options, 3)
	for _, w := range options {
		assert.Contains(t, []string{"a", "b", "c"}, w)
	}
}

func TestSampleIsDeterministicForSeed(t *testing.T) {
	wl, _ := NewWordList([]string{"a", "b", "c", "d", "e"})
	first := wl.Sample(NewRng(42), 3)
	second := wl.Sample(NewRng(42), 3)
	assert.Equal(t, first, second)
}

func TestMaskWord(t *testing.T) {
	assert.Equal(t, "_______", MaskWord("chicken"))
	assert.Equal(t, "", MaskWord(""))
	// rune aware
	assert.Equal(t, "____", MaskWord("café"))
}

func TestRevealTargetEvenSpacing(t *testing.T) {
	// 8-letter word over an 80 second turn: one letter every 10 seconds,
	// capped so the last letter is never disclosed
	assert.Equal(t, 0, RevealTarget(8, 80, 80))
	assert.Equal(t, 0, RevealTarget(8, 75, 80))
	assert.Equal(t, 1, RevealTarget(8, 70, 80))
	assert.Equal(t, 4, RevealTarget(8, 40, 80))
	assert.Equal(t, 7, RevealTarget(8, 10, 80))
	assert.Equal(t, 7, RevealTarget(8, 0, 80))
	assert.Equal(t, 7, RevealTarget(8, -1, 80))
}

func TestRevealTargetMonotonic(t *testing.T) {
	prev := 0
	for sec := 80; sec >= -1; sec-- {
		target := RevealTarget(7, sec, 80)
		assert.GreaterOrEqual(t, target, prev)
		assert.LessOrEqual(t, target, 6)
		prev = target
	}
}

func TestRevealTargetShortWords(t *testing.T) {
	// single-letter words never reveal
	for sec := 80; sec >= 0; sec-- {
		assert.Equal(t, 0, RevealTarget(1, sec, 80))
	}
}

func TestRevealLetterDisclosesOneHiddenPosition(t *testing.T) {
	rng := NewRng(7)
	word := "chicken"
	mask := MaskWord(word)

	for expected := 1; expected <= len(word); expected++ {
		next := RevealLetter(word, mask, rng)
		require.Len(t, next, len(word))
		assert.Equal(t, expected, RevealedCount(next))

		for pos := range next {
			// already revealed positions never change, and disclosed
			// positions always carry the true character
			if mask[pos] != byte(HiddenRune) {
				assert.Equal(t, mask[pos], next[pos])
			}
			if next[pos] != byte(HiddenRune) {
				assert.Equal(t, word[pos], next[pos])
			}
		}
		mask = next
	}

	assert.Equal(t, word, mask)
	// fully revealed mask is returned unchanged
	assert.Equal(t, word, RevealLetter(word, word, rng))
}

func TestRevealLetterMismatchedMask(t *testing.T) {
	rng := NewRng(7)
	assert.Equal(t, "___", RevealLetter("chicken", "___", rng))
}
