package game

import (
	"fmt"
	"os"
	"strings"
)

// HiddenRune marks an undisclosed letter in a masked word.
const HiddenRune = '_'

// WordList is the immutable candidate-word pool loaded once at startup.
type WordList struct {
	words []string
}

// LoadWordList reads a line-delimited word file, trimming whitespace and
// dropping blank lines.
func LoadWordList(path string) (*WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading word list %s: %v", path, err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return &WordList{words: words}, nil
}

// NewWordList builds a pool from an in-memory slice.
func NewWordList(words []string) (*WordList, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return &WordList{words: append([]string(nil), words...)}, nil
}

// Sample draws n words uniformly at random. Draws are independent, so the
// same word can appear twice among the options.
func (wl *WordList) Sample(rng *Rng, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = wl.words[rng.Intn(len(wl.words))]
	}
	return out
}

// MaskWord hides every letter of the word.
func MaskWord(word string) string {
	masked := []rune(word)
	for i := range masked {
		masked[i] = HiddenRune
	}
	return string(masked)
}

// RevealTarget returns how many letters of a wordLen-letter word should be
// disclosed once elapsed = turnDuration - secondsRemaining seconds have
// passed. Reveals are spaced evenly across the turn and at least one letter
// always stays hidden, so disclosure is progressive and monotonic no matter
// how ticks and guesses interleave.
func RevealTarget(wordLen, secondsRemaining, turnDuration int) int {
	if wordLen <= 1 || turnDuration <= 0 {
		return 0
	}
	elapsed := turnDuration - secondsRemaining
	if elapsed <= 0 {
		return 0
	}
	target := wordLen * elapsed / turnDuration
	if target > wordLen-1 {
		target = wordLen - 1
	}
	return target
}

// RevealLetter discloses one hidden position of the mask, chosen uniformly
// at random, overwriting it with the true character. All other positions are
// untouched; a fully revealed mask is returned as-is.
func RevealLetter(word, mask string, rng *Rng) string {
	wordRunes := []rune(word)
	maskRunes := []rune(mask)
	if len(wordRunes) != len(maskRunes) {
		return mask
	}
	var hidden []int
	for i, r := range maskRunes {
		if r == HiddenRune {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		return mask
	}
	pos := hidden[rng.Intn(len(hidden))]
	maskRunes[pos] = wordRunes[pos]
	return string(maskRunes)
}

// RevealedCount counts disclosed positions in a mask.
func RevealedCount(mask string) int {
	count := 0
	for _, r := range mask {
		if r != HiddenRune {
			count++
		}
	}
	return count
}
