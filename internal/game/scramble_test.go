package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func sortedLetters(s string) string {
	letters := strings.Split(s, "")
	sort.Strings(letters)
	return strings.Join(letters, "")
}

func TestScrambleDiffersFromInput(t *testing.T) {
	s := NewScrambler(rand.New(rand.NewSource(1)))

	words := []string{"ab", "cat", "apple", "ice cream", "elephant"}
	for _, word := range words {
		for i := 0; i < 1000; i++ {
			if got := s.Scramble(word); got == word {
				t.Fatalf("Scramble(%q) returned the input on trial %d", word, i)
			}
		}
	}
}

func TestScramblePreservesLetters(t *testing.T) {
	s := NewScrambler(rand.New(rand.NewSource(2)))

	tests := []struct {
		name string
		word string
	}{
		{"short word", "cat"},
		{"repeated letters", "banana"},
		{"word with space", "ice cream"},
		{"single letter", "a"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Scramble(tt.word)
			if sortedLetters(got) != sortedLetters(tt.word) {
				t.Errorf("Scramble(%q) = %q, letters differ", tt.word, got)
			}
		})
	}
}

func TestScrambleShortInputsUnchanged(t *testing.T) {
	s := NewScrambler(rand.New(rand.NewSource(3)))

	for _, word := range []string{"", "a", "z"} {
		if got := s.Scramble(word); got != word {
			t.Errorf("Scramble(%q) = %q, want input unchanged", word, got)
		}
	}
}

func TestScrambleSinglePermutationWordTerminates(t *testing.T) {
	s := NewScrambler(rand.New(rand.NewSource(4)))

	// "aa" has exactly one permutation; the bounded retry loop must give
	// up and return it rather than spinning.
	if got := s.Scramble("aa"); got != "aa" {
		t.Errorf("Scramble(%q) = %q, want %q", "aa", got, "aa")
	}
}
