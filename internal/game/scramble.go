package game

import (
	"math/rand"
	"time"
)

// maxScrambleAttempts bounds the retry loop for permutations that come
// back identical to the input. Two-letter words need a retry roughly half
// the time; after the cap the possibly-identical result is accepted
// rather than looping forever.
const maxScrambleAttempts = 100

// Scrambler produces a random permutation of a word's letters,
// distinct from the original for any word longer than one letter.
type Scrambler struct {
	rng *rand.Rand
}

// NewScrambler creates a scrambler. A nil rng uses a time-seeded source;
// tests inject a seeded one.
func NewScrambler(rng *rand.Rand) *Scrambler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scrambler{rng: rng}
}

// Scramble returns a Fisher-Yates shuffle of word's characters. Words of
// length <= 1 are returned unchanged. For longer words the shuffle is
// retried (bounded, iterative) until the result differs from the input.
func (s *Scrambler) Scramble(word string) string {
	letters := []rune(word)
	if len(letters) <= 1 {
		return word
	}

	shuffled := make([]rune, len(letters))
	for attempt := 0; attempt < maxScrambleAttempts; attempt++ {
		copy(shuffled, letters)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := s.rng.Intn(i + 1)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
		if string(shuffled) != word {
			break
		}
	}
	return string(shuffled)
}
