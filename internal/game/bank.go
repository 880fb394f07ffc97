package game

import (
	"math/rand"
	"strings"
	"time"
)

// Bank owns the vocabulary list and picture associations and dispenses
// words without immediate repetition. Drawn words leave the available
// pool until every configured word has been drawn once, at which point
// the pool refills from the full list.
type Bank struct {
	words  []string          // full configured list, lowercase, in insertion order
	images map[string]string // word -> picture reference
	pool   []string          // words not yet drawn this cycle
	rng    *rand.Rand
}

// NewBank creates an empty bank. Pass a seeded rng for deterministic
// draws in tests; a nil rng uses a time-seeded source.
func NewBank(rng *rand.Rand) *Bank {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bank{
		images: make(map[string]string),
		rng:    rng,
	}
}

// Normalize lowercases and trims a word for bank storage and comparison.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Configure replaces the full word list and picture mapping. Every word
// must be non-empty after trimming, otherwise ErrInvalidInput is returned
// and the bank is left unchanged. Case-insensitive duplicates in the input
// are collapsed, keeping the first occurrence. Empty picture references
// are treated as absent.
func (b *Bank) Configure(words []string, images map[string]string) error {
	cleaned := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		norm := Normalize(w)
		if norm == "" {
			return ErrInvalidInput
		}
		if seen[norm] {
			continue
		}
		seen[norm] = true
		cleaned = append(cleaned, norm)
	}

	imgs := make(map[string]string, len(images))
	for w, ref := range images {
		norm := Normalize(w)
		if ref == "" || !seen[norm] {
			continue
		}
		imgs[norm] = ref
	}

	b.words = cleaned
	b.images = imgs
	b.pool = nil
	return nil
}

// DrawNext selects a uniformly random word from the available pool,
// removes it, and returns it. An exhausted pool is refilled from the
// full configured list first. Returns ErrEmptyBank when the bank was
// configured with zero words.
func (b *Bank) DrawNext() (string, error) {
	if len(b.words) == 0 {
		return "", ErrEmptyBank
	}
	if len(b.pool) == 0 {
		b.refill()
	}
	i := b.rng.Intn(len(b.pool))
	word := b.pool[i]
	b.pool = append(b.pool[:i], b.pool[i+1:]...)
	return word, nil
}

func (b *Bank) refill() {
	b.pool = make([]string, len(b.words))
	copy(b.pool, b.words)
}

// ImageFor returns the picture reference configured for a word, or false
// when none exists. Callers fall back to a keyword lookup or a textual
// placeholder.
func (b *Bank) ImageFor(word string) (string, bool) {
	ref, ok := b.images[Normalize(word)]
	return ref, ok
}

// AddWord appends a single word, optionally with a picture reference.
// Returns ErrDuplicateWord if the word already exists (case-insensitive)
// and ErrInvalidInput if the word is empty after trimming.
func (b *Bank) AddWord(word, image string) error {
	norm := Normalize(word)
	if norm == "" {
		return ErrInvalidInput
	}
	for _, w := range b.words {
		if w == norm {
			return ErrDuplicateWord
		}
	}
	b.words = append(b.words, norm)
	if image != "" {
		b.images[norm] = image
	}
	// New words join the current cycle immediately.
	if b.pool != nil {
		b.pool = append(b.pool, norm)
	}
	return nil
}

// RemoveWord removes a word and its picture association. Removing an
// absent word is a no-op.
func (b *Bank) RemoveWord(word string) {
	norm := Normalize(word)
	for i, w := range b.words {
		if w == norm {
			b.words = append(b.words[:i], b.words[i+1:]...)
			break
		}
	}
	for i, w := range b.pool {
		if w == norm {
			b.pool = append(b.pool[:i], b.pool[i+1:]...)
			break
		}
	}
	delete(b.images, norm)
}

// Words returns a copy of the full configured list.
func (b *Bank) Words() []string {
	out := make([]string, len(b.words))
	copy(out, b.words)
	return out
}

// Remaining reports how many words are left in the current draw cycle.
// A fresh or just-exhausted bank reports the full list size, since the
// next draw refills the pool.
func (b *Bank) Remaining() int {
	if len(b.pool) == 0 {
		return len(b.words)
	}
	return len(b.pool)
}

// Size returns the number of configured words.
func (b *Bank) Size() int {
	return len(b.words)
}

// RestoreDrawn rebuilds the available pool after rehydrating a saved play
// session: words drawn earlier in the current cycle are excluded. Drawn
// words not in the configured list are ignored.
func (b *Bank) RestoreDrawn(drawn []string) {
	used := make(map[string]bool, len(drawn))
	for _, w := range drawn {
		used[Normalize(w)] = true
	}
	b.pool = b.pool[:0]
	for _, w := range b.words {
		if !used[w] {
			b.pool = append(b.pool, w)
		}
	}
}
