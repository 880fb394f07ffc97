package game

import (
	"errors"
	"math/rand"
	"testing"
)

func testBank(t *testing.T, words ...string) *Bank {
	t.Helper()
	b := NewBank(rand.New(rand.NewSource(7)))
	if err := b.Configure(words, nil); err != nil {
		t.Fatalf("Configure(%v) failed: %v", words, err)
	}
	return b
}

func TestBankConfigureValidation(t *testing.T) {
	tests := []struct {
		name    string
		words   []string
		wantErr error
		wantLen int
	}{
		{
			name:    "valid words",
			words:   []string{"cat", "dog", "ice cream"},
			wantLen: 3,
		},
		{
			name:    "empty word rejected",
			words:   []string{"cat", "  "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "case-insensitive duplicates collapsed",
			words:   []string{"Cat", "cat", "dog"},
			wantLen: 2,
		},
		{
			name:    "zero words allowed at configure time",
			words:   nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBank(rand.New(rand.NewSource(1)))
			err := b.Configure(tt.words, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Configure() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && b.Size() != tt.wantLen {
				t.Errorf("Size() = %d, want %d", b.Size(), tt.wantLen)
			}
		})
	}
}

func TestBankConfigureRejectionLeavesStateUnchanged(t *testing.T) {
	b := testBank(t, "cat", "dog")
	if err := b.Configure([]string{"fish", ""}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Configure() error = %v, want ErrInvalidInput", err)
	}
	if b.Size() != 2 {
		t.Errorf("Size() = %d after rejected configure, want 2", b.Size())
	}
}

func TestBankDrawNextEmpty(t *testing.T) {
	b := NewBank(rand.New(rand.NewSource(1)))
	if _, err := b.DrawNext(); !errors.Is(err, ErrEmptyBank) {
		t.Errorf("DrawNext() error = %v, want ErrEmptyBank", err)
	}
}

func TestBankNoRepeatUntilExhausted(t *testing.T) {
	words := []string{"cat", "dog", "fish", "bird", "horse"}
	b := testBank(t, words...)

	// Run three full cycles: within each, all N draws are distinct.
	for cycle := 0; cycle < 3; cycle++ {
		seen := make(map[string]bool)
		for i := 0; i < len(words); i++ {
			w, err := b.DrawNext()
			if err != nil {
				t.Fatalf("cycle %d draw %d: %v", cycle, i, err)
			}
			if seen[w] {
				t.Fatalf("cycle %d: word %q drawn twice before exhaustion", cycle, w)
			}
			seen[w] = true
		}
		if len(seen) != len(words) {
			t.Fatalf("cycle %d: drew %d distinct words, want %d", cycle, len(seen), len(words))
		}
	}
}

func TestBankImageFor(t *testing.T) {
	b := NewBank(rand.New(rand.NewSource(1)))
	images := map[string]string{
		"cat": "images/cat.png",
		"dog": "", // empty refs are dropped
	}
	if err := b.Configure([]string{"cat", "dog"}, images); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	if ref, ok := b.ImageFor("CAT"); !ok || ref != "images/cat.png" {
		t.Errorf("ImageFor(CAT) = %q, %v; want images/cat.png, true", ref, ok)
	}
	if _, ok := b.ImageFor("dog"); ok {
		t.Error("ImageFor(dog) = true for empty ref, want absent")
	}
	if _, ok := b.ImageFor("fish"); ok {
		t.Error("ImageFor(fish) = true for unconfigured word, want absent")
	}
}

func TestBankAddWord(t *testing.T) {
	b := testBank(t, "cat")

	tests := []struct {
		name    string
		word    string
		wantErr error
	}{
		{"new word", "dog", nil},
		{"duplicate", "cat", ErrDuplicateWord},
		{"case-insensitive duplicate", "CAT", ErrDuplicateWord},
		{"empty word", "   ", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.AddWord(tt.word, ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddWord(%q) error = %v, want %v", tt.word, err, tt.wantErr)
			}
		})
	}
}

func TestBankRemoveWordIdempotent(t *testing.T) {
	b := NewBank(rand.New(rand.NewSource(1)))
	if err := b.Configure([]string{"cat", "dog"}, map[string]string{"cat": "images/cat.png"}); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	b.RemoveWord("cat")
	b.RemoveWord("cat") // second removal is a no-op

	if b.Size() != 1 {
		t.Errorf("Size() = %d after removal, want 1", b.Size())
	}
	if _, ok := b.ImageFor("cat"); ok {
		t.Error("ImageFor(cat) still present after removal")
	}
}

func TestBankRestoreDrawn(t *testing.T) {
	b := testBank(t, "cat", "dog", "fish")
	b.RestoreDrawn([]string{"dog", "heron"}) // unknown words ignored

	if got := b.Remaining(); got != 2 {
		t.Fatalf("Remaining() = %d after restore, want 2", got)
	}
	seen := make(map[string]bool)
	for i := 0; i < 2; i++ {
		w, err := b.DrawNext()
		if err != nil {
			t.Fatalf("DrawNext() failed: %v", err)
		}
		if w == "dog" {
			t.Fatal("DrawNext() returned an already-drawn word within the cycle")
		}
		seen[w] = true
	}
	if !seen["cat"] || !seen["fish"] {
		t.Errorf("remaining draws = %v, want cat and fish", seen)
	}
}
