package game

import (
	"math/rand"
	"testing"
)

func testSession(t *testing.T, words ...string) *Session {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	bank := NewBank(rng)
	if err := bank.Configure(words, nil); err != nil {
		t.Fatalf("Configure(%v) failed: %v", words, err)
	}
	return NewSession(bank, rng, DefaultFullAward, DefaultHintAward)
}

// solvePuzzle places the session's pool tiles so the slots read the
// target word.
func solvePuzzle(t *testing.T, s *Session) {
	t.Helper()
	target := []rune(s.Puzzle().Target())
	for slot, want := range target {
		if s.Puzzle().Slots()[slot] != EmptySlot {
			continue // hint already filled it
		}
		placed := false
		for _, tile := range s.Puzzle().PoolTiles() {
			if tile.Letter == want {
				if !s.Place(tile.ID, slot) {
					t.Fatalf("Place(%d, %d) rejected", tile.ID, slot)
				}
				placed = true
				break
			}
		}
		if !placed {
			t.Fatalf("no pool tile for %q at slot %d", want, slot)
		}
	}
}

func TestSessionPhases(t *testing.T) {
	s := testSession(t, "cat")

	if s.Phase() != PhaseIdle {
		t.Fatalf("Phase() = %v, want idle", s.Phase())
	}
	if s.Place(0, 0) {
		t.Error("Place() must be rejected before a word is loaded")
	}

	if err := s.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}
	if s.Phase() != PhaseWordLoaded {
		t.Fatalf("Phase() = %v after NextRound, want word_loaded", s.Phase())
	}

	solvePuzzle(t, s)
	if s.Phase() != PhaseComplete {
		t.Fatalf("Phase() = %v after filling all slots, want complete", s.Phase())
	}

	if !s.CheckAnswer() {
		t.Fatal("CheckAnswer() = false for a correct assembly")
	}
	if s.Phase() != PhaseCelebration {
		t.Errorf("Phase() = %v after correct solve, want celebration", s.Phase())
	}
	if s.Place(0, 0) {
		t.Error("Place() must be rejected during celebration")
	}
}

func TestSessionIncorrectAnswerKeepsRound(t *testing.T) {
	s := testSession(t, "apple")
	if err := s.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}

	// Fill slots with the scrambled order, which differs from the target.
	for slot := range s.Puzzle().Slots() {
		s.Place(slot, slot)
	}
	if s.Phase() != PhaseComplete {
		t.Fatalf("Phase() = %v, want complete", s.Phase())
	}
	if s.CheckAnswer() {
		t.Fatal("CheckAnswer() = true for the scrambled order")
	}
	if s.Phase() != PhasePartiallyFilled {
		t.Errorf("Phase() = %v after wrong answer, want partially_filled", s.Phase())
	}
	if s.Score().Current() != 0 {
		t.Errorf("score = %d after wrong answer, want 0", s.Score().Current())
	}
	if got := s.Puzzle().PlacedCount(); got != len(s.Puzzle().Slots()) {
		t.Errorf("PlacedCount() = %d after wrong answer, want all tiles kept", got)
	}

	// Rearranging returns the round to complete and the check re-runs.
	if _, ok := s.Remove(0); !ok {
		t.Fatal("Remove(0) failed")
	}
	if s.Phase() != PhasePartiallyFilled {
		t.Errorf("Phase() = %v after removal, want partially_filled", s.Phase())
	}
	for slot := range s.Puzzle().Slots() {
		s.Remove(slot)
	}
	solvePuzzle(t, s)
	if !s.CheckAnswer() {
		t.Error("CheckAnswer() = false after rearranging to the target")
	}
}

func TestSessionHintReducedCredit(t *testing.T) {
	s := testSession(t, "dog")
	if err := s.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}

	if _, ok := s.RequestHint(); !ok {
		t.Fatal("RequestHint() failed on a fresh round")
	}
	if !s.HintUsed() {
		t.Error("HintUsed() = false after a granted hint")
	}
	if _, ok := s.RequestHint(); ok {
		t.Error("second RequestHint() must be a no-op")
	}

	solvePuzzle(t, s)
	if !s.CheckAnswer() {
		t.Fatal("CheckAnswer() failed")
	}
	if got := s.Score().Current(); got != DefaultHintAward {
		t.Errorf("score = %d with hint, want reduced award %d", got, DefaultHintAward)
	}
}

func TestSessionHintResetsEachRound(t *testing.T) {
	s := testSession(t, "cat", "dog")
	if err := s.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}
	s.RequestHint()
	solvePuzzle(t, s)
	s.CheckAnswer()

	if err := s.NextRound(); err != nil {
		t.Fatalf("second NextRound() failed: %v", err)
	}
	if s.HintUsed() {
		t.Error("HintUsed() = true on a fresh round")
	}
}

func TestSessionEvents(t *testing.T) {
	s := testSession(t, "cat")

	var placed, solved int
	var lastStart RoundStarted
	s.Events().Subscribe(EventRoundStarted, func(e Event) {
		lastStart = e.(RoundStarted)
	})
	s.Events().Subscribe(EventTilePlaced, func(e Event) { placed++ })
	s.Events().Subscribe(EventSolveCorrect, func(e Event) {
		solved++
		sc := e.(SolveCorrect)
		if sc.Points != DefaultFullAward {
			t.Errorf("SolveCorrect.Points = %d, want %d", sc.Points, DefaultFullAward)
		}
	})

	if err := s.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}
	if lastStart.Word != "cat" {
		t.Errorf("RoundStarted.Word = %q, want cat", lastStart.Word)
	}
	if lastStart.Scrambled == "cat" {
		t.Error("RoundStarted.Scrambled equals the word")
	}

	solvePuzzle(t, s)
	s.CheckAnswer()

	if placed != 3 {
		t.Errorf("TilePlaced events = %d, want 3", placed)
	}
	if solved != 1 {
		t.Errorf("SolveCorrect events = %d, want 1", solved)
	}
}

// End-to-end: a two-word bank plays one word correctly, scores full
// credit, and the next draw is forced to the remaining word.
func TestSessionEndToEnd(t *testing.T) {
	s := testSession(t, "cat", "dog")

	if err := s.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}
	first := s.Puzzle().Target()

	solvePuzzle(t, s)
	if !s.CheckAnswer() {
		t.Fatal("CheckAnswer() = false for the assembled target")
	}
	if s.Score().Current() != DefaultFullAward {
		t.Errorf("score = %d, want %d", s.Score().Current(), DefaultFullAward)
	}

	if err := s.NextRound(); err != nil {
		t.Fatalf("second NextRound() failed: %v", err)
	}
	second := s.Puzzle().Target()
	if second == first {
		t.Errorf("second draw = %q, must differ from first %q before exhaustion", second, first)
	}

	// Third round wraps around: the refill makes both words eligible again.
	refilled := false
	s.Events().Subscribe(EventBankRefilled, func(Event) { refilled = true })
	if err := s.NextRound(); err != nil {
		t.Fatalf("third NextRound() failed: %v", err)
	}
	if !refilled {
		t.Error("no BankRefilled event after exhausting the bank")
	}
}

func TestSessionRestore(t *testing.T) {
	s := testSession(t, "cat", "dog")

	err := s.Restore("cat", "tac", []int{2, EmptySlot, EmptySlot}, true, []string{"cat"}, 4)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if s.Phase() != PhasePartiallyFilled {
		t.Errorf("Phase() = %v after restore, want partially_filled", s.Phase())
	}
	if !s.HintUsed() {
		t.Error("HintUsed() = false after restore")
	}
	if s.Score().Current() != 4 {
		t.Errorf("score = %d after restore, want 4", s.Score().Current())
	}
	// Only "dog" is left in this cycle.
	w, err := s.Bank().DrawNext()
	if err != nil || w != "dog" {
		t.Errorf("DrawNext() = %q, %v; want dog", w, err)
	}
}
