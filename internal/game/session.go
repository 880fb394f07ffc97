package game

import "math/rand"

// Phase is the per-round state of a session.
type Phase int

const (
	// PhaseIdle: no word loaded yet (or the session was reset).
	PhaseIdle Phase = iota
	// PhaseWordLoaded: a word is dealt and no tiles are placed. Hints
	// may only be requested here.
	PhaseWordLoaded
	// PhasePartiallyFilled: at least one tile placed, not all.
	PhasePartiallyFilled
	// PhaseComplete: every slot holds a tile; the answer can be checked.
	PhaseComplete
	// PhaseCelebration: the answer was correct; the next round starts
	// when the presentation layer asks for it.
	PhaseCelebration
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWordLoaded:
		return "word_loaded"
	case PhasePartiallyFilled:
		return "partially_filled"
	case PhaseComplete:
		return "complete"
	case PhaseCelebration:
		return "celebration"
	}
	return "unknown"
}

// Session owns the complete mutable game state for one player: the bank,
// the current puzzle, the score, and the per-round hint flag. All
// mutation funnels through its methods on a single logical thread of
// control; there are no package-level globals.
type Session struct {
	bank      *Bank
	scrambler *Scrambler
	puzzle    *Puzzle
	score     *ScoreTracker
	events    *Dispatcher

	phase    Phase
	hintUsed bool
}

// NewSession wires a session around a configured bank. The rng feeds the
// scrambler; the score tracker uses the given awards (see NewScoreTracker
// for the fallback rules).
func NewSession(bank *Bank, rng *rand.Rand, fullAward, hintAward int) *Session {
	return &Session{
		bank:      bank,
		scrambler: NewScrambler(rng),
		puzzle:    NewPuzzle(),
		score:     NewScoreTracker(fullAward, hintAward),
		events:    NewDispatcher(),
		phase:     PhaseIdle,
	}
}

// Events exposes the dispatch table for consumers to subscribe on.
func (s *Session) Events() *Dispatcher { return s.events }

// NextRound draws the next word, scrambles it, and resets the puzzle and
// hint flag. Valid from any phase; the previous round is abandoned.
func (s *Session) NextRound() error {
	refilled := s.bank.Size() > 0 && len(s.bank.pool) == 0 && s.phase != PhaseIdle
	word, err := s.bank.DrawNext()
	if err != nil {
		return err
	}
	if refilled {
		s.events.publish(BankRefilled{Size: s.bank.Size()})
	}
	scrambled := s.scrambler.Scramble(word)
	s.puzzle.Start(word, scrambled)
	s.hintUsed = false
	s.phase = PhaseWordLoaded
	s.events.publish(RoundStarted{Word: word, Scrambled: scrambled})
	return nil
}

// Place moves a tile into a slot. No-op on an occupied slot, mirroring
// the drop-only-on-empty rule. Returns whether the placement happened.
func (s *Session) Place(tileID, slot int) bool {
	if s.phase == PhaseIdle || s.phase == PhaseCelebration {
		return false
	}
	letter := rune(0)
	if tileID >= 0 && tileID < len(s.puzzle.tiles) {
		letter = s.puzzle.tiles[tileID].Letter
	}
	if !s.puzzle.PlaceTile(tileID, slot) {
		return false
	}
	s.syncPhase()
	s.events.publish(TilePlaced{TileID: tileID, Slot: slot, Letter: letter})
	return true
}

// Remove clears a slot, returning the tile to the pool.
func (s *Session) Remove(slot int) (int, bool) {
	if s.phase == PhaseIdle || s.phase == PhaseCelebration {
		return 0, false
	}
	tileID, ok := s.puzzle.RemoveTile(slot)
	if !ok {
		return 0, false
	}
	s.syncPhase()
	s.events.publish(TileRemoved{TileID: tileID, Slot: slot})
	return tileID, true
}

// RequestHint reveals the first letter into slot 0 and marks the round as
// hinted. Only valid while the word is loaded and nothing is placed;
// otherwise a no-op.
func (s *Session) RequestHint() (Hint, bool) {
	if s.phase != PhaseWordLoaded {
		return Hint{}, false
	}
	hint, ok := RevealHint(s.puzzle)
	if !ok {
		return Hint{}, false
	}
	s.hintUsed = true
	s.syncPhase()
	s.events.publish(HintRevealed{Hint: hint})
	return hint, true
}

// CheckAnswer evaluates a complete puzzle against the target. A correct
// answer awards points and moves the round to celebration; an incorrect
// one leaves the tiles in place for the player to rearrange. Checking an
// incomplete puzzle reports false without emitting anything.
func (s *Session) CheckAnswer() bool {
	if s.phase != PhaseComplete {
		return false
	}
	if s.puzzle.CheckAnswer() {
		points := s.score.Award(s.hintUsed)
		s.phase = PhaseCelebration
		s.events.publish(SolveCorrect{
			Word:     s.puzzle.Target(),
			Points:   points,
			Total:    s.score.Current(),
			HintUsed: s.hintUsed,
		})
		return true
	}
	s.phase = PhasePartiallyFilled
	s.events.publish(SolveIncorrect{
		Word:   s.puzzle.Target(),
		Answer: s.puzzle.CurrentAnswer(),
	})
	return false
}

// Reset returns the session to idle with a zero score. The bank keeps its
// configured words and its current draw cycle.
func (s *Session) Reset() {
	s.score.Reset()
	s.puzzle = NewPuzzle()
	s.hintUsed = false
	s.phase = PhaseIdle
}

// syncPhase derives the filling phases from puzzle occupancy.
func (s *Session) syncPhase() {
	switch {
	case s.puzzle.IsComplete():
		s.phase = PhaseComplete
	case s.puzzle.PlacedCount() > 0:
		s.phase = PhasePartiallyFilled
	default:
		s.phase = PhaseWordLoaded
	}
}

// Phase returns the current round phase.
func (s *Session) Phase() Phase { return s.phase }

// Puzzle returns the live puzzle for read access.
func (s *Session) Puzzle() *Puzzle { return s.puzzle }

// Bank returns the session's word bank.
func (s *Session) Bank() *Bank { return s.bank }

// Score returns the session's score tracker.
func (s *Session) Score() *ScoreTracker { return s.score }

// HintUsed reports whether the current round burned its hint.
func (s *Session) HintUsed() bool { return s.hintUsed }

// Restore rebuilds an in-flight round from persisted state: the target
// word, its scrambled form, slot assignments, the hint flag, drawn words
// of the current bank cycle, and the accumulated score.
func (s *Session) Restore(target, scrambled string, slots []int, hintUsed bool, drawn []string, total int) error {
	if err := s.puzzle.Restore(target, scrambled, slots); err != nil {
		return err
	}
	s.bank.RestoreDrawn(drawn)
	s.hintUsed = hintUsed
	s.score.Restore(total)
	s.syncPhase()
	return nil
}
