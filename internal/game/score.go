package game

// Default point awards per correct solve. Both are configuration, not
// policy: deployments override them through settings or environment.
const (
	DefaultFullAward = 2
	DefaultHintAward = 1
)

// ScoreTracker keeps a running point total for a play session. A correct
// solve earns the full award, or the reduced award when a hint was used
// for that round. The total never decreases during a session.
type ScoreTracker struct {
	full    int
	reduced int
	total   int
}

// NewScoreTracker creates a tracker with the given awards. Invalid
// configurations (non-positive values, or a reduced award that is not
// smaller than the full one) fall back to the defaults.
func NewScoreTracker(full, reduced int) *ScoreTracker {
	if full <= 0 || reduced <= 0 || reduced >= full {
		full = DefaultFullAward
		reduced = DefaultHintAward
	}
	return &ScoreTracker{full: full, reduced: reduced}
}

// Award adds points for a correct solve and returns the amount granted.
func (t *ScoreTracker) Award(hintUsed bool) int {
	points := t.full
	if hintUsed {
		points = t.reduced
	}
	t.total += points
	return points
}

// Current returns the running total.
func (t *ScoreTracker) Current() int {
	return t.total
}

// Reset zeroes the total for a fresh session.
func (t *ScoreTracker) Reset() {
	t.total = 0
}

// Restore sets the total from persisted session state. Negative values
// clamp to zero.
func (t *ScoreTracker) Restore(total int) {
	if total < 0 {
		total = 0
	}
	t.total = total
}

// FullAward returns the configured no-hint award.
func (t *ScoreTracker) FullAward() int { return t.full }

// HintAward returns the configured reduced award.
func (t *ScoreTracker) HintAward() int { return t.reduced }
