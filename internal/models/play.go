package models

import "time"

// PlaySession is one player's run of rounds, identified by the token
// carried in their session cookie.
type PlaySession struct {
	ID          int64
	Token       string
	StartedAt   time.Time
	CompletedAt *time.Time
	TotalRounds int
	RoundsWon   int
	TotalPoints int
}

// IsFinished reports whether the session has been exited.
func (s *PlaySession) IsFinished() bool {
	return s.CompletedAt != nil
}

// WinRate is the fraction of dealt rounds that were solved, 0 for a
// session with no rounds.
func (s *PlaySession) WinRate() float64 {
	if s.TotalRounds == 0 {
		return 0
	}
	return float64(s.RoundsWon) / float64(s.TotalRounds)
}

// Round is a single word played within a session.
type Round struct {
	ID           int64
	SessionID    int64
	WordText     string
	Scrambled    string
	HintUsed     bool
	Solved       bool
	PointsEarned int
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// RoundState is the persisted snapshot of the in-flight puzzle: slot
// assignments (tile IDs or -1), the words already drawn in the current
// bank cycle, and the timestamp of the last mutation. Slots and drawn
// words are stored as JSON columns.
type RoundState struct {
	SessionID int64
	RoundID   int64
	Slots     []int
	Drawn     []string
	UpdatedAt time.Time
}
