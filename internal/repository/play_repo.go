package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"wordscramble/internal/database"
	"wordscramble/internal/models"
)

// PlayRepository handles database operations for play sessions, rounds,
// and the in-flight puzzle snapshot.
type PlayRepository struct {
	db *database.DB
}

// NewPlayRepository creates a new play repository.
func NewPlayRepository(db *database.DB) *PlayRepository {
	return &PlayRepository{db: db}
}

// CreateSession inserts a fresh play session for the given token.
func (r *PlayRepository) CreateSession(token string) (*models.PlaySession, error) {
	query := `INSERT INTO play_sessions (token, started_at, total_rounds, rounds_won, total_points)
			  VALUES (?, ?, 0, 0, 0)`
	now := time.Now()
	id, err := r.db.ExecReturningID(query, token, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create play session: %w", err)
	}
	return &models.PlaySession{ID: id, Token: token, StartedAt: now}, nil
}

// GetSessionByToken retrieves a session by its cookie token, or nil.
func (r *PlayRepository) GetSessionByToken(token string) (*models.PlaySession, error) {
	query := `SELECT id, token, started_at, completed_at, total_rounds, rounds_won, total_points
			  FROM play_sessions WHERE token = ?`
	s := &models.PlaySession{}
	err := r.db.QueryRow(query, token).Scan(&s.ID, &s.Token, &s.StartedAt, &s.CompletedAt,
		&s.TotalRounds, &s.RoundsWon, &s.TotalPoints)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get play session: %w", err)
	}
	return s, nil
}

// CompleteSession stamps a session finished.
func (r *PlayRepository) CompleteSession(sessionID int64) error {
	query := "UPDATE play_sessions SET completed_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, time.Now(), sessionID); err != nil {
		return fmt.Errorf("failed to complete play session: %w", err)
	}
	return nil
}

// RecordSolve updates session totals after a correct answer.
func (r *PlayRepository) RecordSolve(sessionID int64, points int) error {
	query := `UPDATE play_sessions
			  SET rounds_won = rounds_won + 1, total_points = total_points + ?
			  WHERE id = ?`
	if _, err := r.db.Exec(query, points, sessionID); err != nil {
		return fmt.Errorf("failed to record solve: %w", err)
	}
	return nil
}

// Round flags are bound as Go bools so each driver encodes its own
// boolean representation; postgres rejects integer literals in BOOLEAN
// columns.
const createRoundQuery = `INSERT INTO rounds (session_id, word_text, scrambled, hint_used, solved, points_earned, started_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

const markHintUsedQuery = "UPDATE rounds SET hint_used = ? WHERE id = ?"

// CreateRound inserts a round for a dealt word and bumps the session's
// round counter.
func (r *PlayRepository) CreateRound(sessionID int64, word, scrambled string) (int64, error) {
	roundID, err := r.db.ExecReturningID(createRoundQuery, sessionID, word, scrambled, false, false, 0, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to create round: %w", err)
	}

	bump := "UPDATE play_sessions SET total_rounds = total_rounds + 1 WHERE id = ?"
	if _, err := r.db.Exec(bump, sessionID); err != nil {
		return 0, fmt.Errorf("failed to bump round count: %w", err)
	}
	return roundID, nil
}

// MarkHintUsed flags the round as having burned its hint.
func (r *PlayRepository) MarkHintUsed(roundID int64) error {
	if _, err := r.db.Exec(markHintUsedQuery, true, roundID); err != nil {
		return fmt.Errorf("failed to mark hint used: %w", err)
	}
	return nil
}

// CompleteRound records the round outcome.
func (r *PlayRepository) CompleteRound(roundID int64, solved bool, points int) error {
	query := "UPDATE rounds SET solved = ?, points_earned = ?, completed_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, solved, points, time.Now(), roundID); err != nil {
		return fmt.Errorf("failed to complete round: %w", err)
	}
	return nil
}

// GetRound returns a single round by id, or nil.
func (r *PlayRepository) GetRound(roundID int64) (*models.Round, error) {
	query := `SELECT id, session_id, word_text, scrambled, hint_used, solved, points_earned, started_at, completed_at
			  FROM rounds WHERE id = ?`
	rd := &models.Round{}
	err := r.db.QueryRow(query, roundID).Scan(&rd.ID, &rd.SessionID, &rd.WordText, &rd.Scrambled,
		&rd.HintUsed, &rd.Solved, &rd.PointsEarned, &rd.StartedAt, &rd.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return rd, nil
}

// GetRounds returns every round of a session in play order.
func (r *PlayRepository) GetRounds(sessionID int64) ([]models.Round, error) {
	query := `SELECT id, session_id, word_text, scrambled, hint_used, solved, points_earned, started_at, completed_at
			  FROM rounds WHERE session_id = ? ORDER BY id`
	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []models.Round
	for rows.Next() {
		var rd models.Round
		if err := rows.Scan(&rd.ID, &rd.SessionID, &rd.WordText, &rd.Scrambled, &rd.HintUsed,
			&rd.Solved, &rd.PointsEarned, &rd.StartedAt, &rd.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, rd)
	}
	return rounds, rows.Err()
}

// SaveState upserts the puzzle snapshot for a session: update first and
// insert when nothing matched.
func (r *PlayRepository) SaveState(state *models.RoundState) error {
	slotsJSON, err := json.Marshal(state.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}
	drawnJSON, err := json.Marshal(state.Drawn)
	if err != nil {
		return fmt.Errorf("failed to marshal drawn words: %w", err)
	}

	update := `UPDATE round_state
			   SET round_id = ?, slots_json = ?, drawn_json = ?, updated_at = CURRENT_TIMESTAMP
			   WHERE session_id = ?`
	result, err := r.db.Exec(update, state.RoundID, string(slotsJSON), string(drawnJSON), state.SessionID)
	if err != nil {
		return fmt.Errorf("failed to update round state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check round state update: %w", err)
	}
	if affected == 0 {
		insert := `INSERT INTO round_state (session_id, round_id, slots_json, drawn_json)
				   VALUES (?, ?, ?, ?)`
		if _, err := r.db.Exec(insert, state.SessionID, state.RoundID, string(slotsJSON), string(drawnJSON)); err != nil {
			return fmt.Errorf("failed to insert round state: %w", err)
		}
	}
	return nil
}

// GetState loads the puzzle snapshot for a session, or nil when absent.
func (r *PlayRepository) GetState(sessionID int64) (*models.RoundState, error) {
	query := `SELECT session_id, round_id, slots_json, drawn_json, updated_at
			  FROM round_state WHERE session_id = ?`

	var slotsJSON, drawnJSON string
	state := &models.RoundState{}
	err := r.db.QueryRow(query, sessionID).Scan(&state.SessionID, &state.RoundID,
		&slotsJSON, &drawnJSON, &state.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round state: %w", err)
	}

	if err := json.Unmarshal([]byte(slotsJSON), &state.Slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
	}
	if err := json.Unmarshal([]byte(drawnJSON), &state.Drawn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal drawn words: %w", err)
	}
	return state, nil
}

// DeleteState removes the snapshot when a session ends.
func (r *PlayRepository) DeleteState(sessionID int64) error {
	if _, err := r.db.Exec("DELETE FROM round_state WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete round state: %w", err)
	}
	return nil
}
