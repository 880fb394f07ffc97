package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"wordscramble/internal/database"
)

// BackupData is the complete portable backup structure. It is database
// agnostic so an export from sqlite can be imported into postgres.
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Words      []WordBackup    `json:"words"`
	Sessions   []SessionBackup `json:"sessions"`
	Settings   []SettingBackup `json:"settings"`
}

// WordBackup is one bank word with its picture reference.
type WordBackup struct {
	ID        int64     `json:"id"`
	WordText  string    `json:"word_text"`
	ImageRef  string    `json:"image_ref"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionBackup is a play session with its rounds nested inside.
type SessionBackup struct {
	ID          int64         `json:"id"`
	Token       string        `json:"token"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at"`
	TotalRounds int           `json:"total_rounds"`
	RoundsWon   int           `json:"rounds_won"`
	TotalPoints int           `json:"total_points"`
	Rounds      []RoundBackup `json:"rounds"`
}

// RoundBackup is one dealt word within a session.
type RoundBackup struct {
	ID           int64      `json:"id"`
	WordText     string     `json:"word_text"`
	Scrambled    string     `json:"scrambled"`
	HintUsed     bool       `json:"hint_used"`
	Solved       bool       `json:"solved"`
	PointsEarned int        `json:"points_earned"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// SettingBackup is one settings row.
type SettingBackup struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BackupService handles database backup and restore operations.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service.
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file.
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	log.Info().Str("path", outputPath).Msg("database exported")
	return nil
}

// ExportToWriter exports the database as indented JSON.
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportWords(backup); err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}
	if err := s.exportSessions(backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportSettings(backup); err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}

	log.Info().Int("words", len(backup.Words)).Int("sessions", len(backup.Sessions)).
		Int("settings", len(backup.Settings)).Msg("export collected")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file. Target tables must be
// empty; imports do not merge.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Info().Str("version", backup.Version).Time("exported_at", backup.ExportedAt).
		Msg("starting import")

	if err := s.importWords(backup.Words); err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if err := s.importSessions(backup.Sessions); err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	if err := s.importSettings(backup.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	if err := s.syncSequences(); err != nil {
		return fmt.Errorf("failed to sync id sequences: %w", err)
	}

	log.Info().Msg("database import completed")
	return nil
}

// syncSequences realigns id generators with the imported rows on dialects
// whose sequences do not follow explicit-id inserts.
func (s *BackupService) syncSequences() error {
	for _, table := range []string{"bank_words", "play_sessions", "rounds"} {
		query := s.db.Dialect.SyncSequenceQuery(table)
		if query == "" {
			continue
		}
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("table %s: %w", table, err)
		}
	}
	return nil
}

func (s *BackupService) exportWords(backup *BackupData) error {
	query := "SELECT id, word_text, COALESCE(image_ref, ''), position, created_at FROM bank_words ORDER BY position"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.WordText, &w.ImageRef, &w.Position, &w.CreatedAt); err != nil {
			return err
		}
		backup.Words = append(backup.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	query := `SELECT id, token, started_at, completed_at, total_rounds, rounds_won, total_points
			  FROM play_sessions ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sb SessionBackup
		var completedAt sql.NullTime
		if err := rows.Scan(&sb.ID, &sb.Token, &sb.StartedAt, &completedAt,
			&sb.TotalRounds, &sb.RoundsWon, &sb.TotalPoints); err != nil {
			return err
		}
		if completedAt.Valid {
			sb.CompletedAt = &completedAt.Time
		}

		if err := s.exportRounds(&sb); err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, sb)
	}
	return rows.Err()
}

func (s *BackupService) exportRounds(sb *SessionBackup) error {
	query := `SELECT id, word_text, scrambled, hint_used, solved, points_earned, started_at, completed_at
			  FROM rounds WHERE session_id = ? ORDER BY id`
	rows, err := s.db.Query(query, sb.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rb RoundBackup
		var completedAt sql.NullTime
		if err := rows.Scan(&rb.ID, &rb.WordText, &rb.Scrambled, &rb.HintUsed,
			&rb.Solved, &rb.PointsEarned, &rb.StartedAt, &completedAt); err != nil {
			return err
		}
		if completedAt.Valid {
			rb.CompletedAt = &completedAt.Time
		}
		sb.Rounds = append(sb.Rounds, rb)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT setting_key, setting_value FROM settings ORDER BY setting_key`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sb SettingBackup
		if err := rows.Scan(&sb.Key, &sb.Value); err != nil {
			return err
		}
		backup.Settings = append(backup.Settings, sb)
	}
	return rows.Err()
}

func (s *BackupService) importWords(words []WordBackup) error {
	log.Info().Int("count", len(words)).Msg("importing words")
	for _, w := range words {
		query := "INSERT INTO bank_words (id, word_text, image_ref, position, created_at) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, w.ID, w.WordText, nullIfEmpty(w.ImageRef), w.Position, w.CreatedAt); err != nil {
			return fmt.Errorf("failed to import word %d: %w", w.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSessions(sessions []SessionBackup) error {
	log.Info().Int("count", len(sessions)).Msg("importing sessions")
	for _, sb := range sessions {
		query := `INSERT INTO play_sessions (id, token, started_at, completed_at, total_rounds, rounds_won, total_points)
				  VALUES (?, ?, ?, ?, ?, ?, ?)`
		var completedAt interface{}
		if sb.CompletedAt != nil {
			completedAt = *sb.CompletedAt
		}
		if _, err := s.db.Exec(query, sb.ID, sb.Token, sb.StartedAt, completedAt,
			sb.TotalRounds, sb.RoundsWon, sb.TotalPoints); err != nil {
			return fmt.Errorf("failed to import session %d: %w", sb.ID, err)
		}

		for _, rb := range sb.Rounds {
			roundQuery := `INSERT INTO rounds (id, session_id, word_text, scrambled, hint_used, solved, points_earned, started_at, completed_at)
						   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
			var roundCompleted interface{}
			if rb.CompletedAt != nil {
				roundCompleted = *rb.CompletedAt
			}
			if _, err := s.db.Exec(roundQuery, rb.ID, sb.ID, rb.WordText, rb.Scrambled,
				rb.HintUsed, rb.Solved, rb.PointsEarned, rb.StartedAt, roundCompleted); err != nil {
				return fmt.Errorf("failed to import round %d for session %d: %w", rb.ID, sb.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importSettings(settings []SettingBackup) error {
	log.Info().Int("count", len(settings)).Msg("importing settings")
	for _, sb := range settings {
		if _, err := s.db.Exec(s.db.Dialect.UpsertSetting(), sb.Key, sb.Value); err != nil {
			return fmt.Errorf("failed to import setting %s: %w", sb.Key, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
