package repository

import (
	"database/sql"
	"fmt"

	"wordscramble/internal/database"
	"wordscramble/internal/models"
)

// WordRepository handles database operations for the word bank.
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository.
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetAll retrieves every bank word in position order.
func (r *WordRepository) GetAll() ([]models.BankWord, error) {
	query := `
		SELECT id, word_text, image_ref, position, created_at
		FROM bank_words
		ORDER BY position, id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank words: %w", err)
	}
	defer rows.Close()

	var words []models.BankWord
	for rows.Next() {
		var w models.BankWord
		if err := rows.Scan(&w.ID, &w.WordText, &w.ImageRef, &w.Position, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// GetByID retrieves one bank word, or nil when absent.
func (r *WordRepository) GetByID(id int64) (*models.BankWord, error) {
	query := `
		SELECT id, word_text, image_ref, position, created_at
		FROM bank_words
		WHERE id = ?
	`
	w := &models.BankWord{}
	err := r.db.QueryRow(query, id).Scan(&w.ID, &w.WordText, &w.ImageRef, &w.Position, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank word: %w", err)
	}
	return w, nil
}

// Exists reports whether a word is already in the bank, case-insensitively.
func (r *WordRepository) Exists(word string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM bank_words WHERE LOWER(word_text) = LOWER(?)"
	if err := r.db.QueryRow(query, word).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}
	return count > 0, nil
}

// Add inserts a word with its picture reference at the end of the list.
func (r *WordRepository) Add(word, imageRef string) (*models.BankWord, error) {
	var position int
	if err := r.db.QueryRow("SELECT COALESCE(MAX(position), 0) + 1 FROM bank_words").Scan(&position); err != nil {
		return nil, fmt.Errorf("failed to compute position: %w", err)
	}

	query := "INSERT INTO bank_words (word_text, image_ref, position) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, word, imageRef, position)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bank word: %w", err)
	}

	return &models.BankWord{ID: id, WordText: word, ImageRef: imageRef, Position: position}, nil
}

// Delete removes a bank word by ID. Deleting an absent row is a no-op.
func (r *WordRepository) Delete(id int64) error {
	if _, err := r.db.Exec("DELETE FROM bank_words WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete bank word: %w", err)
	}
	return nil
}

// DeleteByWord removes a bank word by its text, case-insensitively.
func (r *WordRepository) DeleteByWord(word string) error {
	if _, err := r.db.Exec("DELETE FROM bank_words WHERE LOWER(word_text) = LOWER(?)", word); err != nil {
		return fmt.Errorf("failed to delete bank word: %w", err)
	}
	return nil
}

// ReplaceAll swaps the entire bank for a new list inside one transaction,
// so the word list and its picture mapping are always written as a pair
// and a partial failure never leaves a word pointing at a missing image.
func (r *WordRepository) ReplaceAll(words []models.BankWord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bank_words"); err != nil {
		return fmt.Errorf("failed to clear bank words: %w", err)
	}

	query := "INSERT INTO bank_words (word_text, image_ref, position) VALUES (?, ?, ?)"
	for i, w := range words {
		if _, err := tx.Exec(query, w.WordText, w.ImageRef, i+1); err != nil {
			return fmt.Errorf("failed to insert bank word %q: %w", w.WordText, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bank replacement: %w", err)
	}
	return nil
}

// UpdateImage sets the picture reference for an existing word.
func (r *WordRepository) UpdateImage(id int64, imageRef string) error {
	if _, err := r.db.Exec("UPDATE bank_words SET image_ref = ? WHERE id = ?", imageRef, id); err != nil {
		return fmt.Errorf("failed to update image ref: %w", err)
	}
	return nil
}

// Count returns the number of configured words.
func (r *WordRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM bank_words").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bank words: %w", err)
	}
	return count, nil
}
