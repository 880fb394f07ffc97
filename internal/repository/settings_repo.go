package repository

import (
	"database/sql"
	"strconv"

	"wordscramble/internal/database"
	"wordscramble/internal/game"
)

// Setting keys.
const (
	SettingFullAward    = "score_full_award"
	SettingHintAward    = "score_hint_award"
	SettingPasscodeHash = "bank_passcode_hash"
)

// SettingsRepository stores key/value configuration: the scoring awards
// and the hashed bank-management passcode.
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key; ok is false when unset.
func (r *SettingsRepository) GetSetting(key string) (string, bool, error) {
	var value string
	query := "SELECT setting_value FROM settings WHERE setting_key = ?"
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting updates or inserts a setting.
func (r *SettingsRepository) SetSetting(key, value string) error {
	_, err := r.db.Exec(r.db.Dialect.UpsertSetting(), key, value)
	return err
}

// ScoringAwards returns the configured full and reduced awards, falling
// back to the core defaults for unset or unparsable values.
func (r *SettingsRepository) ScoringAwards() (full, reduced int) {
	full, reduced = game.DefaultFullAward, game.DefaultHintAward
	if v, ok, err := r.GetSetting(SettingFullAward); err == nil && ok {
		if n, err := strconv.Atoi(v); err == nil {
			full = n
		}
	}
	if v, ok, err := r.GetSetting(SettingHintAward); err == nil && ok {
		if n, err := strconv.Atoi(v); err == nil {
			reduced = n
		}
	}
	return full, reduced
}

// SetScoringAwards persists the award configuration.
func (r *SettingsRepository) SetScoringAwards(full, reduced int) error {
	if err := r.SetSetting(SettingFullAward, strconv.Itoa(full)); err != nil {
		return err
	}
	return r.SetSetting(SettingHintAward, strconv.Itoa(reduced))
}

// PasscodeHash returns the stored bank passcode hash, or empty when the
// bank endpoints are unprotected.
func (r *SettingsRepository) PasscodeHash() (string, error) {
	hash, _, err := r.GetSetting(SettingPasscodeHash)
	return hash, err
}

// SetPasscodeHash stores the bank passcode hash.
func (r *SettingsRepository) SetPasscodeHash(hash string) error {
	return r.SetSetting(SettingPasscodeHash, hash)
}
