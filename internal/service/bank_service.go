package service

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"wordscramble/internal/game"
	"wordscramble/internal/models"
	"wordscramble/internal/repository"
	"wordscramble/internal/utils"
)

// BankService owns the persisted word bank: it hydrates the core Bank
// from the database and applies parent edits with validation.
type BankService struct {
	wordRepo *repository.WordRepository
	audio    *AudioService
}

// NewBankService creates a new bank service.
func NewBankService(wordRepo *repository.WordRepository, audio *AudioService) *BankService {
	return &BankService{wordRepo: wordRepo, audio: audio}
}

// LoadBank builds a core Bank from the persisted word list. Pass a
// seeded rng for deterministic draws in tests; nil uses the default.
func (s *BankService) LoadBank(rng *rand.Rand) (*game.Bank, error) {
	rows, err := s.wordRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load bank words: %w", err)
	}

	words := make([]string, 0, len(rows))
	images := make(map[string]string, len(rows))
	for _, row := range rows {
		words = append(words, row.WordText)
		if row.ImageRef != "" {
			images[row.WordText] = row.ImageRef
		}
	}

	bank := game.NewBank(rng)
	if err := bank.Configure(words, images); err != nil {
		return nil, fmt.Errorf("persisted bank failed validation: %w", err)
	}
	return bank, nil
}

// Words returns the persisted bank rows in position order.
func (s *BankService) Words() ([]models.BankWord, error) {
	return s.wordRepo.GetAll()
}

// AddWord validates and inserts a single word, then generates its
// pronunciation audio best-effort.
func (s *BankService) AddWord(word, imageRef string) (*models.BankWord, error) {
	if err := utils.ValidateWord(word); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidInput, err)
	}
	if err := utils.ValidateImageRef(imageRef); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidInput, err)
	}

	norm := game.Normalize(word)
	exists, err := s.wordRepo.Exists(norm)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, game.ErrDuplicateWord
	}

	row, err := s.wordRepo.Add(norm, imageRef)
	if err != nil {
		return nil, err
	}

	if _, err := s.audio.GenerateAudioFile(norm); err != nil {
		log.Warn().Err(err).Str("word", norm).Msg("failed to generate pronunciation audio")
	}
	return row, nil
}

// RemoveWord deletes a word by ID. Absent rows are a no-op.
func (s *BankService) RemoveWord(id int64) error {
	return s.wordRepo.Delete(id)
}

// Replace validates and swaps the full bank atomically: the word list
// and its picture mapping land together or not at all.
func (s *BankService) Replace(words []string, images map[string]string) error {
	seen := make(map[string]bool, len(words))
	rows := make([]models.BankWord, 0, len(words))
	for _, w := range words {
		if err := utils.ValidateWord(w); err != nil {
			return fmt.Errorf("%w: %v", game.ErrInvalidInput, err)
		}
		norm := game.Normalize(w)
		if seen[norm] {
			return fmt.Errorf("%w: %s", game.ErrDuplicateWord, norm)
		}
		seen[norm] = true

		ref := images[norm]
		if ref == "" {
			ref = images[w]
		}
		if err := utils.ValidateImageRef(ref); err != nil {
			return fmt.Errorf("%w: %v", game.ErrInvalidInput, err)
		}
		rows = append(rows, models.BankWord{WordText: norm, ImageRef: ref})
	}

	if err := s.wordRepo.ReplaceAll(rows); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := s.audio.GenerateAudioFile(row.WordText); err != nil {
			log.Warn().Err(err).Str("word", row.WordText).Msg("failed to generate pronunciation audio")
		}
	}
	return nil
}

// defaultWords seeds a first-run bank so the game is playable before
// any parent configuration.
var defaultWords = map[string]string{
	"cat":       "",
	"dog":       "",
	"fish":      "",
	"bird":      "",
	"apple":     "",
	"banana":    "",
	"house":     "",
	"train":     "",
	"flower":    "",
	"ice cream": "",
}

// SeedDefaults populates the bank with a starter list when it is empty.
func (s *BankService) SeedDefaults() error {
	count, err := s.wordRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Info().Int("words", len(defaultWords)).Msg("seeding default word bank")
	for word, image := range defaultWords {
		if _, err := s.wordRepo.Add(word, image); err != nil {
			return fmt.Errorf("failed to seed word %q: %w", word, err)
		}
	}
	return nil
}
