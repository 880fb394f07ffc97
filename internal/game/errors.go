package game

import "errors"

var (
	// ErrEmptyBank is returned when drawing from a bank with no configured words.
	ErrEmptyBank = errors.New("word bank has no words configured")

	// ErrDuplicateWord is returned when adding a word that already exists
	// (case-insensitive) in the bank.
	ErrDuplicateWord = errors.New("word already exists in the bank")

	// ErrInvalidInput is returned for malformed words, e.g. empty after trimming.
	ErrInvalidInput = errors.New("invalid word")
)
