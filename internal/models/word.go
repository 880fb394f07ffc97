package models

import "time"

// BankWord is one vocabulary word in the persisted bank, optionally
// paired with a picture reference (a URL or a served static path).
type BankWord struct {
	ID        int64
	WordText  string
	ImageRef  string
	Position  int
	CreatedAt time.Time
}
