package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordscramble/internal/game"
	"wordscramble/internal/repository"
	"wordscramble/internal/security"
	"wordscramble/internal/service"
)

// BankHandler handles the parent-facing word bank management requests.
// Every route requires the shared bank passcode.
type BankHandler struct {
	bank     *service.BankService
	audio    *service.AudioService
	settings *repository.SettingsRepository
}

// NewBankHandler creates a new bank handler.
func NewBankHandler(bank *service.BankService, audio *service.AudioService, settings *repository.SettingsRepository) *BankHandler {
	return &BankHandler{bank: bank, audio: audio, settings: settings}
}

// RequirePasscode verifies the bank passcode header against the stored
// hash. With no passcode configured the bank endpoints stay open, which
// suits a single-family install.
func (h *BankHandler) RequirePasscode(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash, err := h.settings.PasscodeHash()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load passcode hash", err)
			return
		}
		if hash != "" && !security.CheckPasscode(hash, r.Header.Get(BankPasscodeHeader)) {
			http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// ListWords returns every bank word.
func (h *BankHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.bank.Words()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list bank words", err)
		return
	}

	views := make([]BankWordView, 0, len(words))
	for _, word := range words {
		views = append(views, BankWordView{
			ID:       word.ID,
			Word:     word.WordText,
			ImageRef: word.ImageRef,
			AudioURL: h.audio.AudioPath(word.WordText),
		})
	}
	respondJSON(w, http.StatusOK, views)
}

// AddWord appends one word to the bank.
func (h *BankHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word     string `json:"word"`
		ImageRef string `json:"imageRef"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	word, err := h.bank.AddWord(req.Word, req.ImageRef)
	if err != nil {
		h.respondBankError(w, "failed to add bank word", err)
		return
	}
	respondJSON(w, http.StatusCreated, BankWordView{
		ID:       word.ID,
		Word:     word.WordText,
		ImageRef: word.ImageRef,
		AudioURL: h.audio.AudioPath(word.WordText),
	})
}

// DeleteWord removes one word from the bank.
func (h *BankHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid word ID", http.StatusBadRequest)
		return
	}
	if err := h.bank.RemoveWord(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to delete bank word", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceWords swaps the whole bank for a new list in one transaction.
func (h *BankHandler) ReplaceWords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Words  []string          `json:"words"`
		Images map[string]string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.bank.Replace(req.Words, req.Images); err != nil {
		h.respondBankError(w, "failed to replace bank words", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BankHandler) respondBankError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, game.ErrDuplicateWord):
		http.Error(w, "Word already in the bank", http.StatusConflict)
	case errors.Is(err, game.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
