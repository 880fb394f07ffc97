package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wordscramble/internal/security"
	"wordscramble/internal/service"
)

const playerSessionTTL = 24 * time.Hour

// PlayHandler handles the player-facing game requests.
type PlayHandler struct {
	plays  *service.PlayService
	images *service.ImageService
	audio  *service.AudioService
	secret []byte
}

// NewPlayHandler creates a new play handler.
func NewPlayHandler(plays *service.PlayService, images *service.ImageService, audio *service.AudioService, secret []byte) *PlayHandler {
	return &PlayHandler{
		plays:  plays,
		images: images,
		audio:  audio,
		secret: secret,
	}
}

// Start begins a new play session and sets the signed player cookie.
func (h *PlayHandler) Start(w http.ResponseWriter, r *http.Request) {
	token, state, err := h.plays.Start()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to start play session", err)
		return
	}

	signed, err := security.SignPlayerToken(h.secret, token, playerSessionTTL)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to sign player token", err)
		return
	}
	http.SetCookie(w, security.CreateSessionCookie(r, PlayerCookieName, signed, time.Now().Add(playerSessionTTL)))

	respondJSON(w, http.StatusCreated, h.stateView(state))
}

// State returns the current round state.
func (h *PlayHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.plays.State(GetPlayerToken(r.Context()))
	if err != nil {
		h.respondPlayError(w, "failed to load play state", err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateView(state))
}

// Place drops a tile into a slot.
func (h *PlayHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TileID int `json:"tileId"`
		Slot   int `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	state, err := h.plays.Place(GetPlayerToken(r.Context()), req.TileID, req.Slot)
	if err != nil {
		h.respondPlayError(w, "failed to place tile", err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateView(state))
}

// Remove returns a slotted tile to the pool.
func (h *PlayHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot int `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return
	}

	state, err := h.plays.Remove(GetPlayerToken(r.Context()), req.Slot)
	if err != nil {
		h.respondPlayError(w, "failed to remove tile", err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateView(state))
}

// Hint reveals the first letter of the current word.
func (h *PlayHandler) Hint(w http.ResponseWriter, r *http.Request) {
	state, hint, err := h.plays.Hint(GetPlayerToken(r.Context()))
	if err != nil {
		h.respondPlayError(w, "failed to reveal hint", err)
		return
	}

	resp := struct {
		Hint  *HintView     `json:"hint"`
		State PlayStateView `json:"state"`
	}{State: h.stateView(state)}
	if hint != nil {
		resp.Hint = &HintView{Letter: string(hint.Letter), Slot: hint.Slot, TileID: hint.TileID}
	}
	respondJSON(w, http.StatusOK, resp)
}

// Check evaluates the completed answer. On a correct solve the response
// carries the next round's state.
func (h *PlayHandler) Check(w http.ResponseWriter, r *http.Request) {
	state, result, err := h.plays.Check(GetPlayerToken(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrIncomplete) {
			http.Error(w, "Puzzle is not complete", http.StatusConflict)
			return
		}
		h.respondPlayError(w, "failed to check answer", err)
		return
	}

	resp := struct {
		Result SolveView     `json:"result"`
		State  PlayStateView `json:"state"`
	}{State: h.stateView(state)}
	resp.Result = SolveView{
		Correct:  result.Correct,
		Points:   result.Points,
		Total:    result.Total,
		HintUsed: result.HintUsed,
	}
	if result.Correct {
		resp.Result.Word = result.Word
	}
	respondJSON(w, http.StatusOK, resp)
}

// Next skips the current word and deals a fresh one.
func (h *PlayHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.plays.Next(GetPlayerToken(r.Context()))
	if err != nil {
		h.respondPlayError(w, "failed to deal next word", err)
		return
	}
	respondJSON(w, http.StatusOK, h.stateView(state))
}

// Exit finishes the session and clears the player cookie.
func (h *PlayHandler) Exit(w http.ResponseWriter, r *http.Request) {
	session, err := h.plays.Exit(r.Context(), GetPlayerToken(r.Context()))
	if err != nil {
		h.respondPlayError(w, "failed to exit play session", err)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, PlayerCookieName))

	_, rounds, err := h.plays.Results(session.Token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to load results", err)
		return
	}
	respondJSON(w, http.StatusOK, newResultsView(session, rounds))
}

// Results returns the session summary.
func (h *PlayHandler) Results(w http.ResponseWriter, r *http.Request) {
	session, rounds, err := h.plays.Results(GetPlayerToken(r.Context()))
	if err != nil {
		h.respondPlayError(w, "failed to load results", err)
		return
	}
	respondJSON(w, http.StatusOK, newResultsView(session, rounds))
}

// stateView renders the state with the round's picture and audio clues.
func (h *PlayHandler) stateView(state *service.PlayState) PlayStateView {
	var imageURL, audioURL string
	if state.Round != nil {
		word := state.Round.WordText
		configuredRef, _ := state.Core.Bank().ImageFor(word)
		imageURL = h.images.ImageURLFor(word, configuredRef)
		audioURL = h.audio.AudioPath(word)
	}
	return newPlayStateView(state, imageURL, audioURL)
}

func (h *PlayHandler) respondPlayError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		http.Error(w, "Play session not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNoRound):
		http.Error(w, "No active round", http.StatusConflict)
	case errors.Is(err, service.ErrSessionOver):
		http.Error(w, "Play session already finished", http.StatusConflict)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
