package handlers

import (
	"time"

	"wordscramble/internal/game"
	"wordscramble/internal/models"
	"wordscramble/internal/service"
)

// TileView is one draggable letter tile.
type TileView struct {
	ID     int    `json:"id"`
	Letter string `json:"letter"`
}

// SlotView is one answer position. TileID is -1 while the slot is empty.
type SlotView struct {
	Index  int    `json:"index"`
	TileID int    `json:"tileId"`
	Letter string `json:"letter,omitempty"`
}

// PlayStateView is the full round state sent to the player.
type PlayStateView struct {
	Phase       string     `json:"phase"`
	WordLength  int        `json:"wordLength"`
	Pool        []TileView `json:"pool"`
	Slots       []SlotView `json:"slots"`
	Score       int        `json:"score"`
	HintUsed    bool       `json:"hintUsed"`
	RoundsWon   int        `json:"roundsWon"`
	TotalRounds int        `json:"totalRounds"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	AudioURL    string     `json:"audioUrl,omitempty"`
}

// SolveView reports an answer check. The word is echoed only after a
// correct solve so an unsolved target stays hidden.
type SolveView struct {
	Correct  bool   `json:"correct"`
	Word     string `json:"word,omitempty"`
	Points   int    `json:"points"`
	Total    int    `json:"total"`
	HintUsed bool   `json:"hintUsed"`
}

// HintView is a revealed first letter.
type HintView struct {
	Letter string `json:"letter"`
	Slot   int    `json:"slot"`
	TileID int    `json:"tileId"`
}

// RoundView is one finished round in the results summary.
type RoundView struct {
	Word     string `json:"word"`
	Solved   bool   `json:"solved"`
	HintUsed bool   `json:"hintUsed"`
	Points   int    `json:"points"`
}

// ResultsView is the session summary.
type ResultsView struct {
	StartedAt   time.Time   `json:"startedAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	TotalRounds int         `json:"totalRounds"`
	RoundsWon   int         `json:"roundsWon"`
	TotalPoints int         `json:"totalPoints"`
	Rounds      []RoundView `json:"rounds"`
}

// BankWordView is one bank entry for the parent management screen.
type BankWordView struct {
	ID       int64  `json:"id"`
	Word     string `json:"word"`
	ImageRef string `json:"imageRef,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
}

func newPlayStateView(state *service.PlayState, imageURL, audioURL string) PlayStateView {
	puzzle := state.Core.Puzzle()
	tiles := puzzle.Tiles()

	view := PlayStateView{
		Phase:       state.Core.Phase().String(),
		WordLength:  len(tiles),
		Pool:        make([]TileView, 0, len(tiles)),
		Score:       state.Session.TotalPoints,
		HintUsed:    state.Core.HintUsed(),
		RoundsWon:   state.Session.RoundsWon,
		TotalRounds: state.Session.TotalRounds,
		ImageURL:    imageURL,
		AudioURL:    audioURL,
	}

	for _, tile := range puzzle.PoolTiles() {
		view.Pool = append(view.Pool, TileView{ID: tile.ID, Letter: string(tile.Letter)})
	}
	for i, tileID := range puzzle.Slots() {
		slot := SlotView{Index: i, TileID: tileID}
		if tileID != game.EmptySlot {
			slot.Letter = string(tiles[tileID].Letter)
		}
		view.Slots = append(view.Slots, slot)
	}
	return view
}

func newResultsView(session *models.PlaySession, rounds []models.Round) ResultsView {
	view := ResultsView{
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		TotalRounds: session.TotalRounds,
		RoundsWon:   session.RoundsWon,
		TotalPoints: session.TotalPoints,
		Rounds:      make([]RoundView, 0, len(rounds)),
	}
	for _, rd := range rounds {
		view.Rounds = append(view.Rounds, RoundView{
			Word:     rd.WordText,
			Solved:   rd.Solved,
			HintUsed: rd.HintUsed,
			Points:   rd.PointsEarned,
		})
	}
	return view
}
