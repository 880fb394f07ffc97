package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"wordscramble/internal/game"
	"wordscramble/internal/models"
	"wordscramble/internal/repository"
	"wordscramble/internal/security"
)

var (
	// ErrNoSession is returned when a token resolves to no play session.
	ErrNoSession = errors.New("play session not found")

	// ErrNoRound is returned when a session has no round in flight.
	ErrNoRound = errors.New("no active round")

	// ErrIncomplete is returned when an answer check is requested before
	// every slot is filled.
	ErrIncomplete = errors.New("puzzle is not complete")

	// ErrSessionOver is returned for mutations on a finished session.
	ErrSessionOver = errors.New("play session already finished")
)

// PlayState bundles everything the presentation layer needs about the
// current moment of play.
type PlayState struct {
	Session *models.PlaySession
	Round   *models.Round
	Core    *game.Session

	drawn []string
}

// SolveResult reports the outcome of an answer check.
type SolveResult struct {
	Correct  bool
	Word     string
	Points   int
	Total    int
	HintUsed bool
}

// PlayService orchestrates rounds: it rebuilds the core game from
// persisted state on every request, applies one mutation through the
// core's API, and persists the result. The core stays pure; this layer
// owns all I/O.
type PlayService struct {
	playRepo *repository.PlayRepository
	bank     *BankService
	settings *repository.SettingsRepository
	reports  *ReportService
}

// NewPlayService creates a new play service.
func NewPlayService(playRepo *repository.PlayRepository, bank *BankService, settings *repository.SettingsRepository, reports *ReportService) *PlayService {
	return &PlayService{
		playRepo: playRepo,
		bank:     bank,
		settings: settings,
		reports:  reports,
	}
}

// Start creates a play session and deals its first round. The returned
// token goes into the player cookie.
func (s *PlayService) Start() (string, *PlayState, error) {
	token := security.NewSessionToken()
	session, err := s.playRepo.CreateSession(token)
	if err != nil {
		return "", nil, err
	}

	core, err := s.newCore()
	if err != nil {
		return "", nil, err
	}

	state, err := s.dealRound(session, core, nil)
	if err != nil {
		return "", nil, err
	}
	return token, state, nil
}

// State loads the current play state for a token.
func (s *PlayService) State(token string) (*PlayState, error) {
	return s.load(token)
}

// Place moves a tile into a slot. A rejected placement (occupied slot,
// unknown tile) is not an error; the echoed state lets the presentation
// layer re-render.
func (s *PlayService) Place(token string, tileID, slot int) (*PlayState, error) {
	state, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}
	if state.Core.Place(tileID, slot) {
		if err := s.saveSnapshot(state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Remove clears a slot back to the pool.
func (s *PlayService) Remove(token string, slot int) (*PlayState, error) {
	state, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}
	if _, ok := state.Core.Remove(slot); ok {
		if err := s.saveSnapshot(state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Hint reveals the target's first letter. A refused hint (tiles already
// placed) is echoed without error.
func (s *PlayService) Hint(token string) (*PlayState, *game.Hint, error) {
	state, err := s.loadActive(token)
	if err != nil {
		return nil, nil, err
	}
	hint, ok := state.Core.RequestHint()
	if !ok {
		return state, nil, nil
	}
	if err := s.playRepo.MarkHintUsed(state.Round.ID); err != nil {
		return nil, nil, err
	}
	state.Round.HintUsed = true
	if err := s.saveSnapshot(state); err != nil {
		return nil, nil, err
	}
	return state, &hint, nil
}

// Check evaluates a complete answer. A correct solve records the round,
// bumps the session totals, and deals the next word in the same request.
// An incorrect answer leaves the tiles in place for rearranging. Checking
// an incomplete puzzle returns ErrIncomplete.
func (s *PlayService) Check(token string) (*PlayState, *SolveResult, error) {
	state, err := s.loadActive(token)
	if err != nil {
		return nil, nil, err
	}
	if state.Round.Solved {
		// A solve that crashed before the next deal; resume the deal.
		next, err := s.dealRound(state.Session, state.Core, state.drawn)
		if err != nil {
			return nil, nil, err
		}
		return next, &SolveResult{
			Correct:  true,
			Word:     state.Round.WordText,
			Points:   state.Round.PointsEarned,
			Total:    state.Session.TotalPoints,
			HintUsed: state.Round.HintUsed,
		}, nil
	}
	if state.Core.Phase() != game.PhaseComplete {
		return nil, nil, ErrIncomplete
	}

	var points int
	state.Core.Events().Subscribe(game.EventSolveCorrect, func(e game.Event) {
		points = e.(game.SolveCorrect).Points
	})

	if !state.Core.CheckAnswer() {
		return state, &SolveResult{Word: state.Round.WordText, HintUsed: state.Round.HintUsed}, nil
	}

	if err := s.playRepo.CompleteRound(state.Round.ID, true, points); err != nil {
		return nil, nil, err
	}
	if err := s.playRepo.RecordSolve(state.Session.ID, points); err != nil {
		return nil, nil, err
	}
	state.Session.RoundsWon++
	state.Session.TotalPoints += points

	result := &SolveResult{
		Correct:  true,
		Word:     state.Round.WordText,
		Points:   points,
		Total:    state.Session.TotalPoints,
		HintUsed: state.Round.HintUsed,
	}
	log.Info().Str("word", result.Word).Int("points", points).
		Int("total", result.Total).Msg("round solved")

	next, err := s.dealRound(state.Session, state.Core, state.drawn)
	if err != nil {
		return nil, nil, err
	}
	return next, result, nil
}

// Next abandons the current round and deals a fresh word. Skipped rounds
// finish unsolved.
func (s *PlayService) Next(token string) (*PlayState, error) {
	state, err := s.loadActive(token)
	if err != nil {
		return nil, err
	}
	if state.Round.CompletedAt == nil {
		if err := s.playRepo.CompleteRound(state.Round.ID, false, 0); err != nil {
			return nil, err
		}
	}
	return s.dealRound(state.Session, state.Core, state.drawn)
}

// Exit finishes the session, clears the snapshot, and mails the progress
// report best-effort.
func (s *PlayService) Exit(ctx context.Context, token string) (*models.PlaySession, error) {
	state, err := s.load(token)
	if err != nil {
		return nil, err
	}
	session := state.Session
	if session.IsFinished() {
		// Replayed exit; nothing to finalize and no second report.
		return session, nil
	}

	if state.Round != nil && state.Round.CompletedAt == nil {
		if err := s.playRepo.CompleteRound(state.Round.ID, false, 0); err != nil {
			return nil, err
		}
	}
	if err := s.playRepo.CompleteSession(session.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	session.CompletedAt = &now

	if err := s.playRepo.DeleteState(session.ID); err != nil {
		return nil, err
	}

	rounds, err := s.playRepo.GetRounds(session.ID)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := s.reports.SendProgressReport(context.WithoutCancel(ctx), session, rounds); err != nil {
			log.Warn().Err(err).Msg("failed to send progress report")
		}
	}()

	return session, nil
}

// Results returns the session summary and its rounds.
func (s *PlayService) Results(token string) (*models.PlaySession, []models.Round, error) {
	session, err := s.playRepo.GetSessionByToken(token)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrNoSession
	}
	rounds, err := s.playRepo.GetRounds(session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, rounds, nil
}

// newCore builds a fresh core session over the persisted bank and the
// configured scoring awards.
func (s *PlayService) newCore() (*game.Session, error) {
	bank, err := s.bank.LoadBank(nil)
	if err != nil {
		return nil, err
	}
	full, reduced := s.settings.ScoringAwards()
	return game.NewSession(bank, nil, full, reduced), nil
}

// load rebuilds the play state for a token. The snapshot row names the
// current round; a session without a snapshot has nothing in flight.
func (s *PlayService) load(token string) (*PlayState, error) {
	session, err := s.playRepo.GetSessionByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoSession
	}

	core, err := s.newCore()
	if err != nil {
		return nil, err
	}
	state := &PlayState{Session: session, Core: core}

	snapshot, err := s.playRepo.GetState(session.ID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return state, nil
	}

	round, err := s.playRepo.GetRound(snapshot.RoundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, fmt.Errorf("snapshot names missing round %d", snapshot.RoundID)
	}
	if err := core.Restore(round.WordText, round.Scrambled, snapshot.Slots,
		round.HintUsed, snapshot.Drawn, session.TotalPoints); err != nil {
		return nil, fmt.Errorf("failed to restore round %d: %w", round.ID, err)
	}
	state.Round = round
	state.drawn = snapshot.Drawn
	return state, nil
}

// loadActive is load plus guards for mutating requests.
func (s *PlayService) loadActive(token string) (*PlayState, error) {
	state, err := s.load(token)
	if err != nil {
		return nil, err
	}
	if state.Session.IsFinished() {
		return nil, ErrSessionOver
	}
	if state.Round == nil {
		return nil, ErrNoRound
	}
	return state, nil
}

// dealRound draws and persists the next word. The drawn-word list
// tracks the bank's current no-repeat cycle and resets when the bank
// refills.
func (s *PlayService) dealRound(session *models.PlaySession, core *game.Session, drawn []string) (*PlayState, error) {
	refilled := false
	core.Events().Subscribe(game.EventBankRefilled, func(game.Event) { refilled = true })

	if err := core.NextRound(); err != nil {
		return nil, fmt.Errorf("failed to deal next word: %w", err)
	}
	if refilled {
		drawn = nil
	}
	word := core.Puzzle().Target()
	drawn = append(drawn, word)

	roundID, err := s.playRepo.CreateRound(session.ID, word, core.Puzzle().Scrambled())
	if err != nil {
		return nil, err
	}
	session.TotalRounds++

	round := &models.Round{
		ID:        roundID,
		SessionID: session.ID,
		WordText:  word,
		Scrambled: core.Puzzle().Scrambled(),
		StartedAt: time.Now(),
	}
	state := &PlayState{Session: session, Round: round, Core: core, drawn: drawn}
	if err := s.saveSnapshot(state); err != nil {
		return nil, err
	}

	log.Debug().Str("word", word).Int64("session", session.ID).Msg("round dealt")
	return state, nil
}

// saveSnapshot persists the current puzzle occupancy and draw cycle.
func (s *PlayService) saveSnapshot(state *PlayState) error {
	return s.playRepo.SaveState(&models.RoundState{
		SessionID: state.Session.ID,
		RoundID:   state.Round.ID,
		Slots:     state.Core.Puzzle().Slots(),
		Drawn:     state.drawn,
	})
}
