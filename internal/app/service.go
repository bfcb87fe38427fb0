package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"hokm/internal/bot"
	"hokm/internal/config"
	"hokm/internal/domain"
)

var (
	ErrNoGame         = errors.New("no game in progress")
	ErrWrongPhase     = errors.New("action not valid in current phase")
	ErrNotYourTurn    = errors.New("not this seat's turn")
	ErrNotRuler       = errors.New("only the ruler selects hokm")
	ErrIllegalCard    = errors.New("card is not a legal play")
	ErrNotWinningTeam = errors.New("seat is not on the round-winning team")
)

// pendingStep is the single scheduled automatic transition. It is dropped
// without firing when the phase or game generation has moved on.
type pendingStep struct {
	phase      domain.Phase
	dueTick    int64
	generation uint64
}

// Service owns the game state and drives every automatic transition. One
// Service per match; callers serialize access (the Nakama match loop is
// single threaded, the simulator runs one goroutine).
type Service struct {
	rng    *rand.Rand
	brain  bot.Brain
	pacing config.Pacing

	game       *domain.GameState
	pending    *pendingStep
	generation uint64
	tick       int64
}

// NewService constructs a Service with the provided rng and brain, or
// time-seeded / default ones when nil.
func NewService(rng *rand.Rand, brain bot.Brain, pacing config.Pacing) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if brain == nil {
		brain = bot.NewBrain()
	}
	return &Service{rng: rng, brain: brain, pacing: pacing}
}

// Game exposes the current state for snapshot building. Callers must not
// mutate it.
func (s *Service) Game() *domain.GameState {
	return s.game
}

// InitializeGame starts a fresh game with zeroed scores. Seat 1 is
// conventionally the human seat but any mix works. Any scheduled transition
// from a previous game is invalidated.
func (s *Service) InitializeGame(names [4]string, humans [4]bool) []Event {
	s.generation++
	s.pending = nil

	g := &domain.GameState{
		ID:    uuid.NewString(),
		Phase: domain.PhaseInitializing,
		Teams: map[domain.Team]*domain.TeamScore{
			domain.Team1: {},
			domain.Team2: {},
		},
	}
	for i := range g.Players {
		id := domain.PlayerID(i + 1)
		g.Players[i] = &domain.Player{
			ID:      id,
			Name:    names[i],
			IsHuman: humans[i],
			Team:    domain.TeamOf(id),
		}
	}
	s.game = g

	dealer := domain.PlayerID(s.rng.Intn(4) + 1)
	return s.startRound(dealer)
}

// startRound resets per-round state and schedules the initial deal. Scores
// carry over; everything else is rebuilt.
func (s *Service) startRound(dealer domain.PlayerID) []Event {
	g := s.game
	g.Deck = domain.NewDeck()
	s.rng.Shuffle(len(g.Deck), func(i, j int) { g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i] })

	for _, p := range g.Players {
		p.Hand = nil
	}
	g.Dealer = dealer
	g.Ruler = domain.NextSeat(dealer)
	g.CurrentPlayer = domain.NoPlayer
	g.Hokm = domain.Hokm{Suit: domain.NoSuit}
	g.CurrentTrick = domain.NewTrick(domain.NoPlayer)
	g.TrickHistory = nil
	g.VoidSuits = make(map[domain.PlayerID]map[domain.Suit]bool)
	g.PlayedCards = nil
	g.RoundWinner = domain.NoTeam
	g.RoundPoints = 0
	g.BaamAttempt = false
	for _, ts := range g.Teams {
		ts.RoundTricksWon = 0
	}

	g.Phase = domain.PhaseDealingInitial
	g.Message = fmt.Sprintf("%s deals. %s will choose hokm.", g.Player(g.Dealer).Name, g.Player(g.Ruler).Name)
	s.schedule(s.pacing.DealTicks)

	return []Event{{
		Kind: EventGameInitialized,
		Payload: GameInitializedPayload{
			GameID:  g.ID,
			Dealer:  g.Dealer,
			Ruler:   g.Ruler,
			Scores:  s.scores(),
			Phase:   g.Phase,
			Message: g.Message,
		},
	}}
}

// SubmitTrumpChoice applies a human ruler's hokm selection.
func (s *Service) SubmitTrumpChoice(seat domain.PlayerID, h domain.Hokm) ([]Event, error) {
	g := s.game
	if g == nil {
		return nil, ErrNoGame
	}
	if g.Phase != domain.PhaseHokmSelection {
		return nil, ErrWrongPhase
	}
	if seat != g.Ruler {
		return nil, ErrNotRuler
	}
	if h.Mode != domain.ModeNormal {
		h.Suit = domain.NoSuit
	}
	return s.applyHokm(h), nil
}

// SubmitPlay applies a human seat's card to the current trick.
func (s *Service) SubmitPlay(seat domain.PlayerID, c domain.Card) ([]Event, error) {
	g := s.game
	if g == nil {
		return nil, ErrNoGame
	}
	if g.Phase != domain.PhaseTrickPlay {
		return nil, ErrWrongPhase
	}
	if seat != g.CurrentPlayer {
		return nil, ErrNotYourTurn
	}
	if !domain.ContainsCard(s.LegalMoves(seat), c) {
		return nil, ErrIllegalCard
	}
	return s.applyPlay(seat, c), nil
}

// SubmitBaamResponse answers the all-13-tricks prompt. Any seat on the
// round-winning team may answer.
func (s *Service) SubmitBaamResponse(seat domain.PlayerID, accept bool) ([]Event, error) {
	g := s.game
	if g == nil {
		return nil, ErrNoGame
	}
	if g.Phase != domain.PhaseBaamPrompt {
		return nil, ErrWrongPhase
	}
	if domain.TeamOf(seat) != g.RoundWinner {
		return nil, ErrNotWinningTeam
	}
	return s.applyBaamAnswer(accept), nil
}

// LegalMoves returns the cards the seat may play into the current trick.
func (s *Service) LegalMoves(seat domain.PlayerID) []domain.Card {
	g := s.game
	if g == nil || seat < 1 || seat > 4 {
		return nil
	}
	return domain.LegalMoves(g.Player(seat).Hand, g.CurrentTrick.LeadSuit)
}

// schedule arms the pending transition for the current phase and generation.
func (s *Service) schedule(delay int) {
	s.pending = &pendingStep{
		phase:      s.game.Phase,
		dueTick:    s.tick + int64(delay),
		generation: s.generation,
	}
}

// scores copies the per-team game scores for event payloads.
func (s *Service) scores() map[domain.Team]int {
	return map[domain.Team]int{
		domain.Team1: s.game.Teams[domain.Team1].GameScore,
		domain.Team2: s.game.Teams[domain.Team2].GameScore,
	}
}

// tricks copies the per-team trick counts for event payloads.
func (s *Service) tricks() map[domain.Team]int {
	return map[domain.Team]int{
		domain.Team1: s.game.Teams[domain.Team1].RoundTricksWon,
		domain.Team2: s.game.Teams[domain.Team2].RoundTricksWon,
	}
}

// view assembles the information a deciding seat is allowed to see.
func (s *Service) view(seat domain.PlayerID) bot.View {
	g := s.game
	return bot.View{
		Seat:        seat,
		Hand:        g.Player(seat).Hand,
		Legal:       s.LegalMoves(seat),
		Hokm:        g.Hokm,
		Trick:       g.CurrentTrick,
		PlayedCards: g.PlayedCards,
		RulerTeam:   g.RulerTeam(),
		VoidSuits:   g.VoidSuits,
	}
}
