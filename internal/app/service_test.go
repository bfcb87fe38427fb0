package app

import (
	"math/rand"
	"testing"

	"hokm/internal/config"
	"hokm/internal/domain"
)

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)), nil, config.ZeroPacing)
}

var botNames = [4]string{"A", "B", "C", "D"}

// testGame builds a minimal all-bot state for white-box phase tests.
func testGame() *domain.GameState {
	g := &domain.GameState{
		ID:    "test",
		Phase: domain.PhaseTrickPlay,
		Teams: map[domain.Team]*domain.TeamScore{
			domain.Team1: {},
			domain.Team2: {},
		},
		VoidSuits: make(map[domain.PlayerID]map[domain.Suit]bool),
		Hokm:      domain.Hokm{Suit: domain.Spades, Mode: domain.ModeNormal},
	}
	for i := range g.Players {
		id := domain.PlayerID(i + 1)
		g.Players[i] = &domain.Player{ID: id, Name: botNames[i], Team: domain.TeamOf(id)}
	}
	return g
}

func completedTrick(lead domain.Suit, plays ...domain.PlayedCard) domain.Trick {
	return domain.Trick{Cards: plays, LeadSuit: lead, Starter: plays[0].Player}
}

func TestBotGameRunsToCompletion(t *testing.T) {
	svc := newTestService(42)
	svc.InitializeGame(botNames, [4]bool{})

	var ended int
	var final GameEndedPayload
	for tick := int64(1); tick < 100000; tick++ {
		for _, ev := range svc.Tick(tick) {
			if ev.Kind == EventGameEnded {
				ended++
				final = ev.Payload.(GameEndedPayload)
			}
		}
		g := svc.Game()
		if g.Phase == domain.PhaseTrickPlay && g.CardCount() != domain.DeckSize {
			t.Fatalf("card count = %d at tick %d, want %d", g.CardCount(), tick, domain.DeckSize)
		}
		if g.Phase == domain.PhaseGameOver {
			break
		}
	}

	if svc.Game().Phase != domain.PhaseGameOver {
		t.Fatalf("game did not finish, phase = %s", svc.Game().Phase)
	}
	if ended != 1 {
		t.Fatalf("game ended events = %d, want 1", ended)
	}
	if final.Winner == domain.NoTeam {
		t.Fatal("game ended without a winner")
	}
	if !final.Baam {
		winnerScore := final.Scores[final.Winner]
		loserScore := final.Scores[final.Winner.Opponent()]
		if winnerScore < domain.TargetGameScore || winnerScore-loserScore < domain.WinMargin {
			t.Fatalf("scores %v do not satisfy the win condition", final.Scores)
		}
	}
}

func TestHumanHokmSelection(t *testing.T) {
	svc := newTestService(7)
	svc.InitializeGame(botNames, [4]bool{true, true, true, true})

	for tick := int64(1); svc.Game().Phase != domain.PhaseHokmSelection; tick++ {
		svc.Tick(tick)
		if tick > 100 {
			t.Fatal("never reached hokm selection")
		}
	}

	g := svc.Game()
	other := domain.NextSeat(g.Ruler)
	if _, err := svc.SubmitTrumpChoice(other, domain.Hokm{Suit: domain.Hearts}); err != ErrNotRuler {
		t.Fatalf("non-ruler choice error = %v, want ErrNotRuler", err)
	}

	evs, err := svc.SubmitTrumpChoice(g.Ruler, domain.Hokm{Suit: domain.Hearts, Mode: domain.ModeNormal})
	if err != nil {
		t.Fatalf("ruler choice: %v", err)
	}
	if g.Phase != domain.PhaseDealingRemaining {
		t.Fatalf("phase = %s, want dealing_remaining", g.Phase)
	}
	if len(evs) != 1 || evs[0].Kind != EventHokmSelected {
		t.Fatalf("events = %v, want one hokm_selected", evs)
	}
	if g.Hokm.Suit != domain.Hearts {
		t.Fatalf("hokm = %v, want hearts", g.Hokm)
	}
}

func TestSubmitTrumpChoiceClearsSuitForSpecialModes(t *testing.T) {
	svc := newTestService(7)
	svc.InitializeGame(botNames, [4]bool{true, true, true, true})
	for tick := int64(1); svc.Game().Phase != domain.PhaseHokmSelection; tick++ {
		svc.Tick(tick)
		if tick > 100 {
			t.Fatal("never reached hokm selection")
		}
	}

	g := svc.Game()
	if _, err := svc.SubmitTrumpChoice(g.Ruler, domain.Hokm{Suit: domain.Clubs, Mode: domain.ModeNars}); err != nil {
		t.Fatalf("choice: %v", err)
	}
	if g.Hokm.Suit != domain.NoSuit {
		t.Fatalf("suit = %v, want NoSuit for a special mode", g.Hokm.Suit)
	}
}

func TestSubmitPlayValidation(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.CurrentPlayer = 1
	g.CurrentTrick = domain.Trick{LeadSuit: domain.Hearts, Starter: 4, Cards: []domain.PlayedCard{
		{Player: 4, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Ten}},
	}}
	g.Player(1).Hand = []domain.Card{
		{Suit: domain.Hearts, Rank: domain.Five},
		{Suit: domain.Clubs, Rank: domain.King},
	}
	svc.game = g

	if _, err := svc.SubmitPlay(2, domain.Card{Suit: domain.Hearts, Rank: domain.Five}); err != ErrNotYourTurn {
		t.Fatalf("wrong seat error = %v, want ErrNotYourTurn", err)
	}
	if _, err := svc.SubmitPlay(1, domain.Card{Suit: domain.Clubs, Rank: domain.King}); err != ErrIllegalCard {
		t.Fatalf("off-suit error = %v, want ErrIllegalCard", err)
	}

	evs, err := svc.SubmitPlay(1, domain.Card{Suit: domain.Hearts, Rank: domain.Five})
	if err != nil {
		t.Fatalf("legal play: %v", err)
	}
	if len(evs) != 1 || evs[0].Kind != EventCardPlayed {
		t.Fatalf("events = %v, want one card_played", evs)
	}
	if len(g.Player(1).Hand) != 1 {
		t.Fatalf("hand size = %d, want 1", len(g.Player(1).Hand))
	}
	if g.CurrentPlayer != domain.NextSeat(1) {
		t.Fatalf("current player = %d, want %d", g.CurrentPlayer, domain.NextSeat(1))
	}
}

func TestVoidMarkedOnOffSuitPlay(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.CurrentPlayer = 1
	g.CurrentTrick = domain.Trick{LeadSuit: domain.Hearts, Starter: 4, Cards: []domain.PlayedCard{
		{Player: 4, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Ten}},
	}}
	g.Player(1).Hand = []domain.Card{{Suit: domain.Clubs, Rank: domain.King}}
	svc.game = g

	if _, err := svc.SubmitPlay(1, domain.Card{Suit: domain.Clubs, Rank: domain.King}); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !g.IsVoid(1, domain.Hearts) {
		t.Fatal("seat 1 should be marked void in hearts")
	}
}

func TestStaleTransitionDropped(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.Phase = domain.PhaseHokmSelection
	svc.game = g

	svc.pending = &pendingStep{phase: domain.PhaseTrickPlay, dueTick: 0, generation: svc.generation}
	if evs := svc.Tick(10); evs != nil {
		t.Fatalf("mismatched pending fired events: %v", evs)
	}
	if svc.pending != nil {
		t.Fatal("mismatched pending should be discarded")
	}

	svc.pending = &pendingStep{phase: g.Phase, dueTick: 0, generation: svc.generation + 1}
	if evs := svc.Tick(20); evs != nil {
		t.Fatalf("stale-generation pending fired events: %v", evs)
	}
}

func TestKotOpensBaamPrompt(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.Ruler = 1
	g.Teams[domain.Team1].RoundTricksWon = 6
	g.TrickHistory = make([]domain.Trick, 6)
	g.Phase = domain.PhaseTrickEvaluation
	g.CurrentTrick = completedTrick(domain.Hearts,
		domain.PlayedCard{Player: 1, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Ace}},
		domain.PlayedCard{Player: 4, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Two}},
		domain.PlayedCard{Player: 3, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Three}},
		domain.PlayedCard{Player: 2, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Four}},
	)
	svc.game = g

	evs := svc.stepTrickEvaluation()
	if g.Phase != domain.PhaseBaamPrompt {
		t.Fatalf("phase = %s, want baam_prompt", g.Phase)
	}
	if g.RoundWinner != domain.Team1 || g.RoundPoints != domain.KotPointsRuler {
		t.Fatalf("round outcome = %v/%d, want Team1/%d", g.RoundWinner, g.RoundPoints, domain.KotPointsRuler)
	}
	found := false
	for _, ev := range evs {
		if ev.Kind == EventBaamPrompt {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a baam_prompt event")
	}

	// Declining banks the Kot points and ends the round.
	if _, err := svc.SubmitBaamResponse(2, false); err != ErrNotWinningTeam {
		t.Fatalf("losing-team answer error = %v, want ErrNotWinningTeam", err)
	}
	if _, err := svc.SubmitBaamResponse(1, false); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if g.Phase != domain.PhaseRoundEnd {
		t.Fatalf("phase = %s, want round_end", g.Phase)
	}
	if got := g.Teams[domain.Team1].GameScore; got != domain.KotPointsRuler {
		t.Fatalf("score = %d, want %d", got, domain.KotPointsRuler)
	}
}

func TestDefenderKotScoresThree(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.Ruler = 2
	g.Teams[domain.Team1].RoundTricksWon = 6
	g.TrickHistory = make([]domain.Trick, 6)
	g.Phase = domain.PhaseTrickEvaluation
	g.CurrentTrick = completedTrick(domain.Hearts,
		domain.PlayedCard{Player: 1, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Ace}},
		domain.PlayedCard{Player: 4, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Two}},
		domain.PlayedCard{Player: 3, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Three}},
		domain.PlayedCard{Player: 2, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Four}},
	)
	svc.game = g

	svc.stepTrickEvaluation()
	if g.RoundPoints != domain.KotPointsDefender {
		t.Fatalf("points = %d, want %d for a defender Kot", g.RoundPoints, domain.KotPointsDefender)
	}
}

func TestBaamFailureAwardsOriginalPoints(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.Ruler = 1
	g.BaamAttempt = true
	g.RoundWinner = domain.Team1
	g.RoundPoints = domain.KotPointsRuler
	g.Teams[domain.Team1].RoundTricksWon = 9
	g.TrickHistory = make([]domain.Trick, 9)
	g.Phase = domain.PhaseTrickEvaluation
	g.CurrentTrick = completedTrick(domain.Hearts,
		domain.PlayedCard{Player: 1, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Two}},
		domain.PlayedCard{Player: 4, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Ace}},
		domain.PlayedCard{Player: 3, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Three}},
		domain.PlayedCard{Player: 2, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Four}},
	)
	svc.game = g

	evs := svc.stepTrickEvaluation()
	if g.Phase != domain.PhaseRoundEnd {
		t.Fatalf("phase = %s, want round_end", g.Phase)
	}
	if got := g.Teams[domain.Team1].GameScore; got != domain.KotPointsRuler {
		t.Fatalf("score = %d, want the original Kot points %d", got, domain.KotPointsRuler)
	}
	var ended *RoundEndedPayload
	for _, ev := range evs {
		if ev.Kind == EventRoundEnded {
			p := ev.Payload.(RoundEndedPayload)
			ended = &p
		}
	}
	if ended == nil {
		t.Fatal("expected a round_ended event")
	}
	if !ended.Kot || !ended.Baam || ended.Winner != domain.Team1 {
		t.Fatalf("round_ended = %+v, want Team1 with kot and baam flags", ended)
	}
}

func TestBaamSuccessEndsGame(t *testing.T) {
	svc := newTestService(1)
	g := testGame()
	g.Ruler = 1
	g.BaamAttempt = true
	g.RoundWinner = domain.Team1
	g.RoundPoints = domain.KotPointsRuler
	g.Teams[domain.Team1].RoundTricksWon = 12
	g.TrickHistory = make([]domain.Trick, 12)
	g.Phase = domain.PhaseTrickEvaluation
	g.CurrentTrick = completedTrick(domain.Hearts,
		domain.PlayedCard{Player: 1, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Ace}},
		domain.PlayedCard{Player: 4, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Two}},
		domain.PlayedCard{Player: 3, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Three}},
		domain.PlayedCard{Player: 2, Card: domain.Card{Suit: domain.Hearts, Rank: domain.Four}},
	)
	svc.game = g

	evs := svc.stepTrickEvaluation()
	if g.Phase != domain.PhaseGameOver {
		t.Fatalf("phase = %s, want game_over", g.Phase)
	}
	var ended *GameEndedPayload
	for _, ev := range evs {
		if ev.Kind == EventGameEnded {
			p := ev.Payload.(GameEndedPayload)
			ended = &p
		}
	}
	if ended == nil {
		t.Fatal("expected a game_ended event")
	}
	if !ended.Baam || ended.Winner != domain.Team1 {
		t.Fatalf("game_ended = %+v, want a Team1 baam win", ended)
	}
}

func TestInitializeGameInvalidatesPending(t *testing.T) {
	svc := newTestService(3)
	svc.InitializeGame(botNames, [4]bool{})
	gen := svc.generation

	svc.InitializeGame(botNames, [4]bool{})
	if svc.generation != gen+1 {
		t.Fatalf("generation = %d, want %d", svc.generation, gen+1)
	}
	if svc.pending == nil || svc.pending.generation != svc.generation {
		t.Fatal("new game should re-arm the schedule for the new generation")
	}
}
