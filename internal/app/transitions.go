package app

import (
	"fmt"

	"hokm/internal/domain"
)

// Tick advances the scheduler clock and fires at most one due transition.
// A pending step is dropped when its generation or phase no longer matches,
// so a reset or a human action racing the timer can never double-apply.
func (s *Service) Tick(now int64) []Event {
	s.tick = now
	p := s.pending
	if p == nil || now < p.dueTick {
		return nil
	}
	if p.generation != s.generation || s.game == nil || p.phase != s.game.Phase {
		s.pending = nil
		return nil
	}
	s.pending = nil
	return s.step()
}

func (s *Service) step() []Event {
	switch s.game.Phase {
	case domain.PhaseDealingInitial:
		return s.stepDealInitial()
	case domain.PhaseHokmSelection:
		return s.stepHokmSelectionAI()
	case domain.PhaseDealingRemaining:
		return s.stepDealRemaining()
	case domain.PhaseTrickPlay:
		return s.stepTrickPlayAI()
	case domain.PhaseTrickEvaluation:
		return s.stepTrickEvaluation()
	case domain.PhaseBaamPrompt:
		return s.stepBaamPromptAI()
	case domain.PhaseRoundEnd:
		return s.stepRoundEnd()
	case domain.PhaseRoundTransition:
		return s.stepRoundTransition()
	default:
		return nil
	}
}

// stepDealInitial deals the first 5 cards to every seat and opens hokm
// selection.
func (s *Service) stepDealInitial() []Event {
	g := s.game
	g.DealInitial()

	var events []Event
	for _, p := range g.Players {
		if p.IsHuman {
			events = append(events, Event{
				Kind:       EventHandDealt,
				Payload:    HandDealtPayload{Seat: p.ID, Hand: p.Hand},
				Recipients: []domain.PlayerID{p.ID},
			})
		}
	}

	g.Phase = domain.PhaseHokmSelection
	g.CurrentPlayer = g.Ruler
	g.Message = fmt.Sprintf("%s is choosing hokm.", g.Player(g.Ruler).Name)
	events = append(events, Event{
		Kind:    EventHokmRequested,
		Payload: HokmRequestedPayload{Ruler: g.Ruler, Message: g.Message},
	})

	if !g.Player(g.Ruler).IsHuman {
		s.schedule(s.pacing.ThinkTicks)
	}
	return events
}

func (s *Service) stepHokmSelectionAI() []Event {
	g := s.game
	h := s.brain.ChooseHokm(g.Player(g.Ruler).Hand, s.rng)
	return s.applyHokm(h)
}

// applyHokm records the trump configuration and schedules the rest of the
// deal. Shared by the human and bot paths.
func (s *Service) applyHokm(h domain.Hokm) []Event {
	g := s.game
	g.Hokm = h
	g.Phase = domain.PhaseDealingRemaining
	g.Message = fmt.Sprintf("%s chose %s.", g.Player(g.Ruler).Name, h.Label())
	s.schedule(s.pacing.DealTicks)

	return []Event{{
		Kind:    EventHokmSelected,
		Payload: HokmSelectedPayload{Ruler: g.Ruler, Hokm: h, Message: g.Message},
	}}
}

// stepDealRemaining completes the deal and starts the first trick, led by
// the ruler.
func (s *Service) stepDealRemaining() []Event {
	g := s.game
	g.DealRemaining()

	var events []Event
	for _, p := range g.Players {
		if p.IsHuman {
			events = append(events, Event{
				Kind:       EventHandDealt,
				Payload:    HandDealtPayload{Seat: p.ID, Hand: p.Hand},
				Recipients: []domain.PlayerID{p.ID},
			})
		}
	}
	return append(events, s.nextTrick(g.Ruler)...)
}

func (s *Service) stepTrickPlayAI() []Event {
	g := s.game
	seat := g.CurrentPlayer
	c, err := s.brain.ChooseCard(s.view(seat))
	if err != nil {
		return nil
	}
	return s.applyPlay(seat, c)
}

// applyPlay moves a card from the seat's hand into the trick and advances
// the turn. Shared by the human and bot paths; legality is already checked.
func (s *Service) applyPlay(seat domain.PlayerID, c domain.Card) []Event {
	g := s.game
	p := g.Player(seat)
	p.Hand, _ = domain.RemoveCard(p.Hand, c)

	if len(g.CurrentTrick.Cards) == 0 {
		g.CurrentTrick.LeadSuit = c.Suit
	} else if c.Suit != g.CurrentTrick.LeadSuit {
		g.MarkVoid(seat, g.CurrentTrick.LeadSuit)
	}
	g.CurrentTrick.Cards = append(g.CurrentTrick.Cards, domain.PlayedCard{Player: seat, Card: c})
	g.PlayedCards = append(g.PlayedCards, c)

	payload := CardPlayedPayload{Seat: seat, Card: c, TrickComplete: g.CurrentTrick.Complete()}
	if g.CurrentTrick.Complete() {
		g.CurrentPlayer = domain.NoPlayer
		g.Phase = domain.PhaseTrickEvaluation
		s.schedule(s.pacing.EvaluateTicks)
	} else {
		g.CurrentPlayer = domain.NextSeat(seat)
		payload.NextPlayer = g.CurrentPlayer
		if !g.Player(g.CurrentPlayer).IsHuman {
			s.schedule(s.pacing.PlayTicks)
		}
	}
	return []Event{{Kind: EventCardPlayed, Payload: payload}}
}

// stepTrickEvaluation resolves the completed trick and decides what the
// trick outcome means: continue the round, open the Baam prompt, end the
// round, or end the game. An active Baam attempt is judged before the
// normal round-majority check.
func (s *Service) stepTrickEvaluation() []Event {
	g := s.game
	winner, err := domain.ResolveTrick(g.CurrentTrick, g.Hokm)
	if err != nil {
		return nil
	}
	g.CurrentTrick.Winner = winner
	g.TrickHistory = append(g.TrickHistory, g.CurrentTrick)
	g.CurrentTrick = domain.NewTrick(domain.NoPlayer)
	winnerTeam := domain.TeamOf(winner)
	g.Teams[winnerTeam].RoundTricksWon++

	g.Message = fmt.Sprintf("%s takes the trick.", g.Player(winner).Name)
	events := []Event{{
		Kind: EventTrickResolved,
		Payload: TrickResolvedPayload{
			Winner:     winner,
			WinnerTeam: winnerTeam,
			Tricks:     s.tricks(),
			Message:    g.Message,
		},
	}}

	if g.BaamAttempt {
		if winnerTeam != g.RoundWinner {
			// Attempt broken. The original Kot points still stand.
			return append(events, s.endRound(g.RoundWinner, g.RoundPoints, true, true)...)
		}
		if len(g.TrickHistory) == domain.TricksPerRound {
			return append(events, s.endGameBaam()...)
		}
		return append(events, s.nextTrick(winner)...)
	}

	if roundWinner, done := g.RoundComplete(); done {
		if g.Teams[roundWinner.Opponent()].RoundTricksWon == 0 {
			return append(events, s.promptBaam(roundWinner)...)
		}
		return append(events, s.endRound(roundWinner, domain.RoundPointsDefault, false, false)...)
	}
	return append(events, s.nextTrick(winner)...)
}

// nextTrick opens a fresh trick led by the given seat.
func (s *Service) nextTrick(leader domain.PlayerID) []Event {
	g := s.game
	g.CurrentTrick = domain.NewTrick(leader)
	g.CurrentPlayer = leader
	g.Phase = domain.PhaseTrickPlay
	if !g.Player(leader).IsHuman {
		s.schedule(s.pacing.PlayTicks)
	}
	return nil
}

// promptBaam offers the shut-out winners the all-13-tricks gamble.
func (s *Service) promptBaam(winner domain.Team) []Event {
	g := s.game
	g.RoundWinner = winner
	g.RoundPoints = domain.KotPoints(winner, g.RulerTeam())
	g.Phase = domain.PhaseBaamPrompt
	g.Message = fmt.Sprintf("Kot! %s may go for all 13 tricks.", winner)

	if !s.teamHasHuman(winner) {
		s.schedule(s.pacing.ThinkTicks)
	}
	return []Event{{
		Kind:    EventBaamPrompt,
		Payload: BaamPromptPayload{Team: winner, Points: g.RoundPoints, Message: g.Message},
	}}
}

// stepBaamPromptAI lets the bot answer for an all-bot winning team, using
// the hand of the seat that took the last trick.
func (s *Service) stepBaamPromptAI() []Event {
	g := s.game
	seat := g.TrickHistory[len(g.TrickHistory)-1].Winner
	accept := s.brain.DecideBaam(g.Player(seat).Hand, g.Hokm)
	return s.applyBaamAnswer(accept)
}

// applyBaamAnswer resolves the Baam prompt. Accepting continues the round
// with the stakes raised; declining banks the Kot points immediately.
func (s *Service) applyBaamAnswer(accept bool) []Event {
	g := s.game
	if accept {
		g.BaamAttempt = true
		g.Message = fmt.Sprintf("%s goes for Baam!", g.RoundWinner)
		events := []Event{{
			Kind:    EventBaamAnswered,
			Payload: BaamAnsweredPayload{Accepted: true, Message: g.Message},
		}}
		leader := g.TrickHistory[len(g.TrickHistory)-1].Winner
		return append(events, s.nextTrick(leader)...)
	}

	g.Message = fmt.Sprintf("%s takes the Kot points.", g.RoundWinner)
	events := []Event{{
		Kind:    EventBaamAnswered,
		Payload: BaamAnsweredPayload{Accepted: false, Message: g.Message},
	}}
	return append(events, s.endRound(g.RoundWinner, g.RoundPoints, true, false)...)
}

// endRound banks the round points and schedules the game-over check.
func (s *Service) endRound(winner domain.Team, points int, kot, baam bool) []Event {
	g := s.game
	g.RoundWinner = winner
	g.RoundPoints = points
	g.Teams[winner].GameScore += points
	g.Phase = domain.PhaseRoundEnd
	g.Message = fmt.Sprintf("%s wins the round for %d point(s).", winner, points)
	s.schedule(s.pacing.RoundEndTicks)

	return []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			Winner:  winner,
			Points:  points,
			Scores:  s.scores(),
			Kot:     kot,
			Baam:    baam,
			Message: g.Message,
		},
	}}
}

// endGameBaam ends the game outright after all 13 tricks of a successful
// Baam attempt.
func (s *Service) endGameBaam() []Event {
	g := s.game
	g.Teams[g.RoundWinner].GameScore += g.RoundPoints
	g.Phase = domain.PhaseGameOver
	g.Message = fmt.Sprintf("Baam! %s sweeps all 13 tricks and wins the game.", g.RoundWinner)

	return []Event{{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			Winner:  g.RoundWinner,
			Scores:  s.scores(),
			Baam:    true,
			Message: g.Message,
		},
	}}
}

// stepRoundEnd checks the game-end condition, otherwise moves to the next
// round.
func (s *Service) stepRoundEnd() []Event {
	g := s.game
	if winner, over := g.GameWinner(); over {
		g.Phase = domain.PhaseGameOver
		g.Message = fmt.Sprintf("%s wins the game.", winner)
		return []Event{{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Winner:  winner,
				Scores:  s.scores(),
				Message: g.Message,
			},
		}}
	}
	g.Phase = domain.PhaseRoundTransition
	s.schedule(s.pacing.TransitionTicks)
	return nil
}

func (s *Service) stepRoundTransition() []Event {
	return s.startRound(s.game.NextDealer())
}

func (s *Service) teamHasHuman(t domain.Team) bool {
	for _, p := range s.game.Players {
		if p.IsHuman && p.Team == t {
			return true
		}
	}
	return false
}
