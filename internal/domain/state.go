package domain

// Phase represents the lifecycle stage of a Hokm game.
type Phase string

const (
	// PhaseInitializing is the zero state before the first deal.
	PhaseInitializing Phase = "initializing"
	// PhaseDealingInitial deals 5 cards to each seat.
	PhaseDealingInitial Phase = "dealing_initial"
	// PhaseHokmSelection waits for the Ruler to choose the trump configuration.
	PhaseHokmSelection Phase = "hokm_selection"
	// PhaseDealingRemaining deals the rest of the deck and sorts hands.
	PhaseDealingRemaining Phase = "dealing_remaining"
	// PhaseTrickPlay waits for the current seat to play a legal card.
	PhaseTrickPlay Phase = "trick_play"
	// PhaseTrickEvaluation resolves a completed trick and updates scores.
	PhaseTrickEvaluation Phase = "trick_evaluation"
	// PhaseBaamPrompt waits for the round-winning team to accept or decline
	// a Baam attempt after a Kot.
	PhaseBaamPrompt Phase = "baam_prompt"
	// PhaseRoundEnd checks the game-end condition after a round.
	PhaseRoundEnd Phase = "round_end"
	// PhaseRoundTransition computes the next dealer and starts a new round.
	PhaseRoundTransition Phase = "round_transition"
	// PhaseGameOver is terminal; only a full reset exits it.
	PhaseGameOver Phase = "game_over"
)

// TeamScore tracks one partnership's scores. GameScore persists across
// rounds; RoundTricksWon resets every round.
type TeamScore struct {
	GameScore      int `json:"game_score"`
	RoundTricksWon int `json:"round_tricks_won"`
}

// GameState is the single authoritative state value, owned exclusively by
// the orchestrator.
type GameState struct {
	ID            string
	Deck          []Card
	Players       [4]*Player
	Phase         Phase
	Dealer        PlayerID
	Ruler         PlayerID
	CurrentPlayer PlayerID
	Hokm          Hokm
	CurrentTrick  Trick
	Teams         map[Team]*TeamScore
	TrickHistory  []Trick
	VoidSuits     map[PlayerID]map[Suit]bool
	PlayedCards   []Card
	Message       string

	// Round outcome, used to coordinate the Baam negotiation.
	RoundWinner Team
	RoundPoints int
	BaamAttempt bool
}

// Player returns the seat's player record.
func (g *GameState) Player(id PlayerID) *Player {
	return g.Players[id-1]
}

// RulerTeam returns the partnership of the seat that chose hokm.
func (g *GameState) RulerTeam() Team {
	return TeamOf(g.Ruler)
}

// MarkVoid records that a seat is known to hold no cards of the suit.
func (g *GameState) MarkVoid(p PlayerID, s Suit) {
	if g.VoidSuits[p] == nil {
		g.VoidSuits[p] = make(map[Suit]bool)
	}
	g.VoidSuits[p][s] = true
}

// IsVoid reports whether a seat is known to be out of the suit.
func (g *GameState) IsVoid(p PlayerID, s Suit) bool {
	return g.VoidSuits[p][s]
}

// CardCount totals the cards across the deck, all hands, the current trick
// and the trick history. It must equal DeckSize at every phase boundary.
func (g *GameState) CardCount() int {
	n := len(g.Deck) + len(g.CurrentTrick.Cards)
	for _, p := range g.Players {
		if p != nil {
			n += len(p.Hand)
		}
	}
	for _, t := range g.TrickHistory {
		n += len(t.Cards)
	}
	return n
}

// RoundComplete reports the round winner once a team holds the trick
// majority. It is not consulted while a Baam attempt is active.
func (g *GameState) RoundComplete() (Team, bool) {
	for _, team := range []Team{Team1, Team2} {
		if g.Teams[team].RoundTricksWon >= TricksToWinRound {
			return team, true
		}
	}
	return NoTeam, false
}

// KotPoints returns the bonus for a shut-out round: the ruling side earns
// KotPointsRuler for a Kot, the defending side earns KotPointsDefender.
func KotPoints(winner, rulerTeam Team) int {
	if winner == rulerTeam {
		return KotPointsRuler
	}
	return KotPointsDefender
}

// GameWinner reports the team that has won the game: score at or above the
// target with the required margin over the opponent.
func (g *GameState) GameWinner() (Team, bool) {
	t1 := g.Teams[Team1].GameScore
	t2 := g.Teams[Team2].GameScore
	diff := t1 - t2
	if diff < 0 {
		diff = -diff
	}
	if (t1 >= TargetGameScore || t2 >= TargetGameScore) && diff >= WinMargin {
		if t1 > t2 {
			return Team1, true
		}
		return Team2, true
	}
	return NoTeam, false
}

// NextDealer returns the dealer for the following round: the previous ruler
// when the ruling side lost the round, otherwise unchanged.
func (g *GameState) NextDealer() PlayerID {
	if g.RulerTeam() == g.RoundWinner {
		return g.Dealer
	}
	return g.Ruler
}
