package bot

import (
	"math/rand"

	"hokm/internal/domain"
)

// View is the information legitimately visible to a deciding seat: its own
// hand, the public trick and played-card history, and public inference such
// as known void suits. It never includes another seat's hand.
type View struct {
	Seat        domain.PlayerID
	Hand        []domain.Card
	Legal       []domain.Card
	Hokm        domain.Hokm
	Trick       domain.Trick
	PlayedCards []domain.Card
	RulerTeam   domain.Team
	VoidSuits   map[domain.PlayerID]map[domain.Suit]bool
}

// Team returns the deciding seat's partnership.
func (v View) Team() domain.Team {
	return domain.TeamOf(v.Seat)
}

// Partner returns the deciding seat's partner.
func (v View) Partner() domain.PlayerID {
	return domain.PartnerOf(v.Seat)
}

// Brain is the decision interface all bot strategies implement.
type Brain interface {
	// ChooseHokm picks the trump configuration for the round.
	ChooseHokm(hand []domain.Card, rng *rand.Rand) domain.Hokm
	// ChooseCard picks a card from v.Legal. It errors only when no rule
	// fires, which cannot happen for a non-empty legal set.
	ChooseCard(v View) (domain.Card, error)
	// DecideBaam answers the all-13-tricks prompt after a Kot.
	DecideBaam(hand []domain.Card, hokm domain.Hokm) bool
}

// NewBrain returns the default heuristic strategy.
func NewBrain() Brain {
	return &HeuristicBot{Tuning: DefaultTuning}
}
