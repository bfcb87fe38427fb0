package domain

import "errors"

// ErrIncompleteTrick is returned when a trick is resolved before it holds a
// card from every seat.
var ErrIncompleteTrick = errors.New("trick is not complete")

// LegalMoves returns the subset of the hand that may legally be played given
// the trick's lead suit. Opening a trick (lead == NoSuit) everything is
// legal; otherwise the player must follow suit when able.
func LegalMoves(hand []Card, lead Suit) []Card {
	if lead == NoSuit {
		return hand
	}
	var follow []Card
	for _, c := range hand {
		if c.Suit == lead {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}
	return hand
}

// PlayedCard pairs a card with the seat that played it.
type PlayedCard struct {
	Player PlayerID `json:"player"`
	Card   Card     `json:"card"`
}

// Trick is one card from each seat in play order. LeadSuit is set by the
// first card; Winner is set after resolution.
type Trick struct {
	Cards    []PlayedCard `json:"cards"`
	LeadSuit Suit         `json:"lead_suit"`
	Starter  PlayerID     `json:"starter"`
	Winner   PlayerID     `json:"winner"`
}

// NewTrick returns an empty trick led by the given seat.
func NewTrick(starter PlayerID) Trick {
	return Trick{LeadSuit: NoSuit, Starter: starter, Winner: NoPlayer}
}

// Complete reports whether all four seats have played.
func (t Trick) Complete() bool {
	return len(t.Cards) == 4
}

// WinningPlay returns the play currently holding the trick, or false when
// the trick is empty.
func (t Trick) WinningPlay(h Hokm) (PlayedCard, bool) {
	if len(t.Cards) == 0 {
		return PlayedCard{}, false
	}
	best := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if CardValue(pc.Card, t.LeadSuit, h) > CardValue(best.Card, t.LeadSuit, h) {
			best = pc
		}
	}
	return best, true
}

// ResolveTrick determines a completed trick's winner. Values derive from
// distinct (suit, rank) pairs under a total order, so the maximum is unique.
func ResolveTrick(t Trick, h Hokm) (PlayerID, error) {
	if !t.Complete() {
		return NoPlayer, ErrIncompleteTrick
	}
	best, _ := t.WinningPlay(h)
	return best.Player, nil
}
