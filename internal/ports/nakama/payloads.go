package nakama

import (
	"hokm/internal/app"
	"hokm/internal/domain"
)

// Client request payloads, JSON encoded.

type ChooseHokmRequest struct {
	Suit domain.Suit `json:"suit"`
	Mode domain.Mode `json:"mode"`
}

type PlayCardRequest struct {
	Suit domain.Suit `json:"suit"`
	Rank domain.Rank `json:"rank"`
}

type BaamResponseRequest struct {
	Accept bool `json:"accept"`
}

type GameError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SeatInfo is the public view of one seat. Hands are never included; only
// the remaining card count.
type SeatInfo struct {
	Seat           domain.PlayerID `json:"seat"`
	Name           string          `json:"name"`
	IsHuman        bool            `json:"is_human"`
	Team           domain.Team     `json:"team"`
	CardsRemaining int             `json:"cards_remaining"`
}

// Snapshot is the full public match state broadcast after every batch of
// events. LegalMoves is filled only on the human's copy when they act next.
type Snapshot struct {
	GameID        string              `json:"game_id"`
	Phase         domain.Phase        `json:"phase"`
	Dealer        domain.PlayerID     `json:"dealer"`
	Ruler         domain.PlayerID     `json:"ruler"`
	CurrentPlayer domain.PlayerID     `json:"current_player"`
	Hokm          domain.Hokm         `json:"hokm"`
	Trick         domain.Trick        `json:"trick"`
	Scores        map[domain.Team]int `json:"scores"`
	Tricks        map[domain.Team]int `json:"tricks"`
	Seats         []SeatInfo          `json:"seats"`
	Message       string              `json:"message"`
	LegalMoves    []domain.Card       `json:"legal_moves,omitempty"`
}

// buildSnapshot assembles the public state. forSeat's legal moves are
// attached when it is that seat's turn to play.
func buildSnapshot(svc *app.Service, forSeat domain.PlayerID) Snapshot {
	g := svc.Game()
	if g == nil {
		return Snapshot{}
	}

	snap := Snapshot{
		GameID:        g.ID,
		Phase:         g.Phase,
		Dealer:        g.Dealer,
		Ruler:         g.Ruler,
		CurrentPlayer: g.CurrentPlayer,
		Hokm:          g.Hokm,
		Trick:         g.CurrentTrick,
		Scores: map[domain.Team]int{
			domain.Team1: g.Teams[domain.Team1].GameScore,
			domain.Team2: g.Teams[domain.Team2].GameScore,
		},
		Tricks: map[domain.Team]int{
			domain.Team1: g.Teams[domain.Team1].RoundTricksWon,
			domain.Team2: g.Teams[domain.Team2].RoundTricksWon,
		},
		Message: g.Message,
	}
	for _, p := range g.Players {
		snap.Seats = append(snap.Seats, SeatInfo{
			Seat:           p.ID,
			Name:           p.Name,
			IsHuman:        p.IsHuman,
			Team:           p.Team,
			CardsRemaining: len(p.Hand),
		})
	}
	if g.Phase == domain.PhaseTrickPlay && g.CurrentPlayer == forSeat {
		snap.LegalMoves = svc.LegalMoves(forSeat)
	}
	return snap
}
