package app

import "hokm/internal/domain"

// EventKind identifies emitted match events for transport dispatch.
type EventKind string

const (
	EventGameInitialized EventKind = "game_initialized"
	EventHandDealt       EventKind = "hand_dealt"
	EventHokmRequested   EventKind = "hokm_requested"
	EventHokmSelected    EventKind = "hokm_selected"
	EventCardPlayed      EventKind = "card_played"
	EventTrickResolved   EventKind = "trick_resolved"
	EventBaamPrompt      EventKind = "baam_prompt"
	EventBaamAnswered    EventKind = "baam_answered"
	EventRoundEnded      EventKind = "round_ended"
	EventGameEnded       EventKind = "game_ended"
)

// Event is an orchestrator event with optional targeted recipients.
type Event struct {
	Kind    EventKind
	Payload any
	// Recipients are seats; empty means broadcast. Hands are only ever
	// sent to their own seat.
	Recipients []domain.PlayerID
}

type GameInitializedPayload struct {
	GameID  string              `json:"game_id"`
	Dealer  domain.PlayerID     `json:"dealer"`
	Ruler   domain.PlayerID     `json:"ruler"`
	Scores  map[domain.Team]int `json:"scores"`
	Phase   domain.Phase        `json:"phase"`
	Message string              `json:"message"`
}

type HandDealtPayload struct {
	Seat domain.PlayerID `json:"seat"`
	Hand []domain.Card   `json:"hand"`
}

type HokmRequestedPayload struct {
	Ruler   domain.PlayerID `json:"ruler"`
	Message string          `json:"message"`
}

type HokmSelectedPayload struct {
	Ruler   domain.PlayerID `json:"ruler"`
	Hokm    domain.Hokm     `json:"hokm"`
	Message string          `json:"message"`
}

type CardPlayedPayload struct {
	Seat          domain.PlayerID `json:"seat"`
	Card          domain.Card     `json:"card"`
	NextPlayer    domain.PlayerID `json:"next_player"`
	TrickComplete bool            `json:"trick_complete"`
}

type TrickResolvedPayload struct {
	Winner     domain.PlayerID     `json:"winner"`
	WinnerTeam domain.Team         `json:"winner_team"`
	Tricks     map[domain.Team]int `json:"tricks"`
	Message    string              `json:"message"`
}

type BaamPromptPayload struct {
	Team    domain.Team `json:"team"`
	Points  int         `json:"points"`
	Message string      `json:"message"`
}

type BaamAnsweredPayload struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

type RoundEndedPayload struct {
	Winner  domain.Team         `json:"winner"`
	Points  int                 `json:"points"`
	Scores  map[domain.Team]int `json:"scores"`
	Kot     bool                `json:"kot"`
	Baam    bool                `json:"baam"`
	Message string              `json:"message"`
}

type GameEndedPayload struct {
	Winner  domain.Team         `json:"winner"`
	Scores  map[domain.Team]int `json:"scores"`
	Baam    bool                `json:"baam"`
	Message string              `json:"message"`
}
