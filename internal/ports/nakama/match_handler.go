package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"hokm/internal/app"
	"hokm/internal/bot"
	"hokm/internal/config"
	"hokm/internal/domain"
)

// humanSeat is the seat reserved for the connected player. The other three
// seats are always bots.
const humanSeat = domain.PlayerID(1)

const matchTickRate = 10

type matchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	State string `json:"state"`
}

// MatchState holds the authoritative runtime state for the Nakama match
// handler.
type MatchState struct {
	HumanUserID string                      `json:"human_user_id"`
	Presences   map[string]runtime.Presence `json:"-"`
	Svc         *app.Service                `json:"-"`
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if path, ok := env["hokm_config_path"]; ok && path != "" {
			if err := config.LoadGameConfig(path); err != nil {
				logger.Warn("MatchInit: could not load game config: %v", err)
			}
		}
	}

	cfg := config.GetGameConfig()
	tuning := bot.DefaultTuning
	tuning.SpecialModeChance = cfg.SpecialModeChance
	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		Svc:       app.NewService(nil, &bot.HeuristicBot{Tuning: tuning}, cfg.Pacing),
	}

	labelBytes, err := json.Marshal(matchLabel{Game: "hokm", Open: 1, State: "lobby"})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, matchTickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	// One human per match; the same user may reconnect.
	if matchState.HumanUserID != "" && matchState.HumanUserID != presence.GetUserId() {
		return state, false, "match full"
	}
	return state, true, ""
}

// MatchJoin seats the human and starts the game immediately. A reconnect
// resends the current state instead.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.HumanUserID == "" {
			matchState.HumanUserID = p.GetUserId()
			events := matchState.Svc.InitializeGame(seatNames(p.GetUsername()), [4]bool{true})
			logger.Info("MatchJoin: %s seated, game %s started", p.GetUserId(), matchState.Svc.Game().ID)
			mh.updateLabel(matchState, dispatcher, logger)
			for _, ev := range events {
				mh.broadcastEvent(matchState, dispatcher, logger, ev)
			}
			continue
		}

		// Reconnect: resend the private hand and the public state.
		logger.Info("MatchJoin: %s reconnected", p.GetUserId())
		if g := matchState.Svc.Game(); g != nil {
			mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
				Kind:       app.EventHandDealt,
				Payload:    app.HandDealtPayload{Seat: humanSeat, Hand: g.Player(humanSeat).Hand},
				Recipients: []domain.PlayerID{humanSeat},
			})
		}
	}

	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave terminates the match once the human is gone; a bots-only match
// has no reason to keep running.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if p.GetUserId() == matchState.HumanUserID {
			logger.Info("MatchLeave: human %s left, terminating match", p.GetUserId())
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpNewGame:
			mh.handleNewGame(matchState, dispatcher, logger, msg)
		case OpChooseHokm:
			mh.handleChooseHokm(matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg)
		case OpBaamResponse:
			mh.handleBaamResponse(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode %d", msg.GetOpCode())
		}
	}

	events := matchState.Svc.Tick(tick)
	for _, ev := range events {
		mh.broadcastEvent(matchState, dispatcher, logger, ev)
	}
	if len(events) > 0 {
		mh.broadcastSnapshot(matchState, dispatcher, logger)
	}
	return matchState
}

// handleNewGame starts a fresh game after the previous one finished.
func (mh *matchHandler) handleNewGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.HumanUserID {
		return
	}
	g := state.Svc.Game()
	if g != nil && g.Phase != domain.PhaseGameOver {
		mh.sendError(state, dispatcher, logger, 400, "game still in progress")
		return
	}

	events := state.Svc.InitializeGame(seatNames(msg.GetUsername()), [4]bool{true})
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)
}

func (mh *matchHandler) handleChooseHokm(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.HumanUserID {
		return
	}
	var req ChooseHokmRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleChooseHokm: bad payload: %v", err)
		return
	}

	events, err := state.Svc.SubmitTrumpChoice(humanSeat, domain.Hokm{Suit: req.Suit, Mode: req.Mode})
	if err != nil {
		logger.Warn("handleChooseHokm: %v", err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)
}

func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.HumanUserID {
		return
	}
	var req PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handlePlayCard: bad payload: %v", err)
		return
	}

	events, err := state.Svc.SubmitPlay(humanSeat, domain.Card{Suit: req.Suit, Rank: req.Rank})
	if err != nil {
		logger.Warn("handlePlayCard: seat %d: %v", humanSeat, err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)
}

func (mh *matchHandler) handleBaamResponse(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.HumanUserID {
		return
	}
	var req BaamResponseRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleBaamResponse: bad payload: %v", err)
		return
	}

	events, err := state.Svc.SubmitBaamResponse(humanSeat, req.Accept)
	if err != nil {
		logger.Warn("handleBaamResponse: %v", err)
		mh.sendError(state, dispatcher, logger, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)
}

// broadcastEvent JSON-encodes an orchestrator event and dispatches it.
// Targeted events go only to connected recipients; if none of the intended
// seats are connected the message is dropped rather than broadcast.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("broadcastEvent: unknown event kind %q", ev.Kind)
		return
	}

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: failed to marshal %q: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seat := range ev.Recipients {
			if seat != humanSeat {
				continue
			}
			if p, ok := state.Presences[state.HumanUserID]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: dispatch failed: %v", err)
	}
}

func eventOpCode(k app.EventKind) (int64, bool) {
	switch k {
	case app.EventGameInitialized:
		return OpGameInitialized, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventHokmRequested:
		return OpHokmRequested, true
	case app.EventHokmSelected:
		return OpHokmSelected, true
	case app.EventCardPlayed:
		return OpCardPlayed, true
	case app.EventTrickResolved:
		return OpTrickResolved, true
	case app.EventBaamPrompt:
		return OpBaamPrompt, true
	case app.EventBaamAnswered:
		return OpBaamAnswered, true
	case app.EventRoundEnded:
		return OpRoundEnded, true
	case app.EventGameEnded:
		return OpGameEnded, true
	default:
		return 0, false
	}
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Svc.Game() == nil {
		return
	}
	data, err := json.Marshal(buildSnapshot(state.Svc, humanSeat))
	if err != nil {
		logger.Error("broadcastSnapshot: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpStateSnapshot, data, nil, nil, true); err != nil {
		logger.Error("broadcastSnapshot: dispatch failed: %v", err)
	}
}

// sendError sends a GameError to the human player.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	presence, ok := state.Presences[state.HumanUserID]
	if !ok {
		return
	}
	data, err := json.Marshal(GameError{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: dispatch failed: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	open := 1
	if state.HumanUserID != "" {
		open = 0
	}
	matchState := "lobby"
	if state.Svc.Game() != nil {
		matchState = "playing"
	}

	labelBytes, err := json.Marshal(matchLabel{Game: "hokm", Open: open, State: matchState})
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

// seatNames fills the seat roster: the human's username followed by the
// configured bot names.
func seatNames(humanName string) [4]string {
	if humanName == "" {
		humanName = "You"
	}
	ai := config.GetGameConfig().AISeatNames
	return [4]string{humanName, ai[0], ai[1], ai[2]}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
