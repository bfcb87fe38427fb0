package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a match.
	RpcQuickMatch = "hokm_quick_match"

	// MatchNameHokm is the authoritative match handler name registered with Nakama.
	MatchNameHokm = "hokm_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpNewGame      int64 = 1
	OpChooseHokm   int64 = 2
	OpPlayCard     int64 = 3
	OpBaamResponse int64 = 4

	// Server -> Client
	OpStateSnapshot   int64 = 100
	OpGameInitialized int64 = 101
	OpHandDealt       int64 = 102 // sent privately
	OpHokmRequested   int64 = 103
	OpHokmSelected    int64 = 104
	OpCardPlayed      int64 = 105
	OpTrickResolved   int64 = 106
	OpBaamPrompt      int64 = 107
	OpBaamAnswered    int64 = 108
	OpRoundEnded      int64 = 109
	OpGameEnded       int64 = 110
	OpGameError       int64 = 111
)
