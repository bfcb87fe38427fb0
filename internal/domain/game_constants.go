package domain

// Numeric rule constants for Hokm. Centralized so tests and the simulator can
// reference the same thresholds as the engine.
const (
	// DeckSize is the number of cards in play.
	DeckSize = 52
	// InitialDealCount is how many cards are dealt before hokm selection
	// (5 per seat).
	InitialDealCount = 20
	// TricksPerRound is the number of tricks in a full round.
	TricksPerRound = 13
	// TricksToWinRound is the majority needed to take a round.
	TricksToWinRound = 7
	// TargetGameScore is the score a team must reach to win the game.
	TargetGameScore = 7
	// WinMargin is the minimum lead required at or above the target score.
	WinMargin = 2
	// KotPointsRuler is awarded when the ruling side shuts out the defenders.
	KotPointsRuler = 2
	// KotPointsDefender is awarded when the defending side shuts out the rulers.
	KotPointsDefender = 3
	// RoundPointsDefault is awarded for an ordinary round win.
	RoundPointsDefault = 1
)
