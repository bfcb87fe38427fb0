package bot

// Tuning holds the thresholds of the heuristic strategy.
type Tuning struct {
	// SpecialModeChance is the probability of choosing a non-suit hokm mode.
	SpecialModeChance float64
	// SuitCountWeight weights suit length against suit strength when
	// picking a Normal trump suit.
	SuitCountWeight int
	// TrumpsSeenLimit stops trump-drawing leads once this many trump cards
	// have been seen on the table.
	TrumpsSeenLimit int
	// BaamHighCardMin is the minimum count of high cards (trump Q/K/A plus
	// off-trump Aces) needed to accept a Baam attempt.
	BaamHighCardMin int
}

// DefaultTuning mirrors the thresholds the game was balanced with.
var DefaultTuning = Tuning{
	SpecialModeChance: 0.08,
	SuitCountWeight:   3,
	TrumpsSeenLimit:   5,
	BaamHighCardMin:   4,
}
