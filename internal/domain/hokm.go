package domain

// Mode is the ranking mode chosen for a round. Normal uses a trump suit;
// the other three replace the trump mechanic entirely.
type Mode int

const (
	// ModeNormal ranks cards naturally with a trump suit.
	ModeNormal Mode = iota
	// ModeNars inverts the rank order completely: Ace lowest, Two highest.
	ModeNars
	// ModeAceNars inverts everything except the Ace, which stays highest.
	ModeAceNars
	// ModeSar scores lead-suit cards only; there is no trump.
	ModeSar
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeNars:
		return "Nars"
	case ModeAceNars:
		return "AceNars"
	case ModeSar:
		return "Sar"
	default:
		return "Unknown"
	}
}

// Hokm is the trump configuration for a round, chosen once by the Ruler.
// Suit is set only when Mode is ModeNormal; otherwise it is NoSuit.
type Hokm struct {
	Suit Suit `json:"suit"`
	Mode Mode `json:"mode"`
}

// Label returns a short display form for status messages.
func (h Hokm) Label() string {
	if h.Mode == ModeNormal {
		return h.Suit.Symbol()
	}
	return h.Mode.String()
}

// RankValue maps a rank to its ordering number under the given mode.
// Normal/Sar use the natural 2..14 order; Nars inverts it fully (Ace=1,
// Two=13); AceNars inverts all ranks below the Ace (King=1 .. Two=12) and
// restores the Ace to the top (13).
func RankValue(r Rank, m Mode) int {
	switch m {
	case ModeNars:
		return 15 - int(r)
	case ModeAceNars:
		if r == Ace {
			return 13
		}
		return 14 - int(r)
	default:
		return int(r)
	}
}

// CardValue computes a card's trick strength under the active hokm
// configuration and the trick's lead suit. In Sar mode only lead-suit cards
// score. Otherwise a trump card scores rank+100, a lead-suit card scores its
// rank number, and everything else scores 0, so trump beats any lead-suit
// card, which beats any off-suit card.
func CardValue(c Card, lead Suit, h Hokm) int {
	rv := RankValue(c.Rank, h.Mode)

	if h.Mode == ModeSar {
		if c.Suit == lead {
			return rv
		}
		return 0
	}

	if h.Mode == ModeNormal && c.Suit == h.Suit {
		return rv + 100
	}
	if c.Suit == lead {
		return rv
	}
	return 0
}
