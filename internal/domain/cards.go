package domain

// Suit is one of the four French suits.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// NoSuit marks the absence of a suit (empty trick lead, non-Normal hokm).
const NoSuit Suit = -1

// Suits lists all suits in the fixed enumeration order used for tie-breaks.
var Suits = [4]Suit{Spades, Hearts, Clubs, Diamonds}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	default:
		return "NoSuit"
	}
}

// Symbol returns the one-rune suit glyph for status messages.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Color groups suits into red and black for hand sorting.
type Color int

const (
	Black Color = iota
	Red
)

// SuitColor returns the color of a suit.
func SuitColor(s Suit) Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Rank is a card rank with its natural numeric value, Two=2 through Ace=14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists all ranks in ascending natural order.
var Ranks = [13]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Ten {
			return [9]string{"2", "3", "4", "5", "6", "7", "8", "9", "10"}[r-Two]
		}
		return "?"
	}
}

// Card is a single playing card; identity is the (suit, rank) pair.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// NewDeck returns the 52-card deck in fixed suit/rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// PlayerID identifies a seat, 1..4.
type PlayerID int

// NoPlayer marks the absence of a seat (unresolved trick winner).
const NoPlayer PlayerID = 0

// NextSeat returns the seat that acts after p. Play order is 1→4→3→2→1.
func NextSeat(p PlayerID) PlayerID {
	switch p {
	case 1:
		return 4
	case 4:
		return 3
	case 3:
		return 2
	default:
		return 1
	}
}

// PartnerOf returns the seat partnered with p (1&3, 2&4).
func PartnerOf(p PlayerID) PlayerID {
	return (p+1)%4 + 1
}

// Team is one of the two partnerships.
type Team int

const (
	NoTeam Team = iota
	Team1
	Team2
)

func (t Team) String() string {
	switch t {
	case Team1:
		return "Team1"
	case Team2:
		return "Team2"
	default:
		return "NoTeam"
	}
}

// Opponent returns the opposing team.
func (t Team) Opponent() Team {
	switch t {
	case Team1:
		return Team2
	case Team2:
		return Team1
	default:
		return NoTeam
	}
}

// TeamOf returns the partnership a seat belongs to: seats 1&3 are Team1,
// seats 2&4 are Team2.
func TeamOf(p PlayerID) Team {
	if p == 1 || p == 3 {
		return Team1
	}
	return Team2
}

// Player holds one seat's state within a game.
type Player struct {
	ID      PlayerID `json:"id"`
	Name    string   `json:"name"`
	Hand    []Card   `json:"hand"`
	IsHuman bool     `json:"is_human"`
	Team    Team     `json:"team"`
}

// RemoveCard returns the hand without the given card. The second return is
// false when the card was not present.
func RemoveCard(hand []Card, c Card) ([]Card, bool) {
	for i, h := range hand {
		if h == c {
			out := make([]Card, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return hand, false
}

// ContainsCard reports whether the card is present in the slice.
func ContainsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
