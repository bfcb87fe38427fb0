package domain

import "testing"

func newRoundState(dealer PlayerID) *GameState {
	g := &GameState{
		Deck:   NewDeck(),
		Phase:  PhaseDealingInitial,
		Dealer: dealer,
		Ruler:  NextSeat(dealer),
		Teams: map[Team]*TeamScore{
			Team1: {},
			Team2: {},
		},
		VoidSuits: make(map[PlayerID]map[Suit]bool),
	}
	for i := 0; i < 4; i++ {
		id := PlayerID(i + 1)
		g.Players[i] = &Player{ID: id, Team: TeamOf(id)}
	}
	return g
}

func TestDealInitial(t *testing.T) {
	g := newRoundState(2)
	g.DealInitial()

	if len(g.Deck) != DeckSize-InitialDealCount {
		t.Fatalf("deck remainder = %d, want %d", len(g.Deck), DeckSize-InitialDealCount)
	}
	for _, p := range g.Players {
		if len(p.Hand) != 5 {
			t.Errorf("player %d has %d cards, want 5", p.ID, len(p.Hand))
		}
	}
	if g.CardCount() != DeckSize {
		t.Errorf("card conservation broken: %d", g.CardCount())
	}
}

func TestDealRemaining(t *testing.T) {
	g := newRoundState(1)
	g.DealInitial()
	g.Hokm = Hokm{Suit: Hearts, Mode: ModeNormal}
	g.DealRemaining()

	if len(g.Deck) != 0 {
		t.Fatalf("deck remainder = %d, want 0", len(g.Deck))
	}
	for _, p := range g.Players {
		if len(p.Hand) != TricksPerRound {
			t.Errorf("player %d has %d cards, want %d", p.ID, len(p.Hand), TricksPerRound)
		}
	}
	if g.CardCount() != DeckSize {
		t.Errorf("card conservation broken: %d", g.CardCount())
	}
}

func TestSuitOrder(t *testing.T) {
	tests := []struct {
		name  string
		trump Suit
		want  []Suit
	}{
		{
			name:  "NoTrumpUsesFixedOrder",
			trump: NoSuit,
			want:  []Suit{Spades, Hearts, Clubs, Diamonds},
		},
		{
			name:  "BlackTrumpAlternatesColors",
			trump: Spades,
			want:  []Suit{Spades, Hearts, Clubs, Diamonds},
		},
		{
			name:  "RedTrumpAlternatesColors",
			trump: Hearts,
			want:  []Suit{Hearts, Spades, Diamonds, Clubs},
		},
		{
			name:  "DiamondsTrump",
			trump: Diamonds,
			want:  []Suit{Diamonds, Spades, Hearts, Clubs},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuitOrder(tt.trump)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SuitOrder(%v) = %v, want %v", tt.trump, got, tt.want)
				}
			}
		})
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{
		{Suit: Clubs, Rank: Two},
		{Suit: Hearts, Rank: Ace},
		{Suit: Hearts, Rank: Three},
		{Suit: Spades, Rank: King},
		{Suit: Clubs, Rank: Nine},
	}
	SortHand(hand, Hearts)

	want := []Card{
		{Suit: Hearts, Rank: Ace},
		{Suit: Hearts, Rank: Three},
		{Suit: Spades, Rank: King},
		{Suit: Clubs, Rank: Nine},
		{Suit: Clubs, Rank: Two},
	}
	for i := range want {
		if hand[i] != want[i] {
			t.Fatalf("SortHand = %v, want %v", hand, want)
		}
	}
}
