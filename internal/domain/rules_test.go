package domain

import "testing"

func TestLegalMoves(t *testing.T) {
	hand := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Spades, Rank: King},
		{Suit: Hearts, Rank: Ace},
	}

	tests := []struct {
		name string
		lead Suit
		want []Card
	}{
		{
			name: "NoLeadSuitReturnsWholeHand",
			lead: NoSuit,
			want: hand,
		},
		{
			name: "MustFollowSuit",
			lead: Hearts,
			want: []Card{{Suit: Hearts, Rank: Ace}},
		},
		{
			name: "VoidInLeadSuitAnythingGoes",
			lead: Diamonds,
			want: hand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LegalMoves(hand, tt.lead)
			if len(got) != len(tt.want) {
				t.Fatalf("LegalMoves() returned %d cards, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("LegalMoves()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveTrick(t *testing.T) {
	tests := []struct {
		name  string
		trick Trick
		hokm  Hokm
		want  PlayerID
	}{
		{
			name: "HighestTrumpWins",
			hokm: Hokm{Suit: Spades, Mode: ModeNormal},
			trick: Trick{
				LeadSuit: Spades,
				Cards: []PlayedCard{
					{Player: 1, Card: Card{Suit: Spades, Rank: Two}},
					{Player: 4, Card: Card{Suit: Spades, Rank: King}},
					{Player: 3, Card: Card{Suit: Hearts, Rank: Ace}},
					{Player: 2, Card: Card{Suit: Spades, Rank: Three}},
				},
			},
			want: 4,
		},
		{
			name: "TrumpBeatsLeadAce",
			hokm: Hokm{Suit: Clubs, Mode: ModeNormal},
			trick: Trick{
				LeadSuit: Hearts,
				Cards: []PlayedCard{
					{Player: 1, Card: Card{Suit: Hearts, Rank: Ace}},
					{Player: 4, Card: Card{Suit: Hearts, Rank: Ten}},
					{Player: 3, Card: Card{Suit: Clubs, Rank: Two}},
					{Player: 2, Card: Card{Suit: Hearts, Rank: King}},
				},
			},
			want: 3,
		},
		{
			name: "SarIgnoresOffLeadEntirely",
			hokm: Hokm{Suit: NoSuit, Mode: ModeSar},
			trick: Trick{
				LeadSuit: Diamonds,
				Cards: []PlayedCard{
					{Player: 1, Card: Card{Suit: Diamonds, Rank: Seven}},
					{Player: 4, Card: Card{Suit: Spades, Rank: Ace}},
					{Player: 3, Card: Card{Suit: Diamonds, Rank: Jack}},
					{Player: 2, Card: Card{Suit: Hearts, Rank: Ace}},
				},
			},
			want: 3,
		},
		{
			name: "NarsLowRankTakesTrick",
			hokm: Hokm{Suit: NoSuit, Mode: ModeNars},
			trick: Trick{
				LeadSuit: Hearts,
				Cards: []PlayedCard{
					{Player: 1, Card: Card{Suit: Hearts, Rank: Ace}},
					{Player: 4, Card: Card{Suit: Hearts, Rank: Three}},
					{Player: 3, Card: Card{Suit: Hearts, Rank: King}},
					{Player: 2, Card: Card{Suit: Hearts, Rank: Jack}},
				},
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTrick(tt.trick, tt.hokm)
			if err != nil {
				t.Fatalf("ResolveTrick() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveTrick() = player %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveTrickIncomplete(t *testing.T) {
	trick := Trick{
		LeadSuit: Spades,
		Cards: []PlayedCard{
			{Player: 1, Card: Card{Suit: Spades, Rank: Two}},
		},
	}
	if _, err := ResolveTrick(trick, Hokm{Suit: Spades, Mode: ModeNormal}); err != ErrIncompleteTrick {
		t.Fatalf("expected ErrIncompleteTrick, got %v", err)
	}
}

func TestWinningPlayTracksCurrentBest(t *testing.T) {
	hokm := Hokm{Suit: Spades, Mode: ModeNormal}
	trick := Trick{
		LeadSuit: Hearts,
		Cards: []PlayedCard{
			{Player: 1, Card: Card{Suit: Hearts, Rank: Queen}},
			{Player: 4, Card: Card{Suit: Spades, Rank: Four}},
		},
	}
	best, ok := trick.WinningPlay(hokm)
	if !ok {
		t.Fatal("expected a winning play for a non-empty trick")
	}
	if best.Player != 4 {
		t.Errorf("WinningPlay() = player %d, want 4 (small trump)", best.Player)
	}
}
