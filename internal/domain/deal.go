package domain

import "sort"

// dealOne moves the top deck card to the given seat's hand.
func (g *GameState) dealOne(p PlayerID) {
	c := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	pl := g.Player(p)
	pl.Hand = append(pl.Hand, c)
}

// DealInitial deals 5 cards to each seat, one at a time, starting from the
// seat after the dealer.
func (g *GameState) DealInitial() {
	p := g.Dealer
	for i := 0; i < InitialDealCount; i++ {
		p = NextSeat(p)
		g.dealOne(p)
	}
}

// DealRemaining deals the rest of the deck cyclically from the seat after
// the dealer, then sorts every hand around the chosen trump suit.
func (g *GameState) DealRemaining() {
	p := g.Dealer
	for len(g.Deck) > 0 {
		p = NextSeat(p)
		g.dealOne(p)
	}
	for _, pl := range g.Players {
		SortHand(pl.Hand, g.Hokm.Suit)
	}
}

// SuitOrder returns the display/sort order of suits seeded by the trump
// suit: trump first, then suits alternating color away from the trump's
// color, ties among same color broken by the fixed suit order. With no trump
// the fixed order is used.
func SuitOrder(trump Suit) []Suit {
	if trump == NoSuit {
		return Suits[:]
	}

	rest := make([]Suit, 0, 3)
	for _, s := range Suits {
		if s != trump {
			rest = append(rest, s)
		}
	}

	order := []Suit{trump}
	lastColor := SuitColor(trump)
	for len(rest) > 0 {
		picked := -1
		for i, s := range rest {
			if SuitColor(s) != lastColor {
				picked = i
				break
			}
		}
		if picked == -1 {
			order = append(order, rest...)
			break
		}
		next := rest[picked]
		rest = append(rest[:picked], rest[picked+1:]...)
		order = append(order, next)
		lastColor = SuitColor(next)
	}
	return order
}

// SortHand orders a hand by the trump-seeded suit order, descending natural
// rank within each suit.
func SortHand(hand []Card, trump Suit) {
	order := SuitOrder(trump)
	idx := make(map[Suit]int, len(order))
	for i, s := range order {
		idx[s] = i
	}
	sort.SliceStable(hand, func(i, j int) bool {
		if idx[hand[i].Suit] != idx[hand[j].Suit] {
			return idx[hand[i].Suit] < idx[hand[j].Suit]
		}
		return hand[i].Rank > hand[j].Rank
	})
}
