package bot

import (
	"errors"
	"math/rand"

	"hokm/internal/domain"
)

// ErrNoDecision is returned when no play rule fires. With a non-empty legal
// set this cannot happen; the orchestrator treats it as an internal defect
// and stalls the phase instead of crashing.
var ErrNoDecision = errors.New("bot: no play rule selected a card")

// HeuristicBot plays by an explicit ordered rule list so individual rules
// can be tested in isolation.
type HeuristicBot struct {
	Tuning Tuning
}

// playRule is one precondition/action unit of the strategy. Apply returns
// false when the precondition does not hold.
type playRule struct {
	name  string
	apply func(b *HeuristicBot, v View) (domain.Card, bool)
}

// leadRules run when the bot opens a trick, in priority order.
var leadRules = []playRule{
	{name: "draw-trumps", apply: (*HeuristicBot).leadDrawTrumps},
	{name: "lead-ace", apply: (*HeuristicBot).leadAce},
	{name: "safe-king", apply: (*HeuristicBot).leadSafeKing},
	{name: "void-short-suit", apply: (*HeuristicBot).leadVoidShortSuit},
	{name: "lowest-card", apply: (*HeuristicBot).playLowest},
}

// followRules run when at least one card is already on the table.
var followRules = []playRule{
	{name: "support-partner", apply: (*HeuristicBot).followSupportPartner},
	{name: "third-hand-high", apply: (*HeuristicBot).followThirdHandHigh},
	{name: "cheapest-winner", apply: (*HeuristicBot).followCheapestWinner},
	{name: "concede-lowest", apply: (*HeuristicBot).playLowest},
}

// ChooseHokm scores each suit by weighted length plus natural strength and
// trumps with the best one. A small dice roll picks one of the non-suit
// modes instead.
func (b *HeuristicBot) ChooseHokm(hand []domain.Card, rng *rand.Rand) domain.Hokm {
	if rng.Float64() < b.Tuning.SpecialModeChance {
		modes := [3]domain.Mode{domain.ModeNars, domain.ModeAceNars, domain.ModeSar}
		return domain.Hokm{Suit: domain.NoSuit, Mode: modes[rng.Intn(len(modes))]}
	}

	best := domain.Spades
	bestScore := 0
	for _, s := range domain.Suits {
		count, strength := 0, 0
		for _, c := range hand {
			if c.Suit == s {
				count++
				strength += int(c.Rank)
			}
		}
		score := b.Tuning.SuitCountWeight*count + strength
		if score > bestScore {
			bestScore = score
			best = s
		}
	}
	return domain.Hokm{Suit: best, Mode: domain.ModeNormal}
}

// ChooseCard applies the lead or follow rule list to the legal moves.
func (b *HeuristicBot) ChooseCard(v View) (domain.Card, error) {
	if len(v.Legal) == 0 {
		return domain.Card{}, ErrNoDecision
	}
	if len(v.Legal) == 1 {
		return v.Legal[0], nil
	}

	rules := followRules
	if len(v.Trick.Cards) == 0 {
		rules = leadRules
	}
	for _, r := range rules {
		if c, ok := r.apply(b, v); ok {
			return c, nil
		}
	}
	return domain.Card{}, ErrNoDecision
}

// DecideBaam accepts when the hand holds enough high cards: trump Q/K/A and
// off-trump Aces.
func (b *HeuristicBot) DecideBaam(hand []domain.Card, hokm domain.Hokm) bool {
	high := 0
	for _, c := range hand {
		if c.Suit == hokm.Suit && c.Rank >= domain.Queen {
			high++
		}
		if c.Rank == domain.Ace && c.Suit != hokm.Suit {
			high++
		}
	}
	return high >= b.Tuning.BaamHighCardMin
}

// leadDrawTrumps: on the ruling side, while trumps are still mostly out,
// lead the highest trump. The trump Ace is withheld as a concealed signal.
func (b *HeuristicBot) leadDrawTrumps(v View) (domain.Card, bool) {
	if v.Team() != v.RulerTeam || v.Hokm.Mode != domain.ModeNormal || v.Hokm.Suit == domain.NoSuit {
		return domain.Card{}, false
	}
	seen := 0
	for _, c := range v.PlayedCards {
		if c.Suit == v.Hokm.Suit {
			seen++
		}
	}
	if seen >= b.Tuning.TrumpsSeenLimit {
		return domain.Card{}, false
	}

	var trumps []domain.Card
	for _, c := range v.Legal {
		if c.Suit == v.Hokm.Suit {
			trumps = append(trumps, c)
		}
	}
	if len(trumps) == 0 {
		return domain.Card{}, false
	}
	highest := highestNatural(trumps)
	if highest.Rank == domain.Ace {
		return domain.Card{}, false
	}
	return highest, true
}

// leadAce probes with an off-trump Ace as a signal of strength.
func (b *HeuristicBot) leadAce(v View) (domain.Card, bool) {
	for _, c := range v.Legal {
		if c.Rank == domain.Ace && c.Suit != v.Hokm.Suit {
			return c, true
		}
	}
	return domain.Card{}, false
}

// leadSafeKing leads an off-trump King whose Ace has already been played.
func (b *HeuristicBot) leadSafeKing(v View) (domain.Card, bool) {
	for _, c := range v.Legal {
		if c.Rank != domain.King || c.Suit == v.Hokm.Suit {
			continue
		}
		if domain.ContainsCard(v.PlayedCards, domain.Card{Suit: c.Suit, Rank: domain.Ace}) {
			return c, true
		}
	}
	return domain.Card{}, false
}

// leadVoidShortSuit leads the lowest card of the shortest off-trump suit,
// working towards a void.
func (b *HeuristicBot) leadVoidShortSuit(v View) (domain.Card, bool) {
	counts := make(map[domain.Suit]int)
	for _, c := range v.Legal {
		counts[c.Suit]++
	}

	shortest := domain.NoSuit
	minCount := domain.TricksPerRound + 1
	for _, s := range domain.Suits {
		if s == v.Hokm.Suit {
			continue
		}
		if n := counts[s]; n > 0 && n < minCount {
			minCount = n
			shortest = s
		}
	}
	if shortest == domain.NoSuit {
		return domain.Card{}, false
	}

	var inSuit []domain.Card
	for _, c := range v.Legal {
		if c.Suit == shortest {
			inSuit = append(inSuit, c)
		}
	}
	return lowestNatural(inSuit), true
}

// followSupportPartner plays cheap when the partner already holds the trick:
// lowest of the lead suit, else slough the lowest off-trump card, else the
// lowest legal card.
func (b *HeuristicBot) followSupportPartner(v View) (domain.Card, bool) {
	winning, ok := v.Trick.WinningPlay(v.Hokm)
	if !ok || winning.Player != v.Partner() {
		return domain.Card{}, false
	}

	var leadCards, offTrump []domain.Card
	for _, c := range v.Legal {
		if c.Suit == v.Trick.LeadSuit {
			leadCards = append(leadCards, c)
		}
		if c.Suit != v.Hokm.Suit {
			offTrump = append(offTrump, c)
		}
	}
	if len(leadCards) > 0 {
		return lowestNatural(leadCards), true
	}
	if len(offTrump) > 0 {
		return lowestNatural(offTrump), true
	}
	return lowestByValue(v.Legal, v.Trick.LeadSuit, v.Hokm), true
}

// followThirdHandHigh pressures as third to act when the partner is not
// winning: the highest lead-suit card.
func (b *HeuristicBot) followThirdHandHigh(v View) (domain.Card, bool) {
	if len(v.Trick.Cards) != 2 {
		return domain.Card{}, false
	}
	var leadCards []domain.Card
	for _, c := range v.Legal {
		if c.Suit == v.Trick.LeadSuit {
			leadCards = append(leadCards, c)
		}
	}
	if len(leadCards) == 0 {
		return domain.Card{}, false
	}
	return highestNatural(leadCards), true
}

// followCheapestWinner takes the trick with the least valuable card that
// still beats the current best.
func (b *HeuristicBot) followCheapestWinner(v View) (domain.Card, bool) {
	winning, ok := v.Trick.WinningPlay(v.Hokm)
	if !ok {
		return domain.Card{}, false
	}
	bestValue := domain.CardValue(winning.Card, v.Trick.LeadSuit, v.Hokm)

	var winners []domain.Card
	for _, c := range v.Legal {
		if domain.CardValue(c, v.Trick.LeadSuit, v.Hokm) > bestValue {
			winners = append(winners, c)
		}
	}
	if len(winners) == 0 {
		return domain.Card{}, false
	}
	return lowestByValue(winners, v.Trick.LeadSuit, v.Hokm), true
}

// playLowest concedes with the least valuable legal card. It always fires.
func (b *HeuristicBot) playLowest(v View) (domain.Card, bool) {
	return lowestByValue(v.Legal, v.Trick.LeadSuit, v.Hokm), true
}

func lowestNatural(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best
}

func highestNatural(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best
}

// lowestByValue orders by trick strength, breaking ties by natural rank so
// the choice is deterministic.
func lowestByValue(cards []domain.Card, lead domain.Suit, h domain.Hokm) domain.Card {
	best := cards[0]
	bestVal := domain.CardValue(best, lead, h)
	for _, c := range cards[1:] {
		v := domain.CardValue(c, lead, h)
		if v < bestVal || (v == bestVal && c.Rank < best.Rank) {
			best = c
			bestVal = v
		}
	}
	return best
}
