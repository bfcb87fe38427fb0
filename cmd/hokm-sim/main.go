package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pterm/pterm"

	"hokm/internal/app"
	"hokm/internal/config"
	"hokm/internal/domain"
)

// maxTicksPerGame bounds a single simulated game. Zero-delay pacing finishes
// a game in a few thousand ticks, so hitting the bound means a stall bug.
const maxTicksPerGame = 1_000_000

var seatNames = [4]string{"South", "West", "North", "East"}

type aggregate struct {
	games        int
	wins         map[domain.Team]int
	rounds       int
	kots         int
	baamAttempts int
	baamWins     int
	baamFails    int
	stalled      int
}

func main() {
	games := flag.Int("games", 100, "number of games to simulate")
	seed := flag.Int64("seed", 1, "rng seed")
	verbose := flag.Bool("v", false, "print per-game results")
	flag.Parse()

	pterm.DefaultHeader.Printfln("Hokm simulator: %d games, seed %d", *games, *seed)

	rng := rand.New(rand.NewSource(*seed))
	svc := app.NewService(rng, nil, config.ZeroPacing)

	agg := aggregate{wins: make(map[domain.Team]int)}
	progress, _ := pterm.DefaultProgressbar.WithTotal(*games).WithTitle("Simulating").Start()
	for i := 0; i < *games; i++ {
		runGame(svc, &agg, *verbose)
		progress.Increment()
	}

	report(agg)
	if agg.stalled > 0 {
		os.Exit(1)
	}
}

func runGame(svc *app.Service, agg *aggregate, verbose bool) {
	svc.InitializeGame(seatNames, [4]bool{})
	agg.games++
	rounds := 0

	for tick := int64(1); tick <= maxTicksPerGame; tick++ {
		for _, ev := range svc.Tick(tick) {
			switch p := ev.Payload.(type) {
			case app.RoundEndedPayload:
				agg.rounds++
				rounds++
				if p.Kot {
					agg.kots++
				}
				if p.Baam {
					agg.baamFails++
				}
			case app.BaamAnsweredPayload:
				if p.Accepted {
					agg.baamAttempts++
				}
			case app.GameEndedPayload:
				agg.wins[p.Winner]++
				if p.Baam {
					agg.baamWins++
					agg.rounds++
					rounds++
				}
				if verbose {
					pterm.Info.Printfln("game %d: %s in %d rounds (%d-%d)",
						agg.games, p.Winner, rounds,
						p.Scores[domain.Team1], p.Scores[domain.Team2])
				}
			}
		}
		if svc.Game().Phase == domain.PhaseGameOver {
			return
		}
	}

	agg.stalled++
	pterm.Warning.Printfln("game %d did not finish within %d ticks", agg.games, maxTicksPerGame)
}

func report(agg aggregate) {
	pterm.DefaultSection.Println("Results")

	data := pterm.TableData{
		{"Metric", "Value"},
		{"Games", fmt.Sprintf("%d", agg.games)},
		{"Team1 wins", fmt.Sprintf("%d", agg.wins[domain.Team1])},
		{"Team2 wins", fmt.Sprintf("%d", agg.wins[domain.Team2])},
		{"Rounds played", fmt.Sprintf("%d", agg.rounds)},
		{"Kot rounds", fmt.Sprintf("%d", agg.kots)},
		{"Baam attempts", fmt.Sprintf("%d", agg.baamAttempts)},
		{"Baam wins", fmt.Sprintf("%d", agg.baamWins)},
		{"Baam failures", fmt.Sprintf("%d", agg.baamFails)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fmt.Println(err)
	}

	if agg.stalled > 0 {
		pterm.Error.Printfln("%d game(s) stalled", agg.stalled)
		return
	}
	if agg.games > 0 {
		avg := float64(agg.rounds) / float64(agg.games)
		pterm.Success.Printfln("All games completed, %.1f rounds per game on average", avg)
	}
}
