// Fishbench runs the simulation headless and reports tick throughput and
// phase timings.
//
// Usage: go run ./cmd/fishbench -ships 100000 -ticks 500
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/grandfishing/config"
	"github.com/pthm-cable/grandfishing/game"
	"github.com/pthm-cable/grandfishing/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ships := flag.Int("ships", 0, "Fleet size override (0 = use config)")
	ticks := flag.Uint64("ticks", 500, "Ticks to run")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *ships > 0 {
		cfg.World.Ships = *ships
	}

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:          *seed,
		MaxTicks:      *ticks,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		log.Fatalf("failed to build simulation: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runErr := g.RunHeadless(ctx)
	elapsed := time.Since(start)
	perf := g.Perf()
	ran := g.TicksRun()
	live := g.Live()
	activeCells := g.Field().Len()
	voyages := g.Voyages()
	g.Unload()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatalf("run failed: %v", runErr)
	}

	tps := float64(ran) / elapsed.Seconds()
	shipSteps := float64(ran) * float64(cfg.World.Ships)

	fmt.Printf("grid:          %s x %s\n", humanize.Comma(int64(cfg.World.Width)), humanize.Comma(int64(cfg.World.Height)))
	fmt.Printf("ships:         %s (%s still at sea)\n", humanize.Comma(int64(cfg.World.Ships)), humanize.Comma(int64(live)))
	fmt.Printf("ticks:         %s in %s\n", humanize.Comma(int64(ran)), elapsed.Round(time.Millisecond))
	fmt.Printf("throughput:    %s ticks/s, %s ship-steps/s\n",
		humanize.CommafWithDigits(tps, 1), humanize.SIWithDigits(shipSteps/elapsed.Seconds(), 2, ""))
	fmt.Printf("active cells:  %s\n", humanize.Comma(int64(activeCells)))
	fmt.Printf("tick (window): avg %s, min %s, max %s\n",
		perf.AvgTickDuration.Round(time.Microsecond),
		perf.MinTickDuration.Round(time.Microsecond),
		perf.MaxTickDuration.Round(time.Microsecond))
	for _, phase := range telemetry.Phases {
		fmt.Printf("  %-10s %10s %5.1f%%\n", phase, perf.PhaseAvg[phase].Round(time.Microsecond), perf.PhasePct[phase])
	}

	var caught, wins int
	for _, w := range windows {
		caught += w.FishCaught
		wins += w.Wins
	}
	fmt.Printf("fish caught:   %s over %d windows, %s ships reached the threshold\n",
		humanize.Comma(int64(caught)), len(windows), humanize.Comma(int64(wins)))
	fmt.Printf("voyages:       %.1f ticks to fill up, %.1f ticks home (%s returned)\n",
		voyages.MeanTicksToWin, voyages.MeanHomewardTicks, humanize.Comma(int64(voyages.Returns)))
}
