// Command snake-bench plays headless games with an autopilot as fast as it
// can and prints a Markdown report of tick timings and scores.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	games := flag.Int("games", 100, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	maxTicks := flag.Int("max-ticks", 20000, "Ticks after which a game that is still running is stopped.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config{
		Games:          *games,
		Seed:           *seed,
		MaxTicks:       *maxTicks,
		GCPauseMetrics: *gcPauseMetrics,
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	log.Printf("Playing %d games...\n", cfg.Games)
	report, err := run(cfg)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}
	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Snake Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
