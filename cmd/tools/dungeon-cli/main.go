package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/annel0/dungeon-gen/internal/config"
	"github.com/annel0/dungeon-gen/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config path")
		seed       = flag.Int64("seed", 0, "World seed (0 - from config)")
		from       = flag.Int("from", 0, "First level to print")
		levels     = flag.Int("levels", 1, "Number of levels to print")
		stats      = flag.Bool("stats", false, "Print generation stats after each level")
		rooms      = flag.Bool("rooms", false, "Print room list after each level")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}
	if *from < 0 || *levels < 1 {
		log.Fatalf("❌ Invalid level range: from=%d levels=%d", *from, *levels)
	}

	manager := world.NewManager(cfg.Generator.Seed, cfg.Generator, nil)
	ctx := context.Background()

	for level := *from; level < *from+*levels; level++ {
		m, err := manager.Map(ctx, level)
		if err != nil {
			log.Fatalf("❌ Level %d: %v", level, err)
		}

		fmt.Printf("=== seed %d, level %d (%dx%d) ===\n", m.Seed(), m.Level(), m.Width(), m.Height())
		fmt.Print(m.String())

		if *stats {
			s := m.Stats()
			fmt.Printf("rooms=%d stairwells=%d rejected=%d edges=%d tree=%d loops=%d corridors=%d failed=%d\n",
				s.RoomsPlaced, s.StairWells, s.PlacementRejections, s.CandidateEdges,
				s.TreeEdges, s.LoopEdges, s.Corridors, s.CorridorFailures)
		}
		if *rooms {
			for _, r := range m.Rooms() {
				kind := "room"
				if r.IsStairWell {
					kind = fmt.Sprintf("%s/%s", r.StairType, r.StairsDirection)
				}
				fmt.Printf("  #%-3d %-22s at %-8s %dx%d links=%d torches=%d\n",
					r.ID, kind, r.Origin(), r.Width, r.Height, len(r.CloseNeighbours), len(r.Torches))
			}
		}
		fmt.Fprintln(os.Stdout)
	}
}
