package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/gen"
)

var (
	flagPuzzlesTier string
	flagPuzzlesDiff string
)

var puzzlesCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "List the puzzles in the feed",
	Long: `Show every playable puzzle in the resolved feed.

Examples:
  mazetrace puzzles
  mazetrace puzzles --tier expert
  mazetrace puzzles --feed ./custom.jsonl`,
	Run: runPuzzles,
}

func init() {
	puzzlesCmd.Flags().StringVar(&flagPuzzlesTier, "tier", "", "Only list puzzles of this skill tier")
	puzzlesCmd.Flags().StringVar(&flagPuzzlesDiff, "difficulty", "", "Only list puzzles of this difficulty")
}

func runPuzzles(cmd *cobra.Command, args []string) {
	if flagPuzzlesTier != "" && !config.ValidTier(flagPuzzlesTier) {
		fmt.Fprintf(os.Stderr, "Error: unknown skill tier %q (known: %s)\n", flagPuzzlesTier, tierNames())
		os.Exit(1)
	}
	if flagPuzzlesDiff != "" && !config.ValidDifficulty(flagPuzzlesDiff) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (known: %s)\n", flagPuzzlesDiff, difficultyNames())
		os.Exit(1)
	}

	appCfg := loadAppConfig()
	pool := loadPool(appCfg)

	list := pool.Filter(flagPuzzlesTier, flagPuzzlesDiff)
	if len(list) == 0 {
		fmt.Println("No puzzles match that filter.")
		return
	}

	// Algorithm names for the listing
	algNames := make(map[string]string)
	for _, info := range gen.List() {
		algNames[info.Tag] = info.Name
	}

	// Calculate column widths
	maxAlgLen := len("Algorithm")
	for _, pz := range list {
		name := algNames[pz.Algorithm]
		if name == "" {
			name = pz.Algorithm
		}
		if len(name) > maxAlgLen {
			maxAlgLen = len(name)
		}
	}

	fmt.Printf("Puzzles (%d):\n", len(list))
	fmt.Println()

	// Print header
	fmt.Printf("  %-12s  %-*s  %-9s  %-12s  %-6s  %s\n", "ID", maxAlgLen, "Algorithm", "Size", "Tier", "Diff", "Optimal")
	fmt.Printf("  %-12s  %-*s  %-9s  %-12s  %-6s  %s\n", "--", maxAlgLen, "---------", "----", "----", "----", "-------")

	// Print puzzles
	for _, pz := range list {
		name := algNames[pz.Algorithm]
		if name == "" {
			name = pz.Algorithm
		}
		tier := pz.SkillTier
		if tier == "" {
			tier = "-"
		}
		difficulty := pz.Difficulty
		if difficulty == "" {
			difficulty = "-"
		}
		size := fmt.Sprintf("%dx%d", pz.Grid.W, pz.Grid.H)
		fmt.Printf("  %-12s  %-*s  %-9s  %-12s  %-6s  %d\n", pz.ID, maxAlgLen, name, size, tier, difficulty, pz.Optimal())
	}

	fmt.Println()
	fmt.Println("Run 'mazetrace play --puzzle <id>' to race one directly.")
}
