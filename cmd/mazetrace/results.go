package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/storage"
)

var (
	flagClearRuns   bool
	flagResultLimit int
)

var resultsCmd = &cobra.Command{
	Use:   "results [puzzle-id]",
	Short: "Show recorded runs",
	Long: `Display recorded runs: recent runs across all puzzles, or the run
history and stats for one puzzle.

Examples:
  mazetrace results
  mazetrace results --limit 30
  mazetrace results 06a0193c3f10
  mazetrace results 06a0193c3f10 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultLimit, "limit", 15, "Maximum number of runs to show")
	resultsCmd.Flags().BoolVar(&flagClearRuns, "clear", false, "Delete the recorded runs for the given puzzle")
}

func runResults(cmd *cobra.Command, args []string) {
	appCfg := loadAppConfig()

	// Open run storage
	store, err := storage.Open(resolveDBPath(appCfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearRuns {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a puzzle id.")
			os.Exit(1)
		}
		if clearErr := store.ClearRuns(args[0]); clearErr != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", clearErr)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s.\n", args[0])
		return
	}

	if len(args) == 1 {
		showPuzzleResults(store, args[0])
		return
	}
	showRecentResults(store)
}

// showPuzzleResults prints the run history and aggregate stats for one
// puzzle.
func showPuzzleResults(store *storage.Store, puzzleID string) {
	stats, err := store.GetPuzzleStats(puzzleID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Runs - %s\n", puzzleID)
	fmt.Println()

	if stats.Attempts == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'mazetrace play --puzzle %s' to set the first best!\n", puzzleID)
		return
	}

	runs, err := store.RunsForPuzzle(puzzleID, flagResultLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-6s  %s\n", "Rank", "Steps", "Hints", "Slices", "Result", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "------", "----")

	// Print runs
	for i, entry := range runs {
		result := "DNF"
		if entry.Completed {
			result = "done"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %-6d  %-6s  %s\n", i+1, entry.Steps, entry.HintsUsed, entry.SlicesUsed, result, dateStr)
	}

	fmt.Println()
	if stats.BestSteps > 0 {
		fmt.Printf("Best: %d steps  Solved: %d/%d  Avg: %.1f steps\n", stats.BestSteps, stats.Solved, stats.Attempts, stats.AvgSteps)
	} else {
		fmt.Printf("Never solved in %d attempt(s).\n", stats.Attempts)
	}
}

// showRecentResults prints the latest runs across every puzzle plus a
// one-line total.
func showRecentResults(store *storage.Store) {
	runs, err := store.RecentRuns(flagResultLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent runs:")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'mazetrace play' to get started!")
		return
	}

	// Print header
	fmt.Printf("  %-12s  %-4s  %-9s  %-6s  %-8s  %-6s  %s\n", "Puzzle", "Alg", "Size", "Steps", "Optimal", "Result", "Date")
	fmt.Printf("  %-12s  %-4s  %-9s  %-6s  %-8s  %-6s  %s\n", "------", "---", "----", "-----", "-------", "------", "----")

	// Print runs
	for _, entry := range runs {
		result := "DNF"
		if entry.Completed {
			result = "done"
		}
		size := fmt.Sprintf("%dx%d", entry.Width, entry.Height)
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-12s  %-4s  %-9s  %-6d  %-8d  %-6s  %s\n", entry.PuzzleID, entry.Algorithm, size, entry.Steps, entry.Optimal, result, dateStr)
	}

	allStats, err := store.GetAllPuzzleStats()
	if err != nil {
		return
	}
	var attempts, solved int
	for _, st := range allStats {
		attempts += st.Attempts
		solved += st.Solved
	}
	fmt.Println()
	fmt.Printf("Totals: %d run(s) across %d puzzle(s), %d solved.\n", attempts, len(allStats), solved)
	fmt.Println()
	fmt.Println("Run 'mazetrace results <puzzle-id>' for one puzzle's history.")
}
