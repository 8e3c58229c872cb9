// mazetrace is a terminal maze racer: authored puzzles carry their own
// solution, the player traces it with a small assist budget.
//
// Usage:
//
//	mazetrace play               - Pick a puzzle and race it
//	mazetrace puzzles            - List the puzzles in the feed
//	mazetrace results [id]       - Show recorded runs
//	mazetrace forge              - Author new puzzle records
//	mazetrace verify <feed>      - Re-check a feed against the solver
//	mazetrace serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible carves
//	--db <path>      - Set run database path (default: ~/.mazetrace/mazetrace.db)
//	--feed <path>    - Set puzzle feed path (default: standard lookup)
//	--config <path>  - Set config file path (default: standard lookup)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/config"
)

// defaultDBPath is where runs land when neither --db nor the config file
// says otherwise.
const defaultDBPath = "~/.mazetrace/mazetrace.db"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagFeed   string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazetrace",
	Short: "mazetrace - Race procedural mazes in your terminal",
	Long: `mazetrace is a terminal maze platform. Five carving algorithms author
puzzles offline; the player traces the optimal path and spends a small
assist budget when the maze wins.

Available commands:
  play     - Pick a puzzle and race it
  puzzles  - List the puzzles in the feed
  results  - View recorded runs and bests
  forge    - Author new puzzle records
  verify   - Re-check a feed against the solver
  serve    - Start SSH server for remote play

Examples:
  mazetrace play
  mazetrace play --tier beginner --relaxed
  mazetrace puzzles
  mazetrace forge -n 12 --out puzzles.jsonl
  mazetrace verify puzzles.jsonl
  mazetrace serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run database (default "+defaultDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagFeed, "feed", "", "Path to puzzle feed (default: standard lookup)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: standard lookup)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(puzzlesCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(forgeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadAppConfig loads the platform configuration. An explicit --config path
// that fails to load is fatal; the default lookup never is.
func loadAppConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// resolveDBPath picks the run database location: flag, then config file,
// then the default.
func resolveDBPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	return defaultDBPath
}

// resolveFeedPath picks the puzzle feed: flag, then config file, then empty
// for the loader's own lookup order.
func resolveFeedPath(cfg config.Config) string {
	if flagFeed != "" {
		return flagFeed
	}
	return cfg.Feed.Path
}
