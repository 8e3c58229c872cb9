package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/platform/tui"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/resource"
	"github.com/vovakirdan/mazetrace/internal/storage"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

var (
	flagPuzzleID   string
	flagTier       string
	flagDifficulty string
	flagRelaxed    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a puzzle and race it",
	Long: `Pick a puzzle from the feed and race its optimal path.

Controls:
  WASD/Arrows - Move
  H           - Hint (light the path to the next checkpoint)
  X           - Slice (cut the trail back to the last correct cell)
  P           - Pause
  R           - Restart
  Ctrl+S      - Save screenshot
  Q/Ctrl+C    - Quit

One assist wallet lasts the whole session: solving a puzzle earns hints
and slices back, --relaxed removes the budget entirely.

Examples:
  mazetrace play
  mazetrace play --tier beginner
  mazetrace play --difficulty hard --relaxed
  mazetrace play --puzzle 06a0193c3f10
  mazetrace play --feed ./custom.jsonl`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPuzzleID, "puzzle", "", "Play one puzzle by fingerprint and exit")
	playCmd.Flags().StringVar(&flagTier, "tier", "", "Only offer puzzles of this skill tier")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Only offer puzzles of this difficulty")
	playCmd.Flags().BoolVar(&flagRelaxed, "relaxed", false, "Unlimited hints and slices")
}

func runPlay(cmd *cobra.Command, args []string) {
	if flagTier != "" && !config.ValidTier(flagTier) {
		fmt.Fprintf(os.Stderr, "Error: unknown skill tier %q (known: %s)\n", flagTier, tierNames())
		os.Exit(1)
	}
	if flagDifficulty != "" && !config.ValidDifficulty(flagDifficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (known: %s)\n", flagDifficulty, difficultyNames())
		os.Exit(1)
	}

	appCfg := loadAppConfig()
	pool := loadPool(appCfg)

	// Get terminal size early so the first screen opens at the right size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open run storage
	store, err := storage.Open(resolveDBPath(appCfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - runs just will not be recorded
		store = nil
	}
	closeStore := func() {
		if store != nil {
			store.Close()
		}
	}

	grantor, rewards := sessionWallet(appCfg.Resources, flagRelaxed)

	// Direct mode: one puzzle, one run
	if flagPuzzleID != "" {
		pz, ok := pool.ByID(flagPuzzleID)
		if !ok {
			closeStore()
			fmt.Fprintf(os.Stderr, "Error: no puzzle %q in the feed\n", flagPuzzleID)
			fmt.Fprintln(os.Stderr, "Run 'mazetrace puzzles' to see what is available.")
			os.Exit(1)
		}
		runErr := tui.Run(pz, store, grantor, rewards, cfg)
		closeStore()
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Narrow the pool: flags skip the filter screen entirely
	puzzles := pool.All()
	if flagTier != "" || flagDifficulty != "" {
		puzzles = pool.Filter(flagTier, flagDifficulty)
	} else {
		selection, updatedCfg, selErr := tui.RunFilterSelector(pool.All(), cfg)
		if selErr != nil {
			closeStore()
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User backed out or quit
		if selection == nil {
			closeStore()
			return
		}
		puzzles = pool.Filter(selection.Tier, selection.Difficulty)
	}
	if len(puzzles) == 0 {
		closeStore()
		fmt.Fprintln(os.Stderr, "No puzzles match that filter.")
		return
	}

	// Picker loop: pick a puzzle, race it, come back
	for {
		result, pickErr := tui.RunPicker(puzzles, store, cfg)
		if pickErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
			break
		}

		// Carry terminal size between screens
		cfg = result.Config

		if result.Quit {
			break
		}

		if result.WantsResults {
			goBack, resErr := tui.RunResults(puzzles, store, cfg.ScreenW, cfg.ScreenH)
			if resErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", resErr)
				break
			}
			if !goBack {
				break
			}
			continue
		}

		if result.Puzzle == nil {
			break
		}

		if runErr := tui.Run(result.Puzzle, store, grantor, rewards, cfg); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", runErr)
			break
		}
	}

	closeStore()
}

// loadPool resolves and loads the puzzle feed, reporting every record the
// loader had to skip.
func loadPool(appCfg config.Config) *puzzle.Pool {
	pool, skipped, err := puzzle.Load(wire.NewDecoder(), resolveFeedPath(appCfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading puzzle feed: %v\n", err)
		os.Exit(1)
	}
	for _, skipErr := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped feed record: %v\n", skipErr)
	}
	if pool.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Error: the puzzle feed has no playable records.")
		fmt.Fprintln(os.Stderr, "Run 'mazetrace forge' to author some.")
		os.Exit(1)
	}
	return pool
}

// sessionWallet builds the assist wallet for a play session. Relaxed play
// gets an unlimited grantor and no rewards.
func sessionWallet(res config.ResourcesConfig, relaxed bool) (resource.Grantor, map[resource.Kind]int) {
	if relaxed {
		return resource.Unlimited{}, nil
	}
	wallet := resource.NewWallet(
		map[resource.Kind]int{
			resource.Hint:  res.Hints.Initial,
			resource.Slice: res.Slices.Initial,
		},
		map[resource.Kind]int{
			resource.Hint:  res.Hints.Max,
			resource.Slice: res.Slices.Max,
		},
	)
	rewards := map[resource.Kind]int{
		resource.Hint:  res.Hints.Reward,
		resource.Slice: res.Slices.Reward,
	}
	return wallet, rewards
}

func tierNames() string {
	names := make([]string, len(config.SkillTiers))
	for i, t := range config.SkillTiers {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func difficultyNames() string {
	names := make([]string, len(config.Difficulties))
	for i, d := range config.Difficulties {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
