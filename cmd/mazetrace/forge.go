package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/forge"
	"github.com/vovakirdan/mazetrace/internal/gen"
	"github.com/vovakirdan/mazetrace/internal/platform/tui"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

var (
	flagForgeAlg    string
	flagForgeWidth  int
	flagForgeHeight int
	flagForgeTier   string
	flagForgeDiff   string
	flagForgeCount  int
	flagForgeOut    string
	flagForgePNG    string
	flagForgeLegacy bool
	flagForgeWatch  bool
)

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Author new puzzle records",
	Long: `Carve mazes, solve them and write the records as a JSONL feed.

Every record is self-checked before it leaves the forge: the payloads are
decoded back, the reference path re-walked and the checkpoints re-derived.
Dimensions come from the config size table for the chosen tier and
difficulty unless --width/--height override them. The feed goes to stdout
by default so it can be piped; the summary goes to stderr.

Examples:
  mazetrace forge
  mazetrace forge -n 12 --out puzzles.jsonl
  mazetrace forge --alg wil --tier expert --difficulty hard
  mazetrace forge --width 40 --height 20 --png ./renders
  mazetrace forge --watch --alg hk`,
	Run: runForge,
}

func init() {
	forgeCmd.Flags().StringVar(&flagForgeAlg, "alg", "", "Carving algorithm tag (default: round-robin over the registry)")
	forgeCmd.Flags().IntVar(&flagForgeWidth, "width", 0, "Maze width in cells (overrides the size table)")
	forgeCmd.Flags().IntVar(&flagForgeHeight, "height", 0, "Maze height in cells (overrides the size table)")
	forgeCmd.Flags().StringVar(&flagForgeTier, "tier", "", "Skill tier stamped on the records")
	forgeCmd.Flags().StringVar(&flagForgeDiff, "difficulty", "", "Difficulty stamped on the records")
	forgeCmd.Flags().IntVarP(&flagForgeCount, "count", "n", 1, "Number of records to author")
	forgeCmd.Flags().StringVar(&flagForgeOut, "out", "", "Write the feed to this file (default: stdout)")
	forgeCmd.Flags().StringVar(&flagForgePNG, "png", "", "Also render each puzzle as a PNG into this directory")
	forgeCmd.Flags().BoolVar(&flagForgeLegacy, "legacy", false, "Emit packed legacy payloads instead of the expanded forms")
	forgeCmd.Flags().BoolVar(&flagForgeWatch, "watch", false, "Animate the first carve and solve in the terminal")
}

func runForge(cmd *cobra.Command, args []string) {
	if flagForgeAlg != "" && !gen.Exists(flagForgeAlg) {
		fmt.Fprintf(os.Stderr, "Error: unknown algorithm %q\n", flagForgeAlg)
		fmt.Fprintf(os.Stderr, "Known algorithms: %s\n", algTags())
		os.Exit(1)
	}
	if flagForgeTier != "" && !config.ValidTier(flagForgeTier) {
		fmt.Fprintf(os.Stderr, "Error: unknown skill tier %q (known: %s)\n", flagForgeTier, tierNames())
		os.Exit(1)
	}
	if flagForgeDiff != "" && !config.ValidDifficulty(flagForgeDiff) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (known: %s)\n", flagForgeDiff, difficultyNames())
		os.Exit(1)
	}

	appCfg := loadAppConfig()

	// Resolve dimensions: explicit flags beat the size table
	width, height := flagForgeWidth, flagForgeHeight
	if width == 0 || height == 0 {
		size := appCfg.Forge.SizeFor(flagForgeTier, flagForgeDiff)
		if width == 0 {
			width = size.Width
		}
		if height == 0 {
			height = size.Height
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if flagForgeWatch {
		// The watch shares the batch seed, so the maze on screen is the
		// first record written below.
		tag := flagForgeAlg
		if tag == "" {
			tag = gen.List()[0].Tag
		}
		w, h := 80, 24
		if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			w, h = tw, th
		}
		watchCfg := core.RuntimeConfig{
			ScreenW:  w,
			ScreenH:  h,
			TickRate: flagFPS,
			Seed:     seed,
		}
		if watchErr := tui.RunWatch(tag, width, height, seed, watchCfg); watchErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", watchErr)
			os.Exit(1)
		}
	}

	params := forge.Params{
		Alg:        flagForgeAlg,
		Width:      width,
		Height:     height,
		Tier:       flagForgeTier,
		Difficulty: flagForgeDiff,
		Seed:       seed,
		Legacy:     flagForgeLegacy,
	}
	records, err := forge.AuthorBatch(params, flagForgeCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error authoring puzzles: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if flagForgeOut != "" {
		f, createErr := os.Create(flagForgeOut)
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagForgeOut, createErr)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if writeErr := wire.WriteFeed(out, records); writeErr != nil {
		fmt.Fprintf(os.Stderr, "Error writing feed: %v\n", writeErr)
		os.Exit(1)
	}

	if flagForgePNG != "" {
		if mkErr := os.MkdirAll(flagForgePNG, 0o755); mkErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagForgePNG, mkErr)
			os.Exit(1)
		}
		dec := wire.NewDecoder()
		for _, rec := range records {
			pz, compErr := puzzle.Compile(dec, rec)
			if compErr != nil {
				fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", rec.Fingerprint(), compErr)
				os.Exit(1)
			}
			path := filepath.Join(flagForgePNG, pz.ID+".png")
			if pngErr := forge.WritePNG(pz, path); pngErr != nil {
				fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", pz.ID, pngErr)
				os.Exit(1)
			}
		}
	}

	// Summary on stderr, so a piped feed stays clean
	fmt.Fprintf(os.Stderr, "Authored %d puzzle(s):\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(os.Stderr, "  %s  %-4s %3dx%-3d  optimal %d\n", rec.Fingerprint(), rec.Alg, rec.W, rec.H, rec.Len)
	}
	if flagForgeOut != "" {
		fmt.Fprintf(os.Stderr, "Feed written to %s.\n", flagForgeOut)
	}
}

func algTags() string {
	infos := gen.List()
	tags := make([]string, len(infos))
	for i, info := range infos {
		tags[i] = info.Tag
	}
	return strings.Join(tags, ", ")
}
