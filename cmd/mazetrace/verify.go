package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazetrace/internal/forge"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <feed-file>",
	Short: "Re-check a feed against the solver",
	Long: `Read a JSONL feed and re-verify every record: decode both payloads,
re-walk the reference path, re-solve the maze to confirm the path is
shortest and re-derive the checkpoint list.

Pass - to read the feed from stdin. The exit status is non-zero when any
line fails.

Examples:
  mazetrace verify puzzles.jsonl
  mazetrace forge -n 20 | mazetrace verify -`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) {
	path := args[0]

	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	records, bad, err := wire.ReadFeed(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading feed: %v\n", err)
		os.Exit(1)
	}

	failures := len(bad)
	for _, lineErr := range bad {
		fmt.Printf("FAIL  %v\n", lineErr)
	}

	dec := wire.NewDecoder()
	for _, rec := range records {
		if verr := forge.VerifyRecord(dec, rec); verr != nil {
			failures++
			fmt.Printf("FAIL  record %s: %v\n", rec.Fingerprint(), verr)
			continue
		}
		fmt.Printf("ok    %s  %-4s %3dx%-3d  optimal %d\n", rec.Fingerprint(), rec.Alg, rec.W, rec.H, rec.Len)
	}

	total := len(records) + len(bad)
	fmt.Println()
	fmt.Printf("%d record(s): %d ok, %d failed\n", total, total-failures, failures)
	if failures > 0 {
		os.Exit(1)
	}
}
