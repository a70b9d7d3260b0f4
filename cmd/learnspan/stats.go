package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the model has learned",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsTop, "top", "n", 20, "number of words to list")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, store, err := openModel(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no model.path configured")
	}
	defer store.Close()

	words, pairs, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	top, err := store.TopWords(ctx, statsTop)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d words, %d word pairs\n\n", words, pairs)

	// Find max word width for alignment
	width := 0
	for _, wc := range top {
		width = max(width, runewidth.StringWidth(wc.Word))
	}
	for _, wc := range top {
		fmt.Fprintf(out, "  %s  %d\n", runewidth.FillRight(wc.Word, width), wc.Count)
	}
	return nil
}
