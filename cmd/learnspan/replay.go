package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/learnspan/lm"
	"github.com/iw2rmb/learnspan/trace"
)

var (
	replayCheck bool
	replaySave  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay TRACE...",
	Short: "Replay editing traces and print what is learned",
	Long: `Replays YAML traces through a tracking session on a simulated clock.
With --check, traces that carry an expect section must match it.
With --save, the learned words are added to the configured model.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayCheck, "check", false, "compare results with each trace's expect section")
	replayCmd.Flags().BoolVar(&replaySave, "save", false, "save learned words to model.path")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	mem, store, err := openModel(ctx)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	if replaySave && store == nil {
		return fmt.Errorf("--save needs model.path in the config")
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		tr, err := trace.Load(path)
		if err != nil {
			return err
		}
		res, err := trace.Replay(ctx, tr, trace.Options{Config: cfg, Model: mem})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		name := tr.Name
		if name == "" {
			name = path
		}
		fmt.Fprintf(out, "%s\n", name)
		for _, set := range res.Learned {
			fmt.Fprintf(out, "  %s\n", lm.Join(set))
		}
		if replayCheck {
			if err := res.Check(tr.Expect); err != nil {
				failed++
				fmt.Fprintf(out, "  FAIL: %v\n", err)
			} else if tr.Expect != nil {
				fmt.Fprintf(out, "  ok\n")
			}
		}
	}

	if replaySave {
		if err := store.Save(ctx, mem); err != nil {
			return fmt.Errorf("saving model: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d traces failed: %s", failed, len(args), strings.Join(args, ", "))
	}
	return nil
}
