package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
)

var suiteCmd = &cobra.Command{
	Use:   "suite [DIR]",
	Short: "Run a directory of fixture suites",
	Long: `Loads every suite (YAML, JSON or Markdown with frontmatter) under DIR, decides its
test cases and compares them with the recorded expect and expect_empty values.
The command fails when any suite fails or errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.SuiteOptions{Dir: ".", Budget: app.cfg.Engine.Budget}
		if len(args) > 0 {
			opts.Dir = args[0]
		}
		opts.FailFast, _ = cmd.Flags().GetBool("fail-fast")
		opts.Filter, _ = cmd.Flags().GetString("filter")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		opts.Markdown, _ = cmd.Flags().GetBool("report")

		out := cmd.OutOrStdout()
		if !opts.JSON && tui.IsTerminal(out) {
			tui.PrintBanner(out)
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		report, err := cli.Suite(cmd.Context(), eng, opts, out)
		if err != nil {
			return err
		}
		if !report.OK() {
			return fmt.Errorf("%d suite(s) failed, %d errored", report.Failed, report.Errored)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suiteCmd)
	suiteCmd.Flags().Bool("fail-fast", false, "Stop at the first suite that does not pass")
	suiteCmd.Flags().String("filter", "", "Only run suites whose ID matches this glob")
	suiteCmd.Flags().Bool("json", false, "Emit JSON Lines instead of text")
	suiteCmd.Flags().BoolP("verbose", "v", false, "List every case, not only mismatches")
	suiteCmd.Flags().Bool("report", false, "Render a Markdown report after the run")
}
