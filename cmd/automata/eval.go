package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
)

var evalCmd = &cobra.Command{
	Use:   "eval FILE",
	Short: "Decide the test cases of an automaton file",
	Long: `Reads an automaton in the HTTP request shape (automata_type, config, test_cases)
from a YAML or JSON file, or JSON on stdin when FILE is "-", and prints the verdict of
every test case.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := cli.ReadRequest(args[0])
		if err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.Eval(cmd.Context(), eng, req, cli.EvalOptions{
			Budget: app.cfg.Engine.Budget,
			JSON:   asJSON,
		}, cmd.OutOrStdout())
	},
}

var emptyCmd = &cobra.Command{
	Use:   "empty FILE",
	Short: "Check whether an NFA or SAFA accepts no word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := cli.ReadRequest(args[0])
		if err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.Empty(cmd.Context(), eng, req, asJSON, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(evalCmd, emptyCmd)
	evalCmd.Flags().Bool("json", false, "Print the HTTP response envelope")
	emptyCmd.Flags().Bool("json", false, "Print the HTTP response envelope")
}
