package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/automata/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the automaton as a Mermaid diagram",
	Long:  `Reads an automaton file and outputs a Mermaid flowchart (graph LR) of its states and transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := cli.ReadRequest(args[0])
		if err != nil {
			return err
		}
		return cli.Graph(req, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
