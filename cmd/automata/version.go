package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/automata"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automata",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "automata version %s\n", strings.TrimSpace(automata.Version))
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
