package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pokestat-cli/internal/pipeline"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List analysis step ids in run order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, s := range pipeline.Steps() {
			fmt.Fprintf(out, "- %-20s %s\n", s.ID, s.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}
