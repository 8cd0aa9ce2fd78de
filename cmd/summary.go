package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
)

var (
	sumOutputPath string
	sumDelimiter  string
	sumSheet      string
	sumComboTop   int
	sumStatTop    int
)

var summaryCmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Print a Markdown summary of the dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := currentConfig()
		if err != nil {
			return err
		}
		c := *base
		f := cmd.Flags()
		if f.Changed("delimiter") {
			c.Delimiter = sumDelimiter
		}
		if f.Changed("sheet") {
			c.Sheet = sumSheet
		}
		if f.Changed("combo-top") {
			c.ComboTopN = sumComboTop
		}
		if f.Changed("stat-top") {
			c.StatTopN = sumStatTop
		}
		path, err := resolveDataFile(args, c.DataFile)
		if err != nil {
			return err
		}
		table, err := loadTable(path, c.Delimiter, c.Sheet)
		if err != nil {
			return err
		}
		md := analysis.BuildReport(table, analysis.Options{
			ComboTopN:     c.ComboTopN,
			StatTopN:      c.StatTopN,
			HistogramBins: c.HistogramBins,
		}).Markdown()

		if sumOutputPath != "" {
			if err := os.WriteFile(sumOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "write the summary to this file instead of stdout")
	summaryCmd.Flags().StringVar(&sumDelimiter, "delimiter", "", "field delimiter: ','|'tab'|';'|'|' (default: by extension)")
	summaryCmd.Flags().StringVar(&sumSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	summaryCmd.Flags().IntVar(&sumComboTop, "combo-top", 0, "number of type combinations to list")
	summaryCmd.Flags().IntVar(&sumStatTop, "stat-top", 0, "number of leaders per stat")
}
