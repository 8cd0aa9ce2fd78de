package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pokestat-cli/internal/analysis"
	"github.com/KaramelBytes/pokestat-cli/internal/chart"
	"github.com/KaramelBytes/pokestat-cli/internal/manifest"
	"github.com/KaramelBytes/pokestat-cli/internal/pipeline"
)

var (
	anaOutDir    string
	anaSteps     []string
	anaDelimiter string
	anaSheet     string
	anaWidth     int
	anaHeight    int
	anaComboTop  int
	anaStatTop   int
	anaBins      int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Render every analysis chart for a dataset",
	Long: `Load a Pokémon table and render the full chart series (generations, types,
stat distributions, correlations, playstyles, leaders) as PNG files plus a
manifest.json/manifest.yaml describing the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := currentConfig()
		if err != nil {
			return err
		}
		// flags override config for this run only
		c := *base
		f := cmd.Flags()
		if f.Changed("out") {
			c.OutputDir = anaOutDir
		}
		if f.Changed("steps") {
			c.Steps = anaSteps
		}
		if f.Changed("delimiter") {
			c.Delimiter = anaDelimiter
		}
		if f.Changed("sheet") {
			c.Sheet = anaSheet
		}
		if f.Changed("width") {
			c.ChartWidth = anaWidth
		}
		if f.Changed("height") {
			c.ChartHeight = anaHeight
		}
		if f.Changed("combo-top") {
			c.ComboTopN = anaComboTop
		}
		if f.Changed("stat-top") {
			c.StatTopN = anaStatTop
		}
		if f.Changed("bins") {
			c.HistogramBins = anaBins
		}

		path, err := resolveDataFile(args, c.DataFile)
		if err != nil {
			return err
		}
		// validate the selection before touching the filesystem
		if _, err := pipeline.Select(c.Steps); err != nil {
			return err
		}
		table, err := loadTable(path, c.Delimiter, c.Sheet)
		if err != nil {
			return err
		}
		r, err := chart.NewRenderer(c.OutputDir, c.ChartWidth, c.ChartHeight, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		arts, err := pipeline.Run(ctx, table, r, pipeline.Options{
			Analysis: analysis.Options{
				ComboTopN:     c.ComboTopN,
				StatTopN:      c.StatTopN,
				HistogramBins: c.HistogramBins,
			},
			Steps: c.Steps,
			Log:   logger,
		})
		if err != nil {
			return err
		}

		m := manifest.New(c.OutputDir, table.Source, table.Len(), arts)
		mpath, err := m.Save()
		if err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d charts to %s\n", len(arts), c.OutputDir)
		fmt.Fprintf(cmd.OutOrStdout(), "  Manifest: %s (run %s)\n", mpath, m.RunID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutDir, "out", "o", "", "output directory for charts (default from config: charts)")
	analyzeCmd.Flags().StringSliceVar(&anaSteps, "steps", nil, "comma-separated step ids to run (default: all, see 'pokestat steps')")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "field delimiter: ','|'tab'|';'|'|' (default: by extension)")
	analyzeCmd.Flags().StringVar(&anaSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	analyzeCmd.Flags().IntVar(&anaWidth, "width", 0, "chart width in pixels")
	analyzeCmd.Flags().IntVar(&anaHeight, "height", 0, "chart height in pixels")
	analyzeCmd.Flags().IntVar(&anaComboTop, "combo-top", 0, "number of type combinations to chart")
	analyzeCmd.Flags().IntVar(&anaStatTop, "stat-top", 0, "number of leaders per stat")
	analyzeCmd.Flags().IntVar(&anaBins, "bins", 0, "histogram bins per stat")
}
