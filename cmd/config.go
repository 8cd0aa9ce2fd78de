package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/pokestat-cli/internal/config"
	"github.com/KaramelBytes/pokestat-cli/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set pokestat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_file: %s\n", cfg.DataFile)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "chart_width: %d\n", cfg.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", cfg.ChartHeight)
		fmt.Fprintf(out, "combo_top_n: %d\n", cfg.ComboTopN)
		fmt.Fprintf(out, "stat_top_n: %d\n", cfg.StatTopN)
		fmt.Fprintf(out, "histogram_bins: %d\n", cfg.HistogramBins)
		if len(cfg.Steps) > 0 {
			fmt.Fprintf(out, "steps: %s\n", strings.Join(cfg.Steps, ","))
		} else {
			fmt.Fprintln(out, "steps: (all)")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		positive := func(name string) (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return 0, fmt.Errorf("invalid positive int for %s: %v", name, val)
			}
			return i, nil
		}
		switch key {
		case "data_file":
			c.DataFile = val
		case "output_dir":
			c.OutputDir = val
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "sheet":
			c.Sheet = val
		case "chart_width":
			if c.ChartWidth, err = positive(key); err != nil {
				return err
			}
		case "chart_height":
			if c.ChartHeight, err = positive(key); err != nil {
				return err
			}
		case "combo_top_n":
			if c.ComboTopN, err = positive(key); err != nil {
				return err
			}
		case "stat_top_n":
			if c.StatTopN, err = positive(key); err != nil {
				return err
			}
		case "histogram_bins":
			if c.HistogramBins, err = positive(key); err != nil {
				return err
			}
		case "steps":
			var ids []string
			for _, id := range strings.Split(val, ",") {
				if id = strings.TrimSpace(id); id != "" && id != "all" {
					ids = append(ids, id)
				}
			}
			if _, err := pipeline.Select(ids); err != nil {
				return err
			}
			c.Steps = ids
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
