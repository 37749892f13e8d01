package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/chart"
	cfgpkg "github.com/KaramelBytes/heartviz/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set heartviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		w := cmd.OutOrStdout()
		for _, k := range cfgpkg.Keys {
			v, _ := c.Get(k)
			fmt.Fprintf(w, "%s: %s\n", k, v)
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
		c := settings()
		if key == "age_scheme" {
			if _, err := chart.Catalog(chart.Options{AgeScheme: val}); err != nil {
				return err
			}
		}
		if err := c.Set(key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
