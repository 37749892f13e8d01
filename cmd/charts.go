package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/bucket"
	"github.com/KaramelBytes/heartviz/internal/chart"
)

var chartsSchemes bool

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List available charts or bucketing schemes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if chartsSchemes {
			for _, name := range bucket.Names() {
				s, err := bucket.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "- %s: %s\n", name, strings.Join(s.Labels, ", "))
			}
			return nil
		}
		specs, err := chart.Catalog(chartOptions(""))
		if err != nil {
			return err
		}
		for _, s := range specs {
			fmt.Fprintf(w, "- %s: %s (%s)\n", s.ID, s.Title, s.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().BoolVar(&chartsSchemes, "schemes", false, "list bucketing schemes instead of charts")
}
