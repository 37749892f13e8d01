package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/chart"
	"github.com/KaramelBytes/heartviz/internal/utils"
)

var (
	aggJSON      bool
	aggAgeScheme string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <chart-id>",
	Short: "Print the aggregate table behind a chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := chart.Find(args[0], chartOptions(aggAgeScheme))
		if err != nil {
			return err
		}
		ds, err := loadSurvey()
		if err != nil {
			return err
		}
		d, err := chart.Build(spec, ds.Records)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if aggJSON {
			b, err := utils.PrettyJSON(d)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
			return nil
		}
		fmt.Fprint(w, d.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().BoolVar(&aggJSON, "json", false, "print JSON instead of a Markdown table")
	aggregateCmd.Flags().StringVar(&aggAgeScheme, "age-scheme", "", "age bucketing scheme for age-status")
}
