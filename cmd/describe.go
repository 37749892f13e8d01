package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/analysis"
	"github.com/KaramelBytes/heartviz/internal/utils"
)

var (
	descOutputPath string
	descGroupBy    string
	descNoCorr     bool
	descTop        int
	descOutlierThr float64
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Profile the survey columns and print a concise summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("group-by") {
			opt.GroupBy = descGroupBy
		}
		if descNoCorr {
			opt.Correlations = false
		}
		if descTop > 0 {
			opt.TopValues = descTop
		}
		if cmd.Flags().Changed("outlier-threshold") {
			opt.OutlierThreshold = descOutlierThr
		}

		ds, err := loadSurvey()
		if err != nil {
			return err
		}
		md := analysis.Profile(ds, opt).Markdown()
		if descOutputPath != "" {
			if err := utils.SafeWriteFile(descOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Summary written to %s\n", descOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descOutputPath, "output", "o", "", "write summary to this file instead of stdout")
	describeCmd.Flags().StringVar(&descGroupBy, "group-by", "", "categorical column for per-group summaries (empty disables)")
	describeCmd.Flags().BoolVar(&descNoCorr, "no-corr", false, "skip numeric correlations")
	describeCmd.Flags().IntVar(&descTop, "top", 0, "top categories listed per categorical column")
	describeCmd.Flags().Float64Var(&descOutlierThr, "outlier-threshold", 0, "robust |z| threshold for outliers (0 disables)")
}
