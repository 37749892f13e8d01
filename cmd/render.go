package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/chart"
	"github.com/KaramelBytes/heartviz/internal/dashboard"
	"github.com/KaramelBytes/heartviz/internal/logger"
	"github.com/KaramelBytes/heartviz/internal/manifest"
	"github.com/KaramelBytes/heartviz/internal/utils"
)

var (
	renderOut       string
	renderCharts    []string
	renderAgeScheme string
	renderNoHTML    bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every chart to SVG plus an HTML dashboard",
	Long: `Render loads the survey once, renders the selected charts concurrently and writes
<id>.svg for each chart, index.html (unless --no-html) and manifest.json into the
output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := renderOut
		if out == "" {
			out = c.OutputDir
		}
		opt := chartOptions(renderAgeScheme)
		specs, err := chart.Select(renderCharts, opt)
		if err != nil {
			return err
		}
		ds, err := loadSurvey()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(out); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		m := manifest.New(c.DataPath, ds.Rows, opt.AgeScheme)
		m.Warnings = ds.Warnings
		page := &dashboard.Page{Title: "Heart Disease Dashboard", Source: ds.Name, Rows: ds.Rows, Warnings: ds.Warnings}

		_, err = chart.RenderAll(cmd.Context(), specs, ds.Records, theme(), func(r chart.Result) error {
			file := r.Data.ID + ".svg"
			if err := utils.SafeWriteFile(filepath.Join(out, file), r.SVG); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
			m.Add(r.Data, file)
			page.Sections = append(page.Sections, dashboard.NewSection(r))
			logger.Log.WithField("chart", r.Data.ID).
				WithField("included", r.Data.Included).
				WithField("excluded", r.Data.Excluded).
				Debug("chart written")
			return nil
		})
		if err != nil {
			return err
		}

		if !renderNoHTML {
			var buf bytes.Buffer
			if err := dashboard.Write(&buf, page); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(filepath.Join(out, "index.html"), buf.Bytes()); err != nil {
				return fmt.Errorf("write dashboard: %w", err)
			}
			m.Dashboard = "index.html"
		}
		if err := m.Save(out); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}

		w := cmd.OutOrStdout()
		for _, warn := range ds.Warnings {
			fmt.Fprintf(w, "⚠ %s\n", warn)
		}
		fmt.Fprintf(w, "✓ Rendered %d chart(s) from %s (%d rows) into %s\n", len(specs), ds.Name, ds.Rows, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output directory (default from config: output_dir)")
	renderCmd.Flags().StringSliceVar(&renderCharts, "chart", nil, "chart id(s) to render (repeatable; default all)")
	renderCmd.Flags().StringVar(&renderAgeScheme, "age-scheme", "", "age bucketing scheme: age-5, age-decades, age-7")
	renderCmd.Flags().BoolVar(&renderNoHTML, "no-html", false, "skip index.html")
}
