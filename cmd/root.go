package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/chart"
	cfgpkg "github.com/KaramelBytes/heartviz/internal/config"
	"github.com/KaramelBytes/heartviz/internal/logger"
	"github.com/KaramelBytes/heartviz/internal/survey"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	flagLogLevel string
	flagData     string
	flagSheet    string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "heartviz",
	Short: "heartviz: charts and dashboards for the heart-disease survey",
	Long: `heartviz loads the heart-disease survey (CSV, TSV or XLSX), aggregates it per chart
and renders animated SVG charts plus an HTML dashboard, or serves them live.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.heartviz/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "survey file (.csv, .tsv or .xlsx; overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "worksheet name for .xlsx input (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && flagData != "" {
		cfg.DataPath = flagData
	}
	if f.Changed("sheet") {
		cfg.Sheet = flagSheet
	}
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to open log file: %v\n", err)
	}
}

// settings returns the loaded configuration, loading it on first use.
func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

// loadSurvey reads the configured survey file and logs its warnings.
func loadSurvey() (*survey.Dataset, error) {
	c := settings()
	start := time.Now()
	ds, err := survey.Load(c.DataPath, survey.Options{MaxRows: c.MaxRows, Sheet: c.Sheet})
	if err != nil {
		return nil, err
	}
	log := logger.Log.WithField("file", c.DataPath)
	for _, w := range ds.Warnings {
		log.Warn(w)
	}
	log.WithField("rows", ds.Rows).WithField("elapsed", time.Since(start)).Debug("survey loaded")
	return ds, nil
}

// theme builds the chart theme from the configuration.
func theme() chart.Theme {
	c := settings()
	t := chart.DefaultTheme()
	if c.ChartWidth > 0 {
		t.Width = c.ChartWidth
	}
	if c.ChartHeight > 0 {
		t.Height = c.ChartHeight
	}
	t.Animation = time.Duration(c.AnimationMs) * time.Millisecond
	return t
}

// chartOptions resolves the age scheme flag against the configuration.
func chartOptions(ageScheme string) chart.Options {
	if ageScheme == "" {
		ageScheme = settings().AgeScheme
	}
	return chart.Options{AgeScheme: ageScheme}
}
