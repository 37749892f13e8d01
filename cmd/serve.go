package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/heartviz/internal/chart"
	"github.com/KaramelBytes/heartviz/internal/logger"
	"github.com/KaramelBytes/heartviz/internal/server"
)

var (
	serveAddr      string
	serveAgeScheme string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live dashboard that reloads the survey on every request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = settings().ListenAddr
		}
		opt := chartOptions(serveAgeScheme)
		if _, err := chart.Catalog(opt); err != nil {
			return err
		}
		srv := server.New(server.Options{
			Load:   loadSurvey,
			Charts: opt,
			Theme:  theme(),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving %s on http://localhost%s (Ctrl+C to stop)\n", settings().DataPath, addr)
		logger.Log.WithField("addr", addr).Info("preview server listening")
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config: listen_addr)")
	serveCmd.Flags().StringVar(&serveAgeScheme, "age-scheme", "", "age bucketing scheme for age-status")
}
