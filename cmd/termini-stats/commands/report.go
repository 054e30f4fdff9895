package commands

import (
	"context"
	"time"

	"termini-stats/internal/report"
	"termini-stats/internal/stats"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var noOpen bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a one-shot HTML report and open it in the browser",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout)
		defer cancel()

		volunteers, sessions, err := srcClient.Data(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch data")
		}

		now := time.Now()
		bundle := stats.Aggregate(volunteers, sessions, stats.Filters{}, cfg.Calendar, now)

		path, err := report.Write(cfg.ReportsDir, bundle, cfg.Calendar, now)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to render report")
		}
		log.Info().Str("path", path).Msg("Report written")

		if !noOpen {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Msg("Could not open browser")
			}
		}
	},
}

func init() {
	reportCmd.Flags().BoolVar(&noOpen, "no-open", false, "do not open the report in a browser")
}
