package commands

import (
	"termini-stats/internal/config"
	"termini-stats/internal/logging"
	"termini-stats/internal/server"
	"termini-stats/internal/source"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	srcClient *source.Client
)

var rootCmd = &cobra.Command{
	Use:   "termini-stats",
	Short: "Reporting backend for the volunteer coordination dashboard",
	Long: `A statistics backend that turns the volunteer roster and session log into
aggregates, trend forecasts, period comparisons, and recommendations, served
as JSON for the coordination dashboard.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		srcClient = source.NewClient(cfg.Source)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("termini-stats starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		srv := server.New(cfg, srcClient)
		if err := srv.Run(); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(reportCmd)
}
