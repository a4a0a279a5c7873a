// Package cli implements the skywarn command line client.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/skywarn/internal/alerts"
	"github.com/me/skywarn/internal/config"
	"github.com/me/skywarn/internal/credstore"
	"github.com/me/skywarn/internal/logging"
	"github.com/me/skywarn/internal/session"
	"github.com/me/skywarn/pkg/weatherapi"
)

var (
	flagServer    string
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger     *slog.Logger
	cfg        config.ClientConfig
	store      credstore.Store
	client     *weatherapi.Client
	sess       *session.Manager
	collection *alerts.Container
)

// defaultServer returns the default server URL, checking SKYWARN_SERVER first.
func defaultServer() string {
	if s := os.Getenv("SKYWARN_SERVER"); s != "" {
		return s
	}
	return ""
}

// NewRootCmd creates the root cobra command for the skywarn CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "skywarn",
		Short: "Skywarn — weather-alert client",
		Long:  "Skywarn authenticates against the weather-alert service and keeps a local view of alert records in sync.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}

			var err error
			cfg, err = config.LoadClientConfig(flagConfig)
			if err != nil {
				return err
			}
			if flagServer != "" {
				cfg.ServerURL = flagServer
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.LogFormat = flagLogFormat
			}

			logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

			store, err = credstore.NewSQLiteStore(cfg.CredentialsDB, cfg.KeyFile, logger)
			if err != nil {
				return err
			}

			apiCfg := weatherapi.DefaultConfig().
				WithBaseURL(cfg.ServerURL).
				WithTimeout(cfg.Timeout())
			client = weatherapi.NewClient(apiCfg, credstore.Auth{Store: store}, logger)

			sess = session.NewManager(client, store, logger)
			client.SetAuthExpiredHandler(sess.HandleAuthExpired)
			collection = alerts.NewContainer(client, logger)

			// Restore a persisted session; absence is a normal outcome.
			sess.CheckAuth(cmd.Context())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				store.Close()
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Weather-alert API URL (or SKYWARN_SERVER env)")
	root.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultConfigPath(), "Config file path")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newAlertsCmd(),
		newWeatherCmd(),
		newForecastCmd(),
	)

	return root
}
