// Photo Adjust: non-destructive photo adjustments with undo
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"photo-adjust/internal/config"
	"photo-adjust/internal/editor"
	"photo-adjust/internal/gui"
	"photo-adjust/internal/imageio"
	"photo-adjust/internal/pipeline"
)

const (
	AppID      = "com.photoadjust.app"
	AppVersion = "1.0.0"
)

type globalOptions struct {
	debug        bool
	historyLimit int
	envFile      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:          "app",
		Short:        "Non-destructive photo adjustments",
		Version:      AppVersion,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			return runGUI(cfg, logger)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug mode with verbose logging")
	rootCmd.PersistentFlags().IntVar(&opts.historyLimit, "history-limit", 0, "Maximum undo checkpoints (0 = unbounded)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file with PHOTOADJUST_* settings")

	rootCmd.AddCommand(newRenderCmd(opts), newOpsCmd())
	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, opts *globalOptions) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if cmd.Flags().Changed("history-limit") {
		if opts.historyLimit < 0 {
			return config.Config{}, nil, fmt.Errorf("--history-limit must be >= 0, got %d", opts.historyLimit)
		}
		cfg.HistoryLimit = opts.historyLimit
	}

	logger := cfg.NewLogger(opts.debug)
	logger.WithFields(logrus.Fields{
		"version":       AppVersion,
		"debug_mode":    opts.debug,
		"history_limit": cfg.HistoryLimit,
	}).Debug("Configuration loaded")
	return cfg, logger, nil
}

// newPipeline builds a pipeline with the observers the configuration asks for.
func newPipeline(cfg config.Config, logger *logrus.Logger) *pipeline.Pipeline {
	opts := []pipeline.Option{
		pipeline.WithHistoryLimit(cfg.HistoryLimit),
		pipeline.WithObserver(pipeline.NewLogObserver(logger)),
	}
	if cfg.Metrics {
		opts = append(opts, pipeline.WithObserver(pipeline.NewMetricsObserver(logger, nil)))
	}
	return pipeline.New(logger, opts...)
}

func runGUI(cfg config.Config, logger *logrus.Logger) error {
	logger.WithField("version", AppVersion).Info("Starting Photo Adjust")

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetIcon(theme.DocumentIcon())
	fyneApp.Settings().SetTheme(theme.DefaultTheme())

	session := editor.NewSession(logger, newPipeline(cfg, logger), cfg.FallbackOnError)
	mainApp := gui.NewApplication(fyneApp, logger, session, imageio.NewLoader(logger), cfg.PreviewDelay)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	return nil
}
