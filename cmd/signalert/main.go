package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	signalert "github.com/raykavin/signalert"
	"github.com/raykavin/signalert/core"
	"github.com/raykavin/signalert/feed"
	"github.com/raykavin/signalert/logger/zerolog"
	"github.com/raykavin/signalert/storage"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	cfgFile string
	runOnce bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "signalert",
		Short:   "Market analysis alert notifications",
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (e.g. ./signalert.yaml)")

	// Add commands
	rootCmd.AddCommand(buildRunCmd(), buildChannelsCmd())

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the evaluation and notification loop",
		RunE:  runService,
	}

	runCmd.Flags().BoolVar(&runOnce, "once", false, "Evaluate a single cycle and exit")

	return runCmd
}

func runService(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cfgFile)
	if err != nil {
		return err
	}

	if settings.Feed.URL == "" {
		return errors.New("feed.url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zerolog.NewDefault()
	options := []signalert.Option{signalert.WithLogger(log)}

	store, err := initializeStorage(settings.State)
	if err != nil {
		return err
	}
	if store != nil {
		options = append(options, signalert.WithStateStorage(store))
	}

	service, err := signalert.New(ctx, settings, feed.NewHTTP(settings.Feed.URL), options...)
	if err != nil {
		return err
	}

	if runOnce {
		return service.EvaluateOnce(ctx)
	}

	if err := service.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// initializeStorage builds the configured persistence backend, or nil for
// in-memory state only
func initializeStorage(settings core.StateSettings) (core.StateStorage, error) {
	switch settings.Driver {
	case "":
		return nil, nil
	case "buntdb":
		return storage.NewFromFile(settings.Path)
	case "sqlite":
		return storage.NewFromSQLite(settings.Path, storage.DefaultConfig())
	default:
		return nil, fmt.Errorf("unknown state driver: %s", settings.Driver)
	}
}

func buildChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "Show notification channel configuration status",
		RunE:  showChannels,
	}
}

func showChannels(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cfgFile)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"twilio", strconv.FormatBool(settings.Twilio.Enabled())},
		{"slack", strconv.FormatBool(settings.Slack.Enabled())},
		{"discord", strconv.FormatBool(settings.Discord.Enabled())},
		{"gmail", strconv.FormatBool(settings.Gmail.Enabled())},
		{"telegram", strconv.FormatBool(settings.Telegram.Enabled())},
		{"webhook", strconv.FormatBool(settings.Webhook.Enabled())},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Channel", "Enabled"})
	table.AppendBulk(rows)
	table.Render()

	return nil
}
