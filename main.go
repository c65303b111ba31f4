package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"quick-translate/translator"
	"quick-translate/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the global flags and the state built from them before any
// subcommand runs.
type app struct {
	configPath string
	verbose    bool
	engine     string
	endpoint   string
	from       string
	to         string
	threads    int
	timeout    time.Duration

	cfg    *utils.Config
	logger *zap.Logger
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		utils.PrintError("Failed to load .env file: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// After the first signal, restore default handling so a second one kills
	// the process even if a command is stuck.
	context.AfterFunc(ctx, stop)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		utils.PrintError(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "quick-translate",
		Short: "Translate text through Google's free translate endpoint",
		Long: `quick-translate sends text to translate.googleapis.com and prints the result.

Batches are translated in parallel over a fixed number of workers.

Examples:
  quick-translate translate --to vi "Hello world"
  quick-translate batch --threads 6 "Good morning" "Go is great"
  cat phrases.txt | quick-translate batch --table`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+utils.DefaultConfigFile+" when present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.engine, "engine", "scan", "response engine: scan or free")
	flags.StringVar(&a.endpoint, "endpoint", "", "translate endpoint URL (default "+translator.DefaultBaseURL+")")
	flags.StringVarP(&a.from, "from", "f", "auto", "source language code, or auto")
	flags.StringVarP(&a.to, "to", "t", "vi", "target language code")
	flags.IntVar(&a.threads, "threads", translator.DefaultWorkers, "parallel requests for batches (<= 0 uses every CPU)")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "per-request timeout")

	root.AddCommand(
		newTranslateCmd(a),
		newBatchCmd(a),
		newInteractiveCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	cfg, err := utils.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("from") {
		cfg.From = a.from
	}
	if flags.Changed("to") {
		cfg.To = a.to
	}
	if flags.Changed("threads") {
		cfg.Threads = a.threads
	}
	if flags.Changed("engine") {
		cfg.Engine = a.engine
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = a.endpoint
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}

	if cfg.From, err = translator.ParseSourceLanguage(cfg.From); err != nil {
		return err
	}
	if cfg.To, err = translator.ParseTargetLanguage(cfg.To); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.Debug("configuration resolved",
		zap.String("from", cfg.From),
		zap.String("to", cfg.To),
		zap.Int("threads", cfg.Threads),
		zap.String("engine", cfg.Engine),
		zap.String("endpoint", a.endpointURL()),
	)
	return nil
}

func (a *app) newClient() (*translator.Client, error) {
	engine, err := translator.ParseEngine(a.cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts := []translator.Option{
		translator.WithEngine(engine),
		translator.WithWorkers(a.cfg.Threads),
		translator.WithTimeout(a.cfg.Timeout),
		translator.WithLogger(a.logger),
		translator.WithBaseURL(a.cfg.Endpoint),
	}
	if a.cfg.UserAgent != "" {
		opts = append(opts, translator.WithUserAgent(a.cfg.UserAgent))
	}
	return translator.NewClient(opts...), nil
}

func (a *app) endpointURL() string {
	if a.cfg == nil || a.cfg.Endpoint == "" {
		return translator.DefaultBaseURL
	}
	return strings.TrimRight(a.cfg.Endpoint, "?")
}
