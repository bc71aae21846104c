package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"topup/pkg/config"
	"topup/pkg/logging"
	"topup/pkg/processor"
)

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:]))
}

func execute(ctx context.Context, args []string) int {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "topup: %v\n", err)
		return exitError
	}

	cmd := newRootCmd(&cfg)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "topup: %v\n", err)
		return exitError
	}
	return exitOK
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "topup",
		Short:         "Apply company token top-ups to users and report the new balances",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, *cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.UsersFile, "users", cfg.UsersFile, "users JSON file ($"+config.EnvUsersFile+")")
	flags.StringVar(&cfg.CompaniesFile, "companies", cfg.CompaniesFile, "companies JSON file ($"+config.EnvCompaniesFile+")")
	flags.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "report destination ($"+config.EnvOutputFile+")")
	flags.StringVar(&cfg.BadUsersFile, "bad-users", cfg.BadUsersFile, "rejected users destination ($"+config.EnvBadUsersFile+")")
	flags.StringVar(&cfg.BadCompaniesFile, "bad-companies", cfg.BadCompaniesFile, "rejected companies destination ($"+config.EnvBadCompaniesFile+")")
	flags.StringVar(&cfg.JSONReportFile, "json-report", cfg.JSONReportFile, "optional machine-readable report destination")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.Environment, "env", cfg.Environment, "logging profile (production, development, local)")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the top-up and write the report and quarantine files",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProcess(cmd, *cfg)
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the input files and print record counts without writing anything",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runValidate(cmd, *cfg)
			},
		},
	)

	return root
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Environment: logging.Environment(cfg.Environment),
		Level:       cfg.LogLevel,
	})
}

func runProcess(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := processor.New(cfg, logger).Process(cmd.Context())
	if result == nil {
		// cancelled before anything was written
		return err
	}
	if err != nil {
		// write failures are already logged; the run itself completed
		logger.Warn("run completed with write errors", zap.String("run_id", result.RunID))
	}
	return nil
}

func runValidate(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rec, err := processor.New(cfg, logger).Reconcile(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rec.Stats)
}
