package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crewlog/crewlog/batch"
	"github.com/crewlog/crewlog/catalog"
	"github.com/crewlog/crewlog/config"
	"github.com/crewlog/crewlog/errors"
	"github.com/crewlog/crewlog/logger"
	"github.com/crewlog/crewlog/session"
)

// Version is stamped by the build
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "crewlog",
	Short: "crewlog - squad log batch ingestion",
	Long: `crewlog turns free-form multi-line text into validated squad log
entries resolved against the remote catalog.

Examples:
  crewlog parse "Alpha - Jane Doe - Review - Backend - 10-01-2025"
  crewlog submit --file logs.txt`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return logger.Initialize(cfg.Log.JSON)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the crewlog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Parse batch text without touching the catalog",
	Long: `Parses multi-line batch text and prints the candidate entries.
Reads from stdin when no argument is given. No catalog resolution happens;
use submit to validate and create entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputText(args)
		if err != nil {
			return err
		}
		if !batch.CanParse(text) {
			return errors.New("no parseable lines in input")
		}
		for _, e := range batch.ParseText(text) {
			printEntry(e)
		}
		return nil
	},
}

var submitFile string

var submitCmd = &cobra.Command{
	Use:   "submit [text]",
	Short: "Parse, validate against the catalog, and create log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		text, err := inputText(args)
		if err != nil {
			return err
		}
		entries := batch.ParseText(text)
		if len(entries) == 0 {
			return errors.New("no parseable lines in input")
		}

		client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Token, cfg.Catalog.Timeout)
		validator := batch.NewValidator(client, logger.Logger)

		ctx := context.Background()
		result, err := validator.Validate(ctx, entries)
		if err != nil {
			return describeCatalogFailure(err)
		}

		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, msg)
		}
		if len(result.ValidEntries) == 0 {
			return errors.Newf("no valid entries out of %d parsed", result.TotalProcessed)
		}

		creator := batch.NewCreator(client, cfg.Sink.CreatesPerSecond, logger.Logger)
		report := creator.CreateAll(ctx, result.ValidEntries)

		fmt.Printf("report %s: %d created, %d failed\n",
			report.ID, len(report.Created), len(report.Failures))
		for _, f := range report.Failures {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", f.Entry.LineNumber, f.Err)
		}
		if len(report.Failures) > 0 {
			return errors.Newf("%d entries failed", len(report.Failures))
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the long-lived session runtime",
	Long: `Holds per-user wizard and batch state with TTL expiry and sweeps
expired sessions in the background. Runs until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg)
	},
}

// runServe blocks until ctx is cancelled
func runServe(ctx context.Context, cfg *config.Config) error {
	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Token, cfg.Catalog.Timeout)
	if _, err := client.ListLogTypes(ctx); err != nil {
		logger.Warnw("catalog not reachable at startup", "error", describeCatalogFailure(err))
	}

	store := session.New(cfg.Session.TTL)
	reaper := session.NewReaper(store, cfg.Session.SweepInterval, logger.Logger)
	reaper.Start()
	defer reaper.Stop()

	logger.Infow("crewlog serving",
		"session_ttl", cfg.Session.TTL,
		"sweep_interval", cfg.Session.SweepInterval)

	<-ctx.Done()
	wizards, batches := store.Len()
	logger.Infow("shutting down", "wizards", wizards, "batches", batches)
	return nil
}

// describeCatalogFailure turns a typed catalog error into actionable output
func describeCatalogFailure(err error) error {
	switch {
	case errors.IsTimeout(err):
		return errors.WithHint(err, "the catalog is slow, try again")
	case errors.IsUnauthorized(err):
		return errors.WithHint(err, "set CREWLOG_CATALOG_TOKEN to a valid token")
	case errors.IsUnavailable(err):
		return errors.WithHint(err, "check catalog.base_url and network connectivity")
	default:
		return err
	}
}

func inputText(args []string) (string, error) {
	if submitFile != "" {
		data, err := os.ReadFile(submitFile)
		if err != nil {
			return "", errors.Wrap(err, "failed to read input file")
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read stdin")
	}
	return string(data), nil
}

func printEntry(e batch.Entry) {
	fmt.Printf("line %d: %s | %s | %s | %v | %s",
		e.LineNumber, e.SquadName, e.PersonName, e.LogType, e.Categories,
		e.StartDate.Format("2006-01-02"))
	if e.EndDate != nil {
		fmt.Printf(" .. %s", e.EndDate.Format("2006-01-02"))
	}
	fmt.Printf(" | %s\n", e.Description)
}

func init() {
	parseCmd.Flags().StringVarP(&submitFile, "file", "f", "", "read batch text from a file")
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "read batch text from a file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
