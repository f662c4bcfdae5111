package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"pokervr-matchlog/internal/db"
	"pokervr-matchlog/internal/ipc"
	"pokervr-matchlog/internal/parser"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	if err := loadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitFailure)
	}

	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitFailure)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Initialize output handler
	output := ipc.NewOutput()
	if err := output.SetLevel(cfg.LogLevel); err != nil {
		output.Error(fmt.Sprintf("invalid log level %q: %v", cfg.LogLevel, err))
		os.Exit(exitFailure)
	}

	// Run the parser
	if cfg.Mode == modeJSON {
		err = runJSON(ctx, cfg, output)
	} else {
		err = run(ctx, cfg, output)
	}

	if err != nil {
		output.Error(err.Error())
		os.Exit(exitFailure)
	}

	os.Exit(exitSuccess)
}

// parseLog opens the log, parses the configured hands and reports every
// failed hand. The log file is closed on every return path.
func parseLog(ctx context.Context, cfg *config, output *ipc.Output) (*parser.Report, error) {
	output.Log("info", fmt.Sprintf("Starting parser for log: %s", cfg.LogPath))

	p, err := parser.NewParser(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}
	defer p.Close()

	stats := newStatsLogger(output, cfg.StatsEvery)
	opts := parser.Options{
		Workers:     cfg.Workers,
		FailFast:    cfg.FailFast,
		MaxFailures: cfg.MaxFailures,
		Hands:       cfg.Hands,
	}
	report, err := p.Parse(ctx, opts, func(stage string, done, total int, pct float64) {
		output.Progress(stage, done, total, pct)
		if stage == "parse" {
			stats.observe(done, total)
		}
	})
	if report != nil {
		for _, he := range report.Failures() {
			output.HandError(he)
		}
	}
	if err != nil {
		var he *parser.HandError
		if errors.As(err, &he) {
			return report, fmt.Errorf("stopped at first failure: %w", err)
		}
		return report, err
	}

	output.Log("info", fmt.Sprintf("Parsed %d of %d hands, %d failed", report.Parsed, report.Total, report.Failed))
	if report.Stopped {
		output.Log("warn", fmt.Sprintf("Failure budget of %d reached, remaining hands skipped", cfg.MaxFailures))
	}
	return report, nil
}

// runJSON runs the parser in JSON output mode.
func runJSON(ctx context.Context, cfg *config, output *ipc.Output) error {
	output.Log("info", fmt.Sprintf("Output JSON: %s", cfg.OutputPath))

	report, err := parseLog(ctx, cfg, output)
	if err != nil {
		return err
	}

	hands := report.Hands()
	if len(cfg.Hands) == 1 {
		if len(hands) == 0 {
			return fmt.Errorf("hand %d could not be parsed", cfg.Hands[0])
		}
		err = writeHandJSON(hands[0], cfg.OutputPath)
	} else {
		err = writeHandsJSON(hands, cfg.OutputPath)
	}
	if err != nil {
		return err
	}

	output.Log("info", "Parsing complete!")
	output.Progress("complete", report.Parsed, report.Total, 1.0)
	return nil
}

// run runs the parser in database mode.
func run(ctx context.Context, cfg *config, output *ipc.Output) error {
	output.Log("info", fmt.Sprintf("Output database: %s", cfg.DBPath))

	// Open database
	output.Log("info", "Opening database...")
	dbConn, err := db.Open(ctx, cfg.Driver, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer dbConn.Close()

	writer := db.NewWriter(dbConn)
	reader := db.NewReader(dbConn)

	runID := uuid.New().String()
	output.Log("info", fmt.Sprintf("Run ID: %s", runID))
	if err := writer.InsertRun(ctx, db.Run{ID: runID, LogPath: cfg.LogPath, StartedAt: time.Now()}); err != nil {
		return err
	}
	if err := writer.SetMeta(ctx, "last_run", runID); err != nil {
		return err
	}

	report, parseErr := parseLog(ctx, cfg, output)
	if report == nil {
		// The run row is closed even when the log never got parsed.
		if err := writer.FinishRun(context.WithoutCancel(ctx), runID, 0, 0, time.Now()); err != nil {
			return errors.Join(parseErr, err)
		}
		return parseErr
	}

	output.Log("info", fmt.Sprintf("Writing %d hands...", report.Parsed))
	if err := storeReport(ctx, writer, runID, report); err != nil {
		return err
	}
	if err := writer.FinishRun(ctx, runID, report.Parsed, report.Failed, time.Now()); err != nil {
		return err
	}
	if parseErr != nil {
		return parseErr
	}

	stored, err := reader.CountHands(ctx, runID)
	if err != nil {
		return err
	}
	failures, err := reader.GetFailures(ctx, runID)
	if err != nil {
		return err
	}
	output.Log("info", fmt.Sprintf("Stored %d hands and %d failures", stored, len(failures)))

	output.Log("info", "Parsing complete!")
	output.Progress("complete", report.Parsed, report.Total, 1.0)
	return nil
}
