package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pokervr-matchlog/internal/db"
)

const (
	modeJSON     = "json"
	modeDatabase = "database"
)

// config is the resolved run configuration. Flags override environment
// variables, which may come from a .env file next to the binary.
type config struct {
	LogPath     string
	Hands       []int // nil selects every hand
	Mode        string
	OutputPath  string
	DBPath      string
	Driver      string
	Workers     int
	FailFast    bool
	MaxFailures int
	LogLevel    string
	StatsEvery  int
}

// loadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func loadConfig(args []string, getenv func(string) string) (*config, error) {
	envOr := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	flags := flag.NewFlagSet("parser", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var (
		logPath     = flags.String("log", envOr("LOG", ""), "Path to the PokerStars VR MatchLog.txt (env LOG)")
		hands       = flags.String("hand", envOr("HAND", "all"), "Hand index to parse, a comma-separated list, or 'all' (env HAND)")
		mode        = flags.String("mode", envOr("MODE", modeJSON), "Output mode: 'json' or 'database' (env MODE)")
		outputPath  = flags.String("output", envOr("OUTPUT", "match.json"), "Path to output file for json mode (env OUTPUT)")
		dbPath      = flags.String("out", envOr("DB", ""), "Path to output SQLite database for database mode (env DB)")
		driver      = flags.String("driver", envOr("DB_DRIVER", db.DriverPureGo), "SQLite driver: 'sqlite' (pure Go) or 'sqlite3' (cgo)")
		workers     = flags.Int("workers", runtime.NumCPU(), "Number of hands parsed in parallel")
		failFast    = flags.Bool("fail-fast", false, "Stop at the first hand that fails to parse")
		maxFailures = flags.Int("max-failures", 0, "Stop submitting hands after this many failures (0 = no limit)")
		logLevel    = flags.String("log-level", envOr("LOG_LEVEL", "info"), "Minimum log level (env LOG_LEVEL)")
		statsEvery  = flags.Int("stats-every", 0, "Log throughput and heap use every N parsed hands (0 = off)")
	)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg := &config{
		LogPath:     *logPath,
		Mode:        *mode,
		OutputPath:  *outputPath,
		DBPath:      *dbPath,
		Driver:      *driver,
		Workers:     *workers,
		FailFast:    *failFast,
		MaxFailures: *maxFailures,
		LogLevel:    *logLevel,
		StatsEvery:  *statsEvery,
	}

	// Validate required arguments
	if cfg.LogPath == "" {
		return nil, errors.New("--log (or LOG) is required")
	}

	selected, err := parseHandSelection(*hands)
	if err != nil {
		return nil, err
	}
	cfg.Hands = selected

	// Validate output path based on mode
	switch cfg.Mode {
	case modeJSON:
		if cfg.OutputPath == "" {
			return nil, errors.New("--output is required when --mode=json")
		}
	case modeDatabase:
		if cfg.DBPath == "" {
			return nil, errors.New("--out is required when --mode=database")
		}
		if cfg.Driver != db.DriverPureGo && cfg.Driver != db.DriverCGO {
			return nil, fmt.Errorf("--driver must be %q or %q", db.DriverPureGo, db.DriverCGO)
		}
	default:
		return nil, fmt.Errorf("--mode must be %q or %q", modeJSON, modeDatabase)
	}

	if cfg.Workers < 1 {
		return nil, errors.New("--workers must be at least 1")
	}
	if cfg.MaxFailures < 0 {
		return nil, errors.New("--max-failures must not be negative")
	}
	return cfg, nil
}

func parseHandSelection(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	hands := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid hand index %q", part)
		}
		hands = append(hands, n)
	}
	if len(hands) == 0 {
		return nil, fmt.Errorf("invalid hand selection %q", s)
	}
	return hands, nil
}
