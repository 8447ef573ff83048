package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/logos/pkg/aggregator"
	"github.com/umputun/logos/pkg/config"
	"github.com/umputun/logos/pkg/digest"
	"github.com/umputun/logos/pkg/repository"
	"github.com/umputun/logos/pkg/scheduler"
	"github.com/umputun/logos/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"config file, built-in defaults if not set"`
	Target  string `short:"t" long:"target" env:"TARGET" description:"print digest of a category, source or help and exit"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file loaded on start"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// stdout receives one-shot digests
var stdout io.Writer = os.Stdout

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting logos version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			lgr.Printf("[WARN] can't load env file %s: %v", opts.EnvFile, err)
		}
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, opts.NoColor, cfg.Translate.APIKey, os.Getenv(cfg.NewsAPI.KeyEnv))

	if opts.Target != "" {
		return printDigest(ctx, cfg, opts.Target)
	}
	return serve(ctx, cfg, opts)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(nil)
	}
	return config.Load(path)
}

// printDigest aggregates a single target and writes message chunks to stdout
func printDigest(ctx context.Context, cfg *config.Config, name string) error {
	if aggregator.IsHelpCommand(name) {
		if _, err := io.WriteString(stdout, digest.Help(cfg.Registry().All())+"\n"); err != nil {
			return fmt.Errorf("failed to write help: %w", err)
		}
		return nil
	}

	target, ok := aggregator.ResolveCommand(name, cfg.Registry())
	if !ok {
		return fmt.Errorf("unknown target %q, use a category (%s) or a source name", name, categoryNames())
	}

	agg := aggregator.New(aggregator.Params{
		Fetcher:   newEngine(cfg),
		Registry:  cfg.Registry(),
		Formatter: digest.NewFormatter(cfg.Fetch.MaxText),
		Attempts:  cfg.Fetch.Attempts,
	})
	res := agg.Aggregate(ctx, target)

	chunks := digest.Split(digest.Render(res), digest.MaxMessageLen)
	if _, err := io.WriteString(stdout, strings.Join(chunks, "\n\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return nil
}

// serve runs the http server with the polling scheduler until ctx is canceled
func serve(ctx context.Context, cfg *config.Config, opts Opts) error {
	targets, err := cfg.Targets()
	if err != nil {
		return fmt.Errorf("failed to resolve schedule targets: %w", err)
	}

	repo, err := repository.New(ctx, repository.Config{DSN: cfg.Database.DSN})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	agg := aggregator.New(aggregator.Params{
		Fetcher:   newEngine(cfg),
		Registry:  cfg.Registry(),
		Formatter: digest.NewFormatter(cfg.Fetch.MaxText),
		Health:    repo,
		Attempts:  cfg.Fetch.Attempts,
	})

	sched := scheduler.NewScheduler(scheduler.Params{Aggregator: agg, Interval: cfg.Schedule.Interval, Targets: targets})
	sched.Start(ctx)
	defer sched.Stop()

	maxAge := cfg.Schedule.Interval
	if maxAge <= 0 {
		maxAge = defaultDigestMaxAge
	}
	srv := server.New(server.Params{
		Config:   cfg,
		Registry: cfg.Registry(),
		Digests:  sched,
		Health:   repo,
		BaseURL:  cfg.Server.BaseURL,
		MaxAge:   maxAge,
		Version:  revision,
		Debug:    opts.Debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
