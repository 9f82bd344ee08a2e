// Package main provides the bowlingscore command, which scores ten-pin bowling
// games given as whitespace-separated roll counts.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/cory-johannsen/bowling/internal/config"
	"github.com/cory-johannsen/bowling/internal/game/bowling"
	"github.com/cory-johannsen/bowling/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and BOWLING_* env when empty)")
	dumpMetrics := flag.Bool("metrics", false, "write scoring metrics to stderr on exit (same as metrics.enabled)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bowlingscore [-config <file>] [-metrics] [rolls...]")
		fmt.Fprintln(os.Stderr, "with no rolls, scores one game per line of standard input")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg, opts, err := setupMetrics(cfg.Metrics, *dumpMetrics)
	if err != nil {
		logger.Fatal("creating score metrics", zap.Error(err))
	}

	rules := cfg.Rules.Rules()
	scorer := bowling.NewScorer(bowling.NewParser(rules), logger, opts...)
	logger.Debug("scorer ready",
		zap.Int("pins", rules.Pins),
		zap.Int("frames", rules.Frames),
		zap.Duration("startup", time.Since(start)),
	)

	failures, err := run(context.Background(), scorer, flag.Args(), os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		logger.Fatal("reading rolls", zap.Error(err))
	}

	if reg != nil {
		if err := writeMetrics(reg, os.Stderr); err != nil {
			logger.Error("writing metrics", zap.Error(err))
		}
	}

	logger.Debug("done",
		zap.Int("failures", failures),
		zap.Duration("elapsed", time.Since(start)),
	)
	if failures > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// setupMetrics builds the registry that is dumped on exit when metrics are
// enabled by config or by flag.
//
// Postcondition: Returns a nil registry and no options when metrics are off.
func setupMetrics(cfg config.MetricsConfig, flagged bool) (*prometheus.Registry, []bowling.Option, error) {
	if !cfg.Enabled && !flagged {
		return nil, nil, nil
	}
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewScoreMetrics(reg, cfg)
	if err != nil {
		return nil, nil, err
	}
	return reg, []bowling.Option{bowling.WithRecorder(metrics)}, nil
}

// run scores the game given by args, or one game per non-blank line of stdin
// when args is empty.
//
// Postcondition: Returns the number of games that failed to score, or an error
// if stdin could not be read.
func run(ctx context.Context, scorer *bowling.Scorer, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	if len(args) > 0 {
		return scoreLine(ctx, scorer, strings.Join(args, " "), stdout, stderr), nil
	}

	failures := 0
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		failures += scoreLine(ctx, scorer, line, stdout, stderr)
	}
	if err := sc.Err(); err != nil {
		return failures, fmt.Errorf("scanning stdin: %w", err)
	}
	return failures, nil
}

func scoreLine(ctx context.Context, scorer *bowling.Scorer, line string, stdout, stderr io.Writer) int {
	res, err := scorer.Score(ctx, line)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s: %v\n", bowling.KindOf(err), err)
		return 1
	}
	fmt.Fprintln(stdout, res.Total)
	return 0
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
