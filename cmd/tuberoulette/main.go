// Tube Roulette is a terminal shotgun duel between a human and a heuristic dealer.
// Usage: tuberoulette [--version] [--plain] [--script <file>] [--trace] [--seed <n>]
//
//	[--rules <file.lua>] [--transcript <file.json>] [--log-level <level>] [--log-file <file>]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/tuberoulette/cli"
	"github.com/nathoo/tuberoulette/config"
	"github.com/nathoo/tuberoulette/engine"
	"github.com/nathoo/tuberoulette/engine/record"
	"github.com/nathoo/tuberoulette/loader"
	"github.com/nathoo/tuberoulette/tui"
	"github.com/nathoo/tuberoulette/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: tuberoulette [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--rules <file.lua>] [--transcript <file.json>] [--log-level <level>] [--log-file <file>]"

// options holds parsed command-line flags.
type options struct {
	plain      bool
	trace      bool
	seed       *int64
	scriptFile string
	rulesFile  string
	transcript string
	logLevel   string
	logFile    string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, done, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}
	if done {
		return 0
	}

	cfg, warnings, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := newLogger(cfg, opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	for _, w := range warnings {
		log.WithField("rules", opts.rulesFile).Warn(w)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A blocked stdin read never sees a cancelled context, so an interrupt
	// ends the process directly.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		cancel()
		fmt.Println("\nInterrupted. Bye.")
		os.Exit(130)
	}()

	eng, outcome, err := play(ctx, cfg, opts, log)
	if eng != nil && opts.transcript != "" {
		if werr := record.WriteFile(opts.transcript, record.Build(eng.State, eng.RNG.Position())); werr != nil {
			fmt.Fprintf(os.Stderr, "Error writing transcript: %v\n", werr)
		}
	}

	switch {
	case errors.Is(err, cli.ErrQuit), errors.Is(err, tui.ErrQuit):
		return 0
	case errors.Is(err, engine.ErrInvariant):
		log.WithError(err).Error("engine invariant violated")
		fmt.Fprintf(os.Stderr, "Fatal: %+v\n", err)
		return 2
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.WithField("outcome", outcome).Info("game finished")
	return 0
}

// parseArgs reads flags. done is true when the invocation is fully
// handled (e.g. --version).
func parseArgs(args []string) (options, bool, error) {
	var opts options

	value := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--version":
			fmt.Printf("tuberoulette %s (commit %s, built %s)\n", version, commit, date)
			return opts, true, nil
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--seed":
			var v string
			if v, err = value(&i, "--seed"); err == nil {
				var n int64
				n, err = strconv.ParseInt(v, 10, 64)
				if err != nil {
					err = fmt.Errorf("--seed: %q is not an integer", v)
				}
				opts.seed = &n
			}
		case "--script":
			opts.scriptFile, err = value(&i, "--script")
		case "--rules":
			opts.rulesFile, err = value(&i, "--rules")
		case "--transcript":
			opts.transcript, err = value(&i, "--transcript")
		case "--log-level":
			opts.logLevel, err = value(&i, "--log-level")
		case "--log-file":
			opts.logFile, err = value(&i, "--log-file")
		default:
			err = fmt.Errorf("unknown argument %q", args[i])
		}
		if err != nil {
			return opts, false, err
		}
	}
	return opts, false, nil
}

// loadConfig layers defaults, house rules, environment, then flags.
func loadConfig(opts options) (config.Config, []string, error) {
	cfg := config.Default()
	var warnings []string

	if opts.rulesFile != "" {
		var err error
		cfg, warnings, err = loader.Load(opts.rulesFile, cfg)
		if err != nil {
			return cfg, nil, fmt.Errorf("loading house rules: %w", err)
		}
	}
	if err := config.FromEnv(&cfg); err != nil {
		return cfg, nil, err
	}
	if opts.seed != nil {
		cfg = cfg.WithSeed(*opts.seed)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, warnings, nil
}

// newLogger builds the diagnostics logger. Output goes to stderr unless a
// log file is given.
func newLogger(cfg config.Config, path string) (*logrus.Logger, func(), error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}
	log.SetOutput(out)
	return log, closer, nil
}

// play seats the game in the line CLI or the TUI and runs it.
func play(ctx context.Context, cfg config.Config, opts options, log *logrus.Logger) (*engine.Engine, types.Outcome, error) {
	// Script mode: read moves from a file, force plain, echo input.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return nil, types.OutcomeNone, fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := cli.New(f, os.Stdout)
		c.EchoInput = true
		return playCLI(ctx, cfg, c, opts, log)
	}

	// Use plain CLI if --plain flag or the terminal is not interactive.
	if opts.plain || !isTerminal() {
		return playCLI(ctx, cfg, cli.New(os.Stdin, os.Stdout), opts, log)
	}

	b := tui.NewBridge()
	b.Trace = opts.trace
	eng, err := engine.New(cfg, b, engine.WithLogger(log), engine.WithNarrator(b.Narrate))
	if err != nil {
		return nil, types.OutcomeNone, err
	}
	outcome, err := tui.Run(ctx, eng, b)
	return eng, outcome, err
}

func playCLI(ctx context.Context, cfg config.Config, c *cli.CLI, opts options, log *logrus.Logger) (*engine.Engine, types.Outcome, error) {
	eng, err := engine.New(cfg, c, engine.WithLogger(log), engine.WithNarrator(c.Narrate))
	if err != nil {
		return nil, types.OutcomeNone, err
	}
	c.Engine = eng
	c.Trace = opts.trace
	outcome, err := c.Run(ctx)
	return eng, outcome, err
}

// isTerminal returns true if both stdin and stdout are terminals.
func isTerminal() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		fi, err := f.Stat()
		if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}
