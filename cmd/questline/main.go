// Questline is a menu-driven, quest-based text RPG.
// Usage: questline [--version] [--plain] [--script <file>] [--trace] [game_directory]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/cancelreader"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/cli"
	"github.com/nathoo/questline/config"
	"github.com/nathoo/questline/engine"
	"github.com/nathoo/questline/loader"
	"github.com/nathoo/questline/logging"
	"github.com/nathoo/questline/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args and plays the game, returning the exit code. Deferred
// cleanup such as closing the log file runs before main exits.
func run(args []string) int {
	plain := false
	trace := false
	var gameDir string
	var scriptFile string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("questline %s (commit %s, built %s)\n", version, commit, date)
			return 0
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				return 1
			}
			i++
			scriptFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	settings, err := config.Parse(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if gameDir == "" {
		gameDir = settings.GameDir
	}

	log, closeLog, err := logging.New(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	eng, err := build(gameDir, settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Script mode: open file, force plain, echo commands, no pacing.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		printTitle(eng)
		c := cli.New(eng, 0)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run(ctx)
		return 0
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		printTitle(eng)
		c := cli.New(eng, settings.TextSpeed)
		c.Trace = trace
		// A cancellable stdin lets the reader goroutine stop when the game ends.
		if in, err := cancelreader.NewReader(os.Stdin); err == nil {
			defer in.Close()
			c.In = in
		} else {
			log.WithError(err).Debug("stdin is not cancellable")
		}
		c.Run(ctx)
		return 0
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// build loads the game content and balance file and creates the engine.
func build(gameDir string, s config.Settings, log *logrus.Logger) (*engine.Engine, error) {
	balancePath, optional := s.Balance, false
	if balancePath == "" {
		balancePath, optional = filepath.Join(gameDir, "balance.yaml"), true
	}
	balance, err := config.LoadBalance(balancePath, optional)
	if err != nil {
		return nil, err
	}

	cat, err := loader.Load(gameDir, log)
	if err != nil {
		return nil, err
	}

	opts := balance.Options()
	opts.Seed = s.Seed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	opts.Log = log
	log.WithFields(logrus.Fields{"seed": opts.Seed, "game": gameDir}).Info("starting")
	return engine.New(cat, opts), nil
}

func printTitle(eng *engine.Engine) {
	g := eng.Catalog.Game
	fmt.Printf("%s v%s by %s\n\n", g.Title, g.Version, g.Author)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
