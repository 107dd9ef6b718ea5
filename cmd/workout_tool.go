package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/lowaak/workout-tool/internal/config"
	"github.com/lowaak/workout-tool/internal/events"
	"github.com/lowaak/workout-tool/internal/logging"
	"github.com/lowaak/workout-tool/internal/workout"
)

const version = "0.1.0"

func main() {
	fs := pflag.NewFlagSet("workout-tool", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: workout-tool [flags]\n\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}
	if help, _ := fs.GetBool(config.FlagHelp); help {
		fs.Usage()
		return
	}
	if showVersion, _ := fs.GetBool(config.FlagVersion); showVersion {
		fmt.Printf("workout-tool %s\n", version)
		return
	}

	if err := run(fs); err != nil {
		fmt.Fprintf(os.Stderr, "workout-tool: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *pflag.FlagSet) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	session, err := logging.NewSession(cfg.Log)
	if err != nil {
		return err
	}
	defer session.Close()
	logger := session.Logger
	logger.Printf("Main: Starting workout-tool %s (session %s, config %q)", version, session.ID, cfg.File)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	terminal, err := workout.NewTcellTerminal(screen, cfg.UI.Mouse, logger)
	if err != nil {
		return err
	}
	// Idempotent; the Controller tears down first on the normal exit path
	defer terminal.Teardown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := events.NewQueue()
	defer queue.Close(nil)
	source := events.NewSource(events.NewSourceArg{
		Poller: terminal.Screen(),
		Queue:  queue,
		Logger: logger,
	})
	source.Start(ctx)

	controller := workout.NewController(workout.NewControllerArg{
		Queue:    queue,
		Renderer: workout.NewTviewRenderer(terminal.Screen(), cfg.UI.Title, logger),
		Terminal: terminal,
		Logger:   logger,
	})

	err = controller.Run(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		logger.Println("Main: Interrupted by signal")
		return nil
	}
	if err != nil {
		logger.Printf("Main: Fatal: %v", err)
		return err
	}
	logger.Println("Main: Exited")
	return nil
}
