// Package main is the entry point for the parley chat client.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/parleychat/parley/internal/app"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to the user configuration file")
		logFile     = flag.String("log-file", "", "write logs to this file (disabled when empty)")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		debug       = flag.Bool("debug", false, "enable debug logging")
		sender      = flag.String("sender", "me", "display name for outgoing messages")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("parley %s (%s)\n", version, commit)
		return 0
	}

	log, err := app.NewLogger(*logFile, *logLevel, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync()

	userCfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: resolve config: %v\n", err)
		return 1
	}

	engine, err := app.New(app.Options{
		Sender:     *sender,
		UserConfig: userCfg,
		Log:        log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer engine.Close()

	backend := chat.NewLocalBackend(engine.Events())
	engine.SetBackend(backend)
	backend.Start()

	if userCfg.Path != "" {
		watcher, err := config.Watch(userCfg.Path, engine.Events(), log)
		if err != nil {
			log.Warn("config watcher unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	screen, err := term.New(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open terminal: %v\n", err)
		return 1
	}
	defer screen.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Close()
	}()

	engine.OnUpdate(func() {
		screen.Paint(engine.Snapshot())
	})
	engine.Run(screen.Keys())
	return 0
}
