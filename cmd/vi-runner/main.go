package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/vi-runner/config"
)

var (
	configFlag   = flag.String("config", "", "YAML config file; built-in defaults when empty")
	logLevelFlag = flag.String("log-level", "", "Override log level: debug, info, warn, error")
	logFileFlag  = flag.String("log", "", "Override log file path")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
)

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return nil, err
		}
	}
	if *logLevelFlag != "" {
		cfg.Log.Level = *logLevelFlag
	}
	if *logFileFlag != "" {
		cfg.Log.Path = *logFileFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	a, cleanup, err := initializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = a.run(ctx)
	stop()
	cleanup()

	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-runner: %v\n", err)
		os.Exit(1)
	}
}
