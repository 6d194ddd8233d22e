package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blockminer/app"
	"github.com/kaspanet/blockminer/infrastructure/config"
	"github.com/kaspanet/blockminer/infrastructure/logger"
	"github.com/kaspanet/blockminer/infrastructure/os/signal"
	"github.com/kaspanet/blockminer/util/panics"
	"github.com/kaspanet/blockminer/version"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, "main", nil)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		fmt.Println(config.AppName(), "version", version.Version())
		os.Exit(0)
	}

	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
	defer logger.BackendLog.Close()

	// Show version at startup.
	log.Infof("Version %s", version.Version())

	// Enable http profiling server if requested.
	if cfg.Profile != "" {
		startProfiling(cfg.Profile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := signal.InterruptListener()
	spawn("interruptListener", func() {
		<-interrupt
		cancel()
	})

	blocks, err := app.Run(ctx, cfg)
	if err != nil {
		log.Errorf("Mining failed: %+v", err)
		logger.BackendLog.Close()
		os.Exit(1)
	}
	tip := blocks[len(blocks)-1]
	log.Infof("Mined %d blocks. Tip: %s", len(blocks), tip.Hash)
}
