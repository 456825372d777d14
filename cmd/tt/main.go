package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ttrash/tt/internal/cli"
)

const appName = "tt"

var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}

	if err := cli.Run(ctx, v, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", appName, err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
