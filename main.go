package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"splitkit/cmd"
	"splitkit/pkg/logging"
	"splitkit/pkg/ui"
	"splitkit/pkg/version"
)

func main() {
	logger, err := logging.Setup(logging.Options{
		AppName:    "splitkit",
		AppVersion: version.Get().Version,
	})
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = cmd.Execute(ctx, logger)
	stop()
	if err != nil {
		logger.Debug("splitkit execution failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, ui.Failed("%v", err))
		if hint := cmd.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, ui.Hint("%s", hint))
		}
		logging.Sync(logger)
		os.Exit(cmd.ExitCode(err))
	}
	logging.Sync(logger)
}
