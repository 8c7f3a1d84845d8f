// Command carbonctl scores carbon footprint surveys from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanqian/carbon-footprint/internal/interface/cli"
	"github.com/yanqian/carbon-footprint/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(logger.NewWithWriter(os.Stderr))
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrPredictionFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
