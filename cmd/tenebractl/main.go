package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"tenebractl/internal/daemonctl"
)

func main() {
	daemonctl.MaybeRunHelper()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
