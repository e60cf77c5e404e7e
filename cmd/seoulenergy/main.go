package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := interruptContext()
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// interruptContext is cancelled on Ctrl-C so in-flight requests and chart
// windows unwind
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
