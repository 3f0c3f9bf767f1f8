// Command linkedlist runs the LinkedList self-test and merge sort benchmark,
// optionally publishing the benchmark results to S3 and Slack.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Invicton-Labs/go-linkedlist/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
