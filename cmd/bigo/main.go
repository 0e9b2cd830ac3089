package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/davetashner/bigo/internal/redact"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()
	os.Exit(exitCode(err, interrupted))
}

// exitCode prints err to stderr and returns the process exit code.
func exitCode(err error, interrupted bool) int {
	if interrupted || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "bigo: interrupted")
		return ExitInterrupted
	}
	if err == nil {
		return ExitOK
	}
	var ece *exitCodeError
	if errors.As(err, &ece) {
		if ece.msg != "" {
			fmt.Fprintln(os.Stderr, redact.String(ece.msg))
		}
		return ece.code
	}
	fmt.Fprintln(os.Stderr, redact.String(err.Error()))
	return ExitError
}
