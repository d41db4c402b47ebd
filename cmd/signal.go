package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// handleInterrupts exits with status 0 on SIGINT/SIGTERM without waiting
// for in-flight probes. No partial report is written.
func handleInterrupts(out io.Writer) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go watchInterrupt(sigCh, done, out, osExit)

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func watchInterrupt(sigCh <-chan os.Signal, done <-chan struct{}, out io.Writer, exit func(int)) {
	select {
	case sig := <-sigCh:
		if logger != nil {
			logger.Warnf("Received %s, aborting run", sig)
			_ = logger.Sync()
		}
		fmt.Fprintf(out, "\n%s Test interrupted by user.\n", colorWarn("!"))
		exit(0)
	case <-done:
	}
}
