package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/khanhnv2901/industrilock/internal/application"
	checkapp "github.com/khanhnv2901/industrilock/internal/application/check"
	"github.com/khanhnv2901/industrilock/internal/domain/audit"
	"github.com/spf13/cobra"
)

func runAudit(cmd *cobra.Command, args []string) error {
	cliConfig.Target.Host = args[0]
	if err := validateTarget(cliConfig.Target.Host); err != nil {
		return err
	}
	if cliConfig.Target.APIEndpoint != "" {
		if err := validateEndpoint(cliConfig.Target.APIEndpoint); err != nil {
			return err
		}
	}

	l, err := newFileLogger(cliConfig.Output.LogFile)
	if err != nil {
		return err
	}
	logger = l.Sugar()
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	stop := handleInterrupts(out)
	defer stop()

	createdAt := time.Now()
	container, err := application.NewContainer(probeConfig(cliConfig), cliConfig.Output.ResultsDir, createdAt, logger)
	if err != nil {
		return err
	}

	orchestrator := container.Orchestrator
	fmt.Fprintf(out, "%s Target: %s\n", colorInfo("→"), cliConfig.Target.Host)
	fmt.Fprintf(out, "%s Probes: %s\n", colorInfo("→"), strings.Join(orchestrator.Probes(), ", "))
	fmt.Fprintln(out)

	summary, err := orchestrator.Run(context.Background())
	if err != nil {
		return err
	}

	printSummary(out, cmd.ErrOrStderr(), summary)
	return nil
}

func probeConfig(c *CLIConfig) checkapp.Config {
	return checkapp.Config{
		Target: audit.Target{
			Host:        c.Target.Host,
			SerialPort:  c.Target.SerialPort,
			APIEndpoint: c.Target.APIEndpoint,
		},
		BaudRate:    c.Probe.BaudRate,
		ReadTimeout: c.Probe.ReadTimeout,
		Delay:       c.Probe.Delay,
		HTTPTimeout: c.Probe.HTTPTimeout,
	}
}

func printSummary(out, errOut io.Writer, summary *checkapp.Summary) {
	fmt.Fprintf(out, "%s Audit complete in %s\n", colorSuccess("✓"), summary.Duration.Round(time.Millisecond))
	if len(summary.Findings) == 0 {
		fmt.Fprintf(out, "%s No findings (see the diagnostic log for probes that could not run)\n", colorInfo("→"))
	}
	vulnerable := 0
	for _, f := range summary.Findings {
		if f.IsVulnerable() {
			vulnerable++
		}
		fmt.Fprintf(out, "  - %s\n", formatFindingWithColor(f))
	}
	if vulnerable > 0 {
		fmt.Fprintf(out, "%s %d of %d finding(s) indicate weak authentication\n", colorWarn("!"), vulnerable, len(summary.Findings))
	}

	if summary.ReportErr != nil {
		fmt.Fprintf(errOut, "Warning: failed to write audit log: %v\n", summary.ReportErr)
		return
	}
	fmt.Fprintf(out, "Audit log saved as %s\n", summary.ReportPath)
}
