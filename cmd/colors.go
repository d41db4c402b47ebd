package cmd

import (
	"github.com/fatih/color"
	"github.com/khanhnv2901/industrilock/internal/domain/finding"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatFindingWithColor(f finding.Finding) string {
	switch f.Severity {
	case finding.SeverityCritical:
		return colorError(f.String())
	case finding.SeverityHigh:
		return colorWarn(f.String())
	case finding.SeverityInfo:
		return colorSuccess(f.String())
	default:
		return f.String()
	}
}
