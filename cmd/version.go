package cmd

import (
	"fmt"
	"runtime"

	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	"github.com/spf13/cobra"
)

// Version information (injected at build time via -ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and probe defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "IndustriLock version %s\n", Version)

		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			return
		}
		fmt.Fprintf(out, "  Build:        %s (%s), %s %s/%s\n",
			GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  PIN space:    %0*d-%d (%d candidates)\n",
			consts.PINWidth, 0, consts.PINSpaceSize-1, consts.PINSpaceSize)
		fmt.Fprintf(out, "  Serial:       %d baud 8N1, %s read timeout, marker %q\n",
			consts.DefaultBaudRate, consts.DefaultSerialReadTimeout, consts.SerialSuccessMarker)
		fmt.Fprintf(out, "  HTTP:         %s timeout, SCADA path %s\n",
			consts.DefaultHTTPTimeout, consts.ScadaPath)
		fmt.Fprintf(out, "  Attempt gap:  %s after each attempt\n", consts.DefaultAttemptDelay)
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Also show build details and probe defaults")
}
