package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger

var osExit = os.Exit

var rootCmd = &cobra.Command{
	Use:   "industrilock <target>",
	Short: "Door control system authentication audit (for authorized testing only)",
	Long: `IndustriLock brute-forces 4-digit PINs over a serial line and an HTTP API,
probes the SCADA integration with an invalid key, and writes a JSON audit record.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".industrilock")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("INDUSTRILOCK")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()
		applyConfigDefaults(cmd)

		if cliConfig.Output.NoColor {
			color.NoColor = true
		}
		return nil
	},
	RunE: runAudit,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		if logger != nil {
			logger.Errorf("Unexpected error: %v", err)
			_ = logger.Sync()
		}
		osExit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.industrilock.yaml)")

	flags := rootCmd.Flags()
	flags.StringVar(&cliConfig.Target.SerialPort, "serial", "", "serial port for direct hardware access (e.g., /dev/ttyUSB0)")
	flags.StringVar(&cliConfig.Target.APIEndpoint, "api", "", "API endpoint for IP-based systems (e.g., http://192.168.1.100/api)")
	flags.DurationVar(&cliConfig.Probe.Delay, "delay", cliConfig.Probe.Delay, "fixed delay between PIN attempts")
	flags.DurationVar(&cliConfig.Probe.HTTPTimeout, "timeout", cliConfig.Probe.HTTPTimeout, "per-request HTTP timeout")
	flags.IntVar(&cliConfig.Probe.BaudRate, "baud", cliConfig.Probe.BaudRate, "serial baud rate")
	flags.DurationVar(&cliConfig.Probe.ReadTimeout, "read-timeout", cliConfig.Probe.ReadTimeout, "serial read timeout")
	flags.StringVar(&cliConfig.Output.ResultsDir, "results-dir", cliConfig.Output.ResultsDir, "directory for the JSON audit record")
	flags.StringVar(&cliConfig.Output.LogFile, "log-file", cliConfig.Output.LogFile, "append-only diagnostic log")
	flags.BoolVar(&cliConfig.Output.NoColor, "no-color", false, "disable colored output")

	// add subcommands
	rootCmd.AddCommand(versionCmd)
}
