package cmd

import (
	"time"

	consts "github.com/khanhnv2901/industrilock/internal/shared/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLIConfig captures runtime configuration for a single audit run.
type CLIConfig struct {
	Target TargetConfig
	Probe  ProbeRuntimeConfig
	Output OutputConfig
}

// TargetConfig holds what the run is pointed at. Only Host is required.
type TargetConfig struct {
	Host        string
	SerialPort  string
	APIEndpoint string
}

// ProbeRuntimeConfig groups pacing and transport settings shared by the probes.
type ProbeRuntimeConfig struct {
	Delay       time.Duration
	HTTPTimeout time.Duration
	BaudRate    int
	ReadTimeout time.Duration
}

// OutputConfig controls where the audit record and diagnostic log go.
type OutputConfig struct {
	ResultsDir string
	LogFile    string
	NoColor    bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Probe: ProbeRuntimeConfig{
			Delay:       consts.DefaultAttemptDelay,
			HTTPTimeout: consts.DefaultHTTPTimeout,
			BaudRate:    consts.DefaultBaudRate,
			ReadTimeout: consts.DefaultSerialReadTimeout,
		},
		Output: OutputConfig{
			ResultsDir: ".",
			LogFile:    consts.DefaultLogFile,
		},
	}
}

// applyConfigDefaults merges config file values into the runtime config when the user
// did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()

	if viper.IsSet("probe.delay") {
		applyDefault(flags, "delay", viper.GetDuration("probe.delay"), func(v time.Duration) {
			cliConfig.Probe.Delay = v
		})
	}

	if viper.IsSet("probe.timeout") {
		applyDefault(flags, "timeout", viper.GetDuration("probe.timeout"), func(v time.Duration) {
			cliConfig.Probe.HTTPTimeout = v
		})
	}

	if viper.IsSet("probe.baud") {
		applyDefault(flags, "baud", viper.GetInt("probe.baud"), func(v int) {
			cliConfig.Probe.BaudRate = v
		})
	}

	if viper.IsSet("probe.read_timeout") {
		applyDefault(flags, "read-timeout", viper.GetDuration("probe.read_timeout"), func(v time.Duration) {
			cliConfig.Probe.ReadTimeout = v
		})
	}

	if viper.IsSet("output.results_dir") {
		applyDefault(flags, "results-dir", viper.GetString("output.results_dir"), func(v string) {
			cliConfig.Output.ResultsDir = v
		})
	}

	if viper.IsSet("output.log_file") {
		applyDefault(flags, "log-file", viper.GetString("output.log_file"), func(v string) {
			cliConfig.Output.LogFile = v
		})
	}

	if viper.IsSet("output.no_color") {
		applyDefault(flags, "no-color", viper.GetBool("output.no_color"), func(v bool) {
			cliConfig.Output.NoColor = v
		})
	}
}

func applyDefault[T any](flags *pflag.FlagSet, name string, value T, setter func(T)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}
