package main

import (
	"strings"

	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "LINKEDLIST"

const (
	flagDev       = "dev"
	flagLogLevel  = "log-level"
	flagLogOutput = "log-output"
)

// newConfig returns a viper instance that resolves every flag from
// LINKEDLIST_<FLAG_NAME> when it isn't set on the command line.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func initLogging(v *viper.Viper) stackerr.Error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(v.GetString(flagLogLevel))); err != nil {
		return stackerr.Wrap(err)
	}
	return log.InitDefault(log.NewInput{
		Name:          "linkedlist",
		Level:         level,
		IsDevelopment: v.GetBool(flagDev),
		Output:        v.GetString(flagLogOutput),
	})
}

func newRootCommand() *cobra.Command {
	v := newConfig()
	cmd := &cobra.Command{
		Use:           "linkedlist",
		Short:         "Self-test and benchmark a singly linked list with merge sort",
		Long:          "Runs the LinkedList self-test, then the merge sort benchmark with its default settings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return stackerr.Wrap(err)
			}
			if err := initLogging(v); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runSelftest(cmd); err != nil {
				return err
			}
			return runBench(cmd, v)
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool(flagDev, false, "use human-readable development logging")
	flags.String(flagLogLevel, "info", "minimum log level (debug, info, warn, error)")
	flags.String(flagLogOutput, "stderr", "log destination: stdout, stderr or a file path")
	addBenchFlags(cmd)

	cmd.AddCommand(newSelftestCommand())
	cmd.AddCommand(newBenchCommand(v))
	return cmd
}
