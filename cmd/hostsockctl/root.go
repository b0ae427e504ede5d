package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hostsockctl",
		Short:         "Connect to a host WebSocket endpoint and observe its protocol",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("url", "", "WebSocket URL to dial (required)")
	flags.Int("max-retries", 10, "leader-avoidance retries before giving up")
	flags.Duration("retry-base-delay", 0, "base reconnect backoff delay (0 = use client default)")
	flags.Duration("retry-max-delay", 0, "max reconnect backoff delay (0 = use client default)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Uint8("tag", 0, "Wire3 message tag byte")
	flags.String("metrics-listen", "", "if set, serve Prometheus metrics on this address")

	for _, name := range []string{"url", "max-retries", "retry-base-delay", "retry-max-delay", "debug", "tag", "metrics-listen"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvPrefix("HOSTSOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.AddCommand(connectCmd(), versionCmd())
	return cmd
}
