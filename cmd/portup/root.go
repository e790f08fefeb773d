package main

import (
	"github.com/spf13/cobra"

	"github.com/portup-dev/portup/internal/config"
	"github.com/portup-dev/portup/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", messages.RootFlagConfig)

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newPendingCmd())
	cmd.AddCommand(newLogsCmd())
	return cmd
}

// loadConfig resolves the config path from the persistent --config flag
// and loads the configuration. A missing file yields the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, "", err
	}
	path, err := config.ResolveConfigPath(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
