package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portup-dev/portup/internal/messages"
	"github.com/portup-dev/portup/internal/pending"
)

func newPendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.PendingUse,
		Short: messages.PendingShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			updates, err := pending.Scan(cfg.Paths.ConfigProtect)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(updates) == 0 {
				_, _ = fmt.Fprintln(out, messages.PendingNoneFound)
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.PendingCountFmt, len(updates))
			for _, update := range updates {
				detail := update.Serial
				if update.NewFile {
					detail = update.Serial + " " + messages.PendingNewFileNote
				}
				_, _ = fmt.Fprintf(out, messages.PendingHeaderFmt, update.TargetPath, detail)
				diff, diffErr := pending.Diff(update)
				if diffErr != nil {
					return fmt.Errorf(messages.PendingDiffErrFmt, update.StagedPath, diffErr)
				}
				_, _ = fmt.Fprintln(out, diff)
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
	return cmd
}
