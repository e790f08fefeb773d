package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/portup-dev/portup/internal/elog"
	"github.com/portup-dev/portup/internal/messages"
)

// writerPrinter adapts an io.Writer to the elog printer surface.
type writerPrinter struct {
	out io.Writer
}

func (p writerPrinter) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.LogsUse,
		Short: messages.LogsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, err = elog.Review(elog.RealSystem{}, writerPrinter{out: cmd.OutOrStdout()},
				cfg.Paths.ElogDir, time.Now())
			return err
		},
	}
	return cmd
}
