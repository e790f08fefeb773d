package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portup-dev/portup/internal/messages"
	"github.com/portup-dev/portup/internal/report"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ReportUse,
		Short: messages.ReportShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				path, err = newestRunLog(cfg.Paths.LogDir)
				if err != nil {
					return err
				}
			}
			rep, err := report.Parse(path)
			if err != nil {
				return err
			}
			report.Render(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	return cmd
}

// newestRunLog returns the most recent run log under logDir. The
// timestamped file names sort chronologically.
func newestRunLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf(messages.ReportNoLogsFmt, logDir)
		}
		return "", err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "log_") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf(messages.ReportNoLogsFmt, logDir)
	}
	sort.Strings(names)
	return filepath.Join(logDir, names[len(names)-1]), nil
}
