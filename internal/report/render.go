package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/portup-dev/portup/internal/messages"
)

// Render prints a human-readable summary of the report.
func Render(out io.Writer, rep *Report) {
	_, _ = color.New(color.Bold).Fprintf(out, messages.ReportTitleFmt, filepath.Base(rep.LogPath))

	switch rep.Pretend {
	case PretendOK:
		_, _ = fmt.Fprintln(out, color.GreenString(messages.ReportPretendOK))
	case PretendFailed:
		_, _ = fmt.Fprintln(out, color.RedString(messages.ReportPretendFailed))
	case PretendNotRun:
		_, _ = fmt.Fprintln(out, messages.ReportPretendNotRun)
	}

	switch rep.Update {
	case WorldOK:
		_, _ = fmt.Fprintln(out, color.GreenString(messages.ReportWorldOK))
	case WorldFailed:
		_, _ = fmt.Fprintln(out, color.RedString(messages.ReportWorldFailed))
	case SecurityOK:
		_, _ = fmt.Fprintln(out, color.GreenString(messages.ReportSecurityOK))
	case SecurityFailed:
		_, _ = fmt.Fprintln(out, color.RedString(messages.ReportSecurityFailed))
	case SecurityNoAdvisories:
		_, _ = fmt.Fprintln(out, color.GreenString(messages.ReportNoAdvisories))
	case UpdateNotRun:
		_, _ = fmt.Fprintln(out, messages.ReportUpdateNotRun)
	}

	if len(rep.Packages) == 0 {
		_, _ = fmt.Fprintln(out, messages.ReportNoPackages)
		return
	}
	_, _ = fmt.Fprintln(out, messages.ReportPackagesHeader)
	for _, pkg := range rep.Packages {
		_, _ = fmt.Fprintf(out, messages.ReportPackageLineFmt, statusLabel(pkg), pkg.Name, packageDetail(pkg))
	}
}

func statusLabel(pkg Package) string {
	switch pkg.Kind {
	case KindEbuild:
		switch pkg.Status {
		case "NewPackage":
			return color.GreenString("new")
		case "Update":
			return color.CyanString("update")
		case "ReEmerge":
			return color.YellowString("re-emerge")
		default:
			return pkg.Status
		}
	case KindBlocks:
		return color.RedString("blocked")
	case KindUninstall:
		return color.YellowString("uninstall")
	default:
		return string(pkg.Kind)
	}
}

func packageDetail(pkg Package) string {
	switch pkg.Kind {
	case KindEbuild:
		if pkg.OldVersion != "" {
			return fmt.Sprintf(messages.ReportVersionChangeFmt, pkg.OldVersion, pkg.NewVersion)
		}
		return pkg.NewVersion
	case KindBlocks:
		if blocked := pkg.Attributes["blocked_package"]; len(blocked) > 0 {
			return fmt.Sprintf(messages.ReportBlockedByFmt, strings.Join(blocked, " "))
		}
		return ""
	default:
		return ""
	}
}
