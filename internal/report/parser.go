// Package report reconstructs what a maintenance run did from its run
// log: whether the dry run and update succeeded, and which packages were
// installed, rebuilt, removed or blocked.
package report

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/portup-dev/portup/internal/messages"
	"github.com/portup-dev/portup/internal/shell"
)

// PretendResult is the outcome of the dry-run stage.
type PretendResult int

// Dry-run outcomes.
const (
	PretendNotRun PretendResult = iota
	PretendOK
	PretendFailed
)

// UpdateResult is the outcome of the update stage.
type UpdateResult int

// Update outcomes.
const (
	UpdateNotRun UpdateResult = iota
	WorldOK
	WorldFailed
	SecurityOK
	SecurityFailed
	SecurityNoAdvisories
)

// Report summarizes one run log.
type Report struct {
	LogPath  string
	Pretend  PretendResult
	Update   UpdateResult
	Packages []Package
}

// sectionMarker matches the {{ NAME }} stage markers the runner writes.
var sectionMarker = regexp.MustCompile(`^\{\{ (.+) \}\}$`)

// Parse reads a run log and builds its report.
func Parse(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ReportOpenLogErrFmt, path, err)
	}
	defer file.Close()

	sections, err := splitSections(file)
	if err != nil {
		return nil, fmt.Errorf(messages.ReportScanLogErrFmt, path, err)
	}

	rep := &Report{LogPath: path}
	rep.Pretend = pretendResult(sections)
	rep.Update = updateResult(sections)
	// emerge prints the merge list during the dry run; the real update
	// pass only logs build progress. Scan both so security fixes that
	// skip the dry run still report their packages.
	merged := append([]string{}, sections[messages.SectionPretend]...)
	merged = append(merged, sections[messages.SectionUpdate]...)
	rep.Packages = parsePackages(merged)
	return rep, nil
}

// splitSections groups run-log payloads by the stage marker preceding
// them. Lines without the runner's separator are not payloads and are
// skipped.
func splitSections(file *os.File) (map[string][]string, error) {
	sections := make(map[string][]string)
	current := ""
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		_, payload, found := strings.Cut(line, shell.Separator)
		if !found {
			continue
		}
		payload = strings.TrimSpace(payload)
		if m := sectionMarker.FindStringSubmatch(payload); m != nil {
			current = m[1]
			continue
		}
		sections[current] = append(sections[current], payload)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func pretendResult(sections map[string][]string) PretendResult {
	content, ok := sections[messages.SectionPretend]
	if !ok {
		return PretendNotRun
	}
	if contains(content, messages.MaintPretendOK) {
		return PretendOK
	}
	return PretendFailed
}

func updateResult(sections map[string][]string) UpdateResult {
	content, ok := sections[messages.SectionUpdate]
	if !ok {
		return UpdateNotRun
	}
	switch {
	case contains(content, fmt.Sprintf(messages.MaintUpdateKindFmt, messages.MaintUpdateWorld)):
		if contains(content, messages.MaintWorldUpdateOK) {
			return WorldOK
		}
		return WorldFailed
	case contains(content, fmt.Sprintf(messages.MaintUpdateKindFmt, messages.MaintUpdateGLSA)):
		if contains(content, messages.MaintNoAdvisories) {
			return SecurityNoAdvisories
		}
		if contains(content, messages.MaintSecurityUpdateOK) {
			return SecurityOK
		}
		return SecurityFailed
	default:
		return UpdateNotRun
	}
}

func contains(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
