package elog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type printedLines struct {
	lines []string
}

func (p *printedLines) Infof(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}

func (p *printedLines) joined() string {
	return strings.Join(p.lines, "\n")
}

func writeElog(t *testing.T, dir, name, content string, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
}

func TestReviewPrintsRecentEntries(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeElog(t, dir, "sys-libs:glibc-2.39:20240305-120000.log",
		"LOG: postinst\nGenerating locales\n", now.Add(-time.Hour))
	writeElog(t, dir, "app-misc:old-1.0:20240101-000000.log",
		"stale entry\n", now.Add(-48*time.Hour))

	log := &printedLines{}
	missing, err := Review(RealSystem{}, log, dir, now)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if missing {
		t.Fatal("directory exists but was reported missing")
	}

	out := log.joined()
	if !strings.Contains(out, "======== sys-libs:glibc-2.39:20240305-120000.log ========") {
		t.Fatalf("missing block header in %q", out)
	}
	if !strings.Contains(out, "Generating locales") {
		t.Fatalf("missing entry body in %q", out)
	}
	if strings.Contains(out, "stale entry") {
		t.Fatalf("stale entry should not be printed: %q", out)
	}
	if log.lines[len(log.lines)-1] != "========================" {
		t.Fatalf("expected closing delimiter, got %q", log.lines[len(log.lines)-1])
	}
}

func TestReviewMissingDirIsNotice(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "no-such-elog")
	log := &printedLines{}

	missing, err := Review(RealSystem{}, log, dir, time.Now())
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !missing {
		t.Fatal("expected missing directory to be reported")
	}
	if !strings.Contains(log.joined(), "does not exist") {
		t.Fatalf("expected notice, got %q", log.joined())
	}
}

func TestReviewSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	log := &printedLines{}

	missing, err := Review(RealSystem{}, log, dir, time.Now())
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if missing || len(log.lines) != 0 {
		t.Fatalf("expected no output, got missing=%v lines=%v", missing, log.lines)
	}
}
