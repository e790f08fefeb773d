package portage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type recordedCall struct {
	kind string
	name string
	args []string
}

type fakeRunner struct {
	calls  []recordedCall
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, recordedCall{kind: "run", name: name, args: args})
	return f.err
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, recordedCall{kind: "output", name: name, args: args})
	return f.output, f.err
}

func (f *fakeRunner) RunInteractive(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, recordedCall{kind: "interactive", name: name, args: args})
	return f.err
}

func (f *fakeRunner) last(t *testing.T) recordedCall {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatal("no command was run")
	}
	return f.calls[len(f.calls)-1]
}

func (c recordedCall) String() string {
	return fmt.Sprintf("%s %s %s", c.kind, c.name, strings.Join(c.args, " "))
}

func TestToolsArgv(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		call func(*Tools) error
		want string
	}{
		{"sync", func(p *Tools) error { return p.SyncTree(ctx) }, "run emerge --sync"},
		{"pretend", func(p *Tools) error { return p.PretendWorldUpdate(ctx) },
			"run emerge --pretend --verbose --update --deep --newuse @world"},
		{"fix advisories", func(p *Tools) error { return p.FixAdvisories(ctx) }, "run glsa-check --fix affected"},
		{"merge configs", func(p *Tools) error { return p.MergeConfigs(ctx) }, "run etc-update --automode -5"},
		{"interactive merge", func(p *Tools) error { return p.InteractiveMergeConfigs(ctx) }, "interactive etc-update "},
		{"dispatch", func(p *Tools) error { return p.DispatchConfigs(ctx) }, "interactive dispatch-conf "},
		{"depclean", func(p *Tools) error { return p.Depclean(ctx) }, "run emerge --depclean"},
		{"revdep", func(p *Tools) error { return p.RevdepRebuild(ctx) }, "run revdep-rebuild "},
		{"eclean", func(p *Tools) error { return p.CleanDistfiles(ctx) }, "run eclean-dist --deep"},
		{"restart", func(p *Tools) error { return p.RestartServices(ctx) }, "run needrestart -r a"},
		{"list restarts", func(p *Tools) error { return p.ListPendingRestarts(ctx) }, "run needrestart -r l"},
		{"news", func(p *Tools) error { return p.ReadNews(ctx) }, "run eselect news read new"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			if err := tt.call(NewTools(runner)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(runner.last(t).String()); got != strings.TrimSpace(tt.want) {
				t.Fatalf("argv = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorldUpdateExtraArgsBeforeTarget(t *testing.T) {
	runner := &fakeRunner{}
	if err := NewTools(runner).WorldUpdate(context.Background(), []string{"--color=y", "--quiet"}); err != nil {
		t.Fatalf("WorldUpdate: %v", err)
	}
	want := "run emerge --verbose --update --deep --newuse --color=y --quiet @world"
	if got := runner.last(t).String(); got != want {
		t.Fatalf("argv = %q, want %q", got, want)
	}
}

func TestAffectedAdvisoriesParsesIDs(t *testing.T) {
	runner := &fakeRunner{output: "202403-01 [N] openssl: multiple vulnerabilities\n" +
		"This system is affected by the following GLSAs:\n" +
		"202404-12 [U] curl: heap overflow\n"}
	ids, err := NewTools(runner).AffectedAdvisories(context.Background())
	if err != nil {
		t.Fatalf("AffectedAdvisories: %v", err)
	}
	if len(ids) != 2 || ids[0] != "202403-01" || ids[1] != "202404-12" {
		t.Fatalf("ids = %v", ids)
	}
	if got := runner.last(t).String(); got != "output glsa-check --list affected" {
		t.Fatalf("argv = %q", got)
	}
}

func TestAffectedAdvisoriesEmptyOutput(t *testing.T) {
	runner := &fakeRunner{output: "\n"}
	ids, err := NewTools(runner).AffectedAdvisories(context.Background())
	if err != nil {
		t.Fatalf("AffectedAdvisories: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}

func TestAffectedAdvisoriesPropagatesError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("glsa-check exploded")}
	if _, err := NewTools(runner).AffectedAdvisories(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
