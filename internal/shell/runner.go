// Package shell executes external package-manager tools and tees their
// output to the terminal and a timestamped run log. Every line written to
// the log carries a level and timestamp so portup report can reconstruct
// the run afterwards.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/portup-dev/portup/internal/messages"
)

// Level classifies a run-log line.
type Level string

// Log line levels.
const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// timestampLayout is the per-line timestamp format inside run logs.
const timestampLayout = "02-Jan-06 15:04:05"

// LogNameLayout names run log files by start time.
const LogNameLayout = "log_2006-01-02-15-04"

// Separator splits the line prefix from the payload in run logs.
const Separator = " ::: "

var (
	commandContext = exec.CommandContext
	nowFunc        = time.Now
)

// Runner streams command output to the terminal and, when configured, a
// run log file.
type Runner struct {
	stdout  io.Writer
	stderr  io.Writer
	log     io.Writer
	logPath string
	now     func() time.Time

	mu sync.Mutex
}

// New creates a Runner that logs to a fresh timestamped file under logDir,
// creating the directory when needed. The returned close function flushes
// and closes the log file.
func New(logDir string, stdout, stderr io.Writer) (*Runner, func() error, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf(messages.ShellCreateLogDirErrFmt, logDir, err)
	}
	logPath := filepath.Join(logDir, nowFunc().Format(LogNameLayout))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf(messages.ShellCreateLogFileErrFmt, logPath, err)
	}
	runner := NewWithLog(file, stdout, stderr)
	runner.logPath = logPath
	return runner, file.Close, nil
}

// NewWithLog creates a Runner over explicit writers. log may be nil to
// disable run logging; tests pass in-memory buffers.
func NewWithLog(log, stdout, stderr io.Writer) *Runner {
	return &Runner{
		stdout: stdout,
		stderr: stderr,
		log:    log,
		now:    nowFunc,
	}
}

// LogPath returns the run log location, empty when logging is disabled.
func (r *Runner) LogPath() string {
	return r.logPath
}

// Section writes a {{ NAME }} stage marker to the terminal and the log.
// The report parser splits the log on these markers.
func (r *Runner) Section(name string) {
	r.line(LevelInfo, "{{ "+name+" }}")
}

// Infof writes a progress line to stdout and the log.
func (r *Runner) Infof(format string, args ...any) {
	r.line(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf writes a warning line to stderr and the log.
func (r *Runner) Warnf(format string, args ...any) {
	r.line(LevelError, fmt.Sprintf(format, args...))
}

// Run executes a command, streaming stdout and stderr line by line to the
// terminal and the log. A non-zero exit is returned as an error wrapping
// the underlying *exec.ExitError.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.run(ctx, false, name, args...)
	return err
}

// Output is like Run but additionally returns the command's captured
// stdout. The output is still streamed and logged.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	return r.run(ctx, true, name, args...)
}

// RunInteractive executes a command wired directly to the caller's
// terminal, for tools that prompt the operator (etc-update,
// dispatch-conf). Only an invocation marker lands in the log since the
// session itself cannot be teed through a line writer.
func (r *Runner) RunInteractive(ctx context.Context, name string, args ...string) error {
	r.Infof("running %s interactively", strings.Join(append([]string{name}, args...), " "))
	cmd := commandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		r.line(LevelError, failureLine(name, err))
		return fmt.Errorf(messages.ShellCommandFailedFmt, name, err)
	}
	return nil
}

func (r *Runner) run(ctx context.Context, capture bool, name string, args ...string) (string, error) {
	cmd := commandContext(ctx, name, args...)
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf(messages.ShellStartCommandErrFmt, name, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf(messages.ShellStartCommandErrFmt, name, err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf(messages.ShellStartCommandErrFmt, name, err)
	}

	var captured strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.stream(stdoutPipe, LevelInfo, func(line string) {
			if capture {
				captured.WriteString(line)
				captured.WriteByte('\n')
			}
		})
	}()
	go func() {
		defer wg.Done()
		r.stream(stderrPipe, LevelError, nil)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		r.line(LevelError, failureLine(name, err))
		return captured.String(), fmt.Errorf(messages.ShellCommandFailedFmt, name, err)
	}
	return captured.String(), nil
}

// stream copies one pipe to the terminal and log line by line.
func (r *Runner) stream(pipe io.Reader, level Level, observe func(string)) {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		r.line(level, line)
		if observe != nil {
			observe(line)
		}
	}
}

// line writes one payload line to the appropriate terminal stream and,
// prefixed with timestamp and level, to the run log.
func (r *Runner) line(level Level, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	terminal := r.stdout
	if level == LevelError {
		terminal = r.stderr
	}
	if terminal != nil {
		_, _ = fmt.Fprintln(terminal, payload)
	}
	if r.log != nil {
		_, _ = fmt.Fprintf(r.log, "[%s %s]%s%s\n", r.now().Format(timestampLayout), level, Separator, payload)
	}
}

// failureLine summarizes a command failure for the log.
func failureLine(name string, err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return fmt.Sprintf("%s exited with code %d", name, exitErr.ExitCode())
	}
	return fmt.Sprintf("%s failed: %v", name, err)
}
