package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/codeagent/internal/config"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestExecutor(mutate func(*config.Config)) *OSCommandExecutor {
	cfg := config.DefaultConfig()
	cfg.Shell.GracefulShutdownMs = 100
	if mutate != nil {
		mutate(cfg)
	}
	return NewOSCommandExecutor(cfg)
}

func TestRun(t *testing.T) {
	e := newTestExecutor(nil)
	ctx := context.Background()

	t.Run("SimpleCommand", func(t *testing.T) {
		res, err := e.Run(ctx, Command{Argv: []string{"echo", "hello"}, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(res.Stdout) != "hello" {
			t.Errorf("expected stdout 'hello', got %q", res.Stdout)
		}
		if res.ExitCode != 0 {
			t.Errorf("expected exit code 0, got %d", res.ExitCode)
		}
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := e.Run(ctx, Command{Timeout: time.Second})
		if !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("expected ErrEmptyCommand, got %v", err)
		}
	})

	t.Run("TimeoutIsMandatory", func(t *testing.T) {
		_, err := e.Run(ctx, Command{Argv: []string{"echo"}})
		if !errors.Is(err, ErrTimeoutRequired) {
			t.Errorf("expected ErrTimeoutRequired, got %v", err)
		}
	})

	t.Run("NonZeroExitIsNotAnError", func(t *testing.T) {
		res, err := e.Run(ctx, Command{Argv: []string{"false"}, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", res.ExitCode)
		}
	})

	t.Run("MissingExecutable", func(t *testing.T) {
		_, err := e.Run(ctx, Command{Argv: []string{"definitely-not-a-real-binary-xyz"}, Timeout: time.Second})
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("expected CommandError, got %v", err)
		}
		if !errors.Is(err, exec.ErrNotFound) {
			t.Errorf("expected exec.ErrNotFound in chain, got %v", err)
		}
	})

	t.Run("Stderr", func(t *testing.T) {
		res, err := e.Run(ctx, Command{Argv: []string{"sh", "-c", "echo error >&2"}, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(res.Stderr) != "error" {
			t.Errorf("expected stderr 'error', got %q", res.Stderr)
		}
	})

	t.Run("WorkingDirectory", func(t *testing.T) {
		dir := t.TempDir()
		res, err := e.Run(ctx, Command{Argv: []string{"pwd"}, Dir: dir, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(strings.TrimSpace(res.Stdout))
		if got != want {
			t.Errorf("expected pwd %q, got %q", want, got)
		}
	})

	t.Run("MetacharactersStayLiteral", func(t *testing.T) {
		dir := t.TempDir()
		canary := filepath.Join(dir, "canary.txt")
		if err := os.WriteFile(canary, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		res, err := e.Run(ctx, Command{Argv: []string{"echo", "; rm -rf ."}, Dir: dir, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(res.Stdout) != "; rm -rf ." {
			t.Errorf("expected literal argument echoed, got %q", res.Stdout)
		}
		if _, err := os.Stat(canary); err != nil {
			t.Errorf("canary file must survive: %v", err)
		}
	})

	t.Run("LargeOutput", func(t *testing.T) {
		e := newTestExecutor(func(cfg *config.Config) { cfg.Shell.MaxOutputBytes = 10 })

		res, err := e.Run(ctx, Command{Argv: []string{"echo", "123456789012345"}, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Truncated {
			t.Error("expected output to be truncated")
		}
		if len(res.Stdout) > 10 {
			t.Errorf("expected stdout length <= 10, got %d", len(res.Stdout))
		}
	})
}

func TestRun_Timeout(t *testing.T) {
	e := newTestExecutor(nil)

	t.Run("CompletesBeforeTimeout", func(t *testing.T) {
		res, err := e.Run(context.Background(), Command{Argv: []string{"echo", "hi"}, Timeout: time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(res.Stdout) != "hi" {
			t.Errorf("expected stdout 'hi', got %q", res.Stdout)
		}
	})

	t.Run("TimeoutKillsProcess", func(t *testing.T) {
		start := time.Now()
		res, err := e.Run(context.Background(), Command{Argv: []string{"sleep", "10"}, Timeout: 100 * time.Millisecond})
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if res == nil || res.ExitCode != -1 {
			t.Errorf("expected exit code -1 on timeout, got %+v", res)
		}
		if time.Since(start) > 5*time.Second {
			t.Errorf("timeout did not stop the process promptly")
		}
	})

	t.Run("OutputCollectedOnTimeout", func(t *testing.T) {
		res, err := e.Run(context.Background(), Command{
			Argv:    []string{"sh", "-c", "echo starting; sleep 10"},
			Timeout: 500 * time.Millisecond,
		})
		if !errors.Is(err, ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if strings.TrimSpace(res.Stdout) != "starting" {
			t.Errorf("expected stdout 'starting', got %q", res.Stdout)
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		_, err := e.Run(ctx, Command{Argv: []string{"sleep", "10"}, Timeout: 10 * time.Second})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10, 5)
		n, err := c.Write([]byte("abc"))
		if err != nil || n != 3 {
			t.Errorf("unexpected write result: %v, %d", err, n)
		}
		if c.String() != "abc" || c.Truncated() {
			t.Errorf("unexpected collector state: %q, %v", c.String(), c.Truncated())
		}
	})

	t.Run("OverLimitStillReportsFullWrite", func(t *testing.T) {
		c := newCollector(5, 5)
		n, err := c.Write([]byte("abcdef"))
		if err != nil || n != 6 {
			t.Errorf("unexpected write result: %v, %d", err, n)
		}
		if c.String() != "abcde" || !c.Truncated() {
			t.Errorf("unexpected collector state: %q, %v", c.String(), c.Truncated())
		}
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		c := newCollector(10, 5)
		_, _ = c.Write([]byte{'a', 0, 'b'})
		if c.String() != "[Binary Content]" || !c.Truncated() {
			t.Errorf("unexpected collector state: %q, %v", c.String(), c.Truncated())
		}
	})
}
