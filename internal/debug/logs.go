package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// Logs prints the log file at path. With live set, new lines are
// followed until ctx is done, as long as stdout is a terminal.
func Logs(ctx context.Context, w io.Writer, path string, enabled, live bool) error {
	if live {
		return tailLiveLogs(ctx, w, path, enabled)
	}
	return showExistingLogs(w, path, enabled)
}

func tailLiveLogs(ctx context.Context, w io.Writer, path string, enabled bool) error {
	if !enabled {
		return fmt.Errorf("logging is not enabled in config: enable logging in config for live debugging")
	}

	follow := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen:    follow,
		Follow:    follow,
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running some commands with logging enabled")
		}
		return err
	}
	defer t.Cleanup()

	slog.Info("live tail started", "path", path, "follow", follow)

	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(w, line.Text)
		}
	}
}

func showExistingLogs(w io.Writer, path string, enabled bool) error {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if !enabled {
			return fmt.Errorf("logging is not enabled in config: enable logging to create log files")
		}
		return fmt.Errorf("no log file exists yet: try running some commands first")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
	return scanner.Err()
}
