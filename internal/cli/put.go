package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/dustin/go-humanize"
	"github.com/ttrash/tt/internal/trash"
)

func (c CLI) Put(args []string) error {
	slog.Debug("cli.put started", "operands", len(args))
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errors.New("missing operand")
	}

	manager, err := c.newManager()
	if err != nil {
		return err
	}

	for _, arg := range args {
		if err := c.putPath(manager, arg); err != nil {
			return err
		}
	}

	return nil
}

func (c CLI) putPath(manager *trash.Manager, path string) error {
	if isUnsafePath(path) {
		return fmt.Errorf("refusing to remove '.' or '..' directory or the root: skipping %s", shellescape.Quote(path))
	}

	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			if c.option.Rm.Force {
				slog.Debug("skipping nonexistent operand", "path", path)
				return nil
			}
			return fmt.Errorf("cannot remove %s: no such file or directory", shellescape.Quote(path))
		}
		return err
	}

	entry, err := manager.Put(path)
	if err != nil {
		if entry == nil {
			return err
		}
		// the item is in the trash, only its bookkeeping failed
		slog.Warn("trashed with errors", "path", path, "error", err)
		c.report(entry)
		return err
	}

	c.report(entry)
	return nil
}

func (c CLI) report(entry *trash.TrashedEntry) {
	slog.Info("sent to trash",
		"path", entry.OriginalPath,
		"trash", entry.Trash.Root,
		"name", entry.Name,
		"dir", entry.IsDir,
		"size", entry.Size)

	if !c.verbose() {
		return
	}

	if entry.IsDir {
		fmt.Fprintf(c.stdout, "removed directory %s (%s) to %s\n",
			shellescape.Quote(entry.OriginalPath),
			humanize.Bytes(entry.Size),
			shellescape.Quote(entry.TrashPath()))
		return
	}
	fmt.Fprintf(c.stdout, "removed %s to %s\n",
		shellescape.Quote(entry.OriginalPath),
		shellescape.Quote(entry.TrashPath()))
}

// isUnsafePath reports operands rm refuses to touch: anything ending in
// "." or "..", the root, and paths starting with "//"
func isUnsafePath(path string) bool {
	if strings.HasPrefix(path, "//") {
		return true
	}

	switch filepath.Base(path) {
	case ".", "..", "/":
		return true
	}

	clean := filepath.Clean(path)
	switch {
	case clean == "." || clean == "/":
		return true
	case filepath.Base(clean) == "..":
		return true
	}
	return false
}
