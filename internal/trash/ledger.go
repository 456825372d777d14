package trash

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ttrash/tt/internal/core/atomic"
)

// LedgerLine is one entry of the directorysizes cache
type LedgerLine struct {
	// Size is the total size of the trashed directory, in bytes
	Size uint64

	// DeletedAt is the deletion time in epoch seconds
	DeletedAt uint64

	// Name is the decoded name of the directory in files/
	Name string
}

func (l LedgerLine) String() string {
	return fmt.Sprintf("%d %d %s", l.Size, l.DeletedAt, EncodeName(l.Name))
}

// AppendDirectorySize records a trashed directory in the directorysizes
// ledger of d.
//
// The ledger is copied into a temporary file inside files/ (same
// filesystem), the new line is appended there and the copy is renamed
// over the ledger. Readers observe either the old or the new content,
// never a partial line. Two concurrent appenders can still lose one
// update: the last rename wins.
func AppendDirectorySize(d *Directory, size uint64, name string, deletedAt uint64) error {
	w, err := atomic.NewSafeWriter(d.FilesDir, "."+ledgerFileName)
	if err != nil {
		return NewStorageError("ledger", d.FilesDir, err)
	}
	defer discardTemp(w)

	current, err := os.ReadFile(d.LedgerPath)
	if err != nil && !os.IsNotExist(err) {
		return NewStorageError("ledger", d.LedgerPath, err)
	}

	if _, err := w.Write(current); err != nil {
		return NewStorageError("ledger", w.Path(), err)
	}
	if len(current) > 0 && current[len(current)-1] != '\n' {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return NewStorageError("ledger", w.Path(), err)
		}
	}

	line := LedgerLine{Size: size, DeletedAt: deletedAt, Name: name}
	if _, err := fmt.Fprintln(w, line.String()); err != nil {
		return NewStorageError("ledger", w.Path(), err)
	}

	if err := w.Commit(d.LedgerPath); err != nil {
		return NewStorageError("ledger", d.LedgerPath, err)
	}

	slog.Debug("directorysizes updated", "ledger", d.LedgerPath, "line", line.String())
	return nil
}

// discardTemp removes an uncommitted ledger copy. A leftover would sit in
// files/ without an info file.
func discardTemp(w *atomic.SafeWriter) {
	w.Cleanup()
	if err := w.CleanupErr(); err != nil {
		slog.Warn("failed to remove temporary ledger", "path", w.Path(), "error", err)
	}
}

// ReadLedger returns the entries of the ledger of d, in file order.
// A missing ledger has no entries.
func ReadLedger(d *Directory) ([]LedgerLine, error) {
	content, err := os.ReadFile(d.LedgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewStorageError("ledger", d.LedgerPath, err)
	}
	return ParseLedger(content)
}

// ParseLedger parses directorysizes content
func ParseLedger(content []byte) ([]LedgerLine, error) {
	var lines []LedgerLine

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for n := 1; scanner.Scan(); n++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.SplitN(text, " ", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("directorysizes line %d: expected 3 fields, got %d", n, len(fields))
		}
		size, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("directorysizes line %d: invalid size: %w", n, err)
		}
		deletedAt, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("directorysizes line %d: invalid timestamp: %w", n, err)
		}
		name, err := DecodeName(fields[2])
		if err != nil {
			return nil, fmt.Errorf("directorysizes line %d: %w", n, err)
		}

		lines = append(lines, LedgerLine{Size: size, DeletedAt: deletedAt, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

const upperhex = "0123456789ABCDEF"

// EncodeName percent-encodes every byte of name that is not an ASCII
// letter or digit. The result is a single line and keeps non UTF-8 bytes
// intact.
func EncodeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isAlphanumeric(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

// DecodeName reverses EncodeName
func DecodeName(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("invalid escape %q", s[i:])
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("invalid escape %q", s[i:i+3])
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func isAlphanumeric(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
