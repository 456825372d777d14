package trash

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	trashInfoHeader = "[Trash Info]"
	timeFormat      = "2006-01-02T15:04:05"
)

// TrashInfo is the content of a .trashinfo file
type TrashInfo struct {
	// Path is the original location of the trashed item
	Path string

	// DeletionDate is when the item was trashed, in local time
	DeletionDate time.Time
}

// FormatDeletionDate renders epoch seconds as YYYY-MM-DDThh:mm:ss in the
// local time zone
func FormatDeletionDate(sec int64) string {
	return time.Unix(sec, 0).Format(timeFormat)
}

// WriteInfo writes the info file of the entry name in d, recording
// originalPath and deletedAt (epoch seconds), and returns its path.
// The file is synced to disk before returning.
//
// Path is written verbatim, it is not percent-encoded.
func WriteInfo(d *Directory, originalPath, name string, deletedAt int64) (string, error) {
	content := new(strings.Builder)
	fmt.Fprintln(content, trashInfoHeader)
	fmt.Fprintf(content, "Path=%s\n", originalPath)
	fmt.Fprintf(content, "DeletionDate=%s\n", FormatDeletionDate(deletedAt))

	path := d.InfoPath(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", NewStorageError("write-info", path, err)
	}

	if _, err := f.WriteString(content.String()); err != nil {
		f.Close()
		os.Remove(path)
		return "", NewStorageError("write-info", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return "", NewStorageError("sync-info", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", NewStorageError("write-info", path, err)
	}

	return path, nil
}

// ParseInfo reads a .trashinfo file
func ParseInfo(r io.Reader) (*TrashInfo, error) {
	scanner := bufio.NewScanner(r)
	info := &TrashInfo{}
	var headerFound bool

	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines and comments
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.TrimSpace(line) == trashInfoHeader {
			headerFound = true
			continue
		}

		// Skip until header is found
		if !headerFound {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case "Path":
			info.Path = value
		case "DeletionDate":
			date, err := time.ParseInLocation(timeFormat, strings.TrimSpace(value), time.Local)
			if err != nil {
				return nil, fmt.Errorf("invalid DeletionDate format: %w", err)
			}
			info.DeletionDate = date
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}

	if !headerFound {
		return nil, NewStorageError("parse", "", fmt.Errorf("missing %s header", trashInfoHeader))
	}
	if info.Path == "" {
		return nil, NewStorageError("parse", "", fmt.Errorf("missing Path field"))
	}
	if info.DeletionDate.IsZero() {
		return nil, NewStorageError("parse", "", fmt.Errorf("missing DeletionDate field"))
	}

	return info, nil
}
