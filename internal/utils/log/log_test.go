package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(
		UseOutput(&buf),
		UseLevel(DebugLevel),
		UseFormatter(JSONFormatter),
		UseReportTimestamp(false),
		UseAttrs("run_id", "abc123"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("sent to trash", "from", "/tmp/a")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %q: %v", buf.String(), err)
	}
	if record["msg"] != "sent to trash" || record["from"] != "/tmp/a" || record["run_id"] != "abc123" {
		t.Errorf("record = %v", record)
	}
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(UseOutput(&buf), UseLevel(WarnLevel))
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewOutputFuncError(t *testing.T) {
	want := errors.New("no output")
	_, err := New(UseOutputFunc(func() (io.Writer, error) { return nil, want }))
	if !errors.Is(err, want) {
		t.Errorf("New() error = %v, want %v", err, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: DebugLevel},
		{in: "INFO", want: InfoLevel},
		{in: "warn", want: WarnLevel},
		{in: "error", want: ErrorLevel},
		{in: "chatty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	if f, err := ParseFormatter("logfmt"); err != nil || f != LogfmtFormatter {
		t.Errorf("ParseFormatter(logfmt) = %v, %v", f, err)
	}
	if _, err := ParseFormatter("xml"); err == nil {
		t.Error("ParseFormatter(xml) error = nil")
	}
}

func TestRotateWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	w, err := NewRotateWriter(path, "20B", 2)
	if err != nil {
		t.Fatalf("NewRotateWriter() error = %v", err)
	}
	defer w.Close()

	line := []byte("0123456789abcde\n") // 16 bytes, one per file
	for i := 0; i < 5; i++ {
		if _, err := w.Write(line); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, line) {
		t.Errorf("current log = %q, want a single line", content)
	}

	backups, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("got %d rotated files, want 2: %v", len(backups), backups)
	}
}

func TestRotateWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotateWriter(path, "1MB", 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("new\n")); err != nil {
		t.Fatal(err)
	}
	w.Close()

	content, _ := os.ReadFile(path)
	if string(content) != "old\nnew\n" {
		t.Errorf("log = %q", content)
	}
}

func TestNewRotateWriterInvalidSize(t *testing.T) {
	if _, err := NewRotateWriter(filepath.Join(t.TempDir(), "x.log"), "huge", 1); err == nil {
		t.Error("NewRotateWriter() error = nil")
	}
}
