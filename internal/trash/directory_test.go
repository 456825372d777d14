package trash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromRoot(t *testing.T) {
	d, err := FromRoot("/media/disk/.Trash-1000")
	if err != nil {
		t.Fatalf("FromRoot() error = %v", err)
	}

	want := Directory{
		Root:       "/media/disk/.Trash-1000",
		FilesDir:   "/media/disk/.Trash-1000/files",
		InfoDir:    "/media/disk/.Trash-1000/info",
		LedgerPath: "/media/disk/.Trash-1000/directorysizes",
	}
	if *d != want {
		t.Errorf("FromRoot() = %+v, want %+v", *d, want)
	}
	if got := d.InfoPath("report.pdf"); got != "/media/disk/.Trash-1000/info/report.pdf.trashinfo" {
		t.Errorf("InfoPath() = %q", got)
	}
	if got := d.FilePath("report.pdf"); got != "/media/disk/.Trash-1000/files/report.pdf" {
		t.Errorf("FilePath() = %q", got)
	}
}

func TestFromRootNul(t *testing.T) {
	if _, err := FromRoot("/tmp/bad\x00root"); !IsPathEncoding(err) {
		t.Errorf("FromRoot() error = %v, want ErrPathEncoding", err)
	}
}

func TestChecked(t *testing.T) {
	tests := []struct {
		name    string
		dirs    []string
		wantErr bool
	}{
		{"complete", []string{"files", "info"}, false},
		{"missing info", []string{"files"}, true},
		{"missing files", []string{"info"}, true},
		{"empty root", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, dir := range tt.dirs {
				if err := os.Mkdir(filepath.Join(root, dir), 0700); err != nil {
					t.Fatal(err)
				}
			}

			_, err := Checked(root)
			if tt.wantErr {
				var tde *TrashDirError
				if !IsTrashDirectoryMissing(err) {
					t.Fatalf("Checked() error = %v, want ErrTrashDirectoryMissing", err)
				}
				if !asTrashDirError(err, &tde) || tde.Root != root {
					t.Errorf("Checked() error = %#v, want TrashDirError for %s", err, root)
				}
				return
			}
			if err != nil {
				t.Errorf("Checked() error = %v", err)
			}
		})
	}
}

func TestInit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "Trash")

	d, err := Init(root, true)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	for _, dir := range []string{d.Root, d.FilesDir, d.InfoDir} {
		st, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", dir, err)
		}
		if !st.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
		if perm := st.Mode().Perm(); perm&0077 != 0 {
			t.Errorf("%s has mode %o, want no group or other bits", dir, perm)
		}
	}

	content, err := os.ReadFile(d.LedgerPath)
	if err != nil {
		t.Fatalf("ledger not created: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("ledger content = %q, want empty", content)
	}

	if _, err := Checked(root); err != nil {
		t.Errorf("Checked() after Init() error = %v", err)
	}
}

func TestInitKeepsLedger(t *testing.T) {
	root := t.TempDir()
	d, err := Init(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(d.LedgerPath, []byte("1 2 a\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Init(root, true); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	content, _ := os.ReadFile(d.LedgerPath)
	if string(content) != "1 2 a\n" {
		t.Errorf("ledger content = %q, want it untouched", content)
	}
}

func TestInitWithoutLedger(t *testing.T) {
	d, err := Init(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(d.LedgerPath); !os.IsNotExist(err) {
		t.Errorf("ledger exists, want none: %v", err)
	}
}
