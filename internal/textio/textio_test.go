package textio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.fountain")
	text := "INT. HOUSE - DAY\n\nJOHN\nHello.\n"

	if err := Save(path, text); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != text {
		t.Errorf("round trip mismatch: expected %q, got %q", text, got)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.fountain")

	if err := Save(path, "first"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, "second"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "second" {
		t.Errorf("expected %q, got %q", "second", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the saved file, found %d entries", len(entries))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.fountain"))
	if err == nil {
		t.Error("loading a missing file must error")
	}
}

func TestWatcherSeesExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.fountain")
	if err := Save(path, "original"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	// Simulate another program saving over the file.
	if err := Save(path, "changed"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case ev := <-w.Events():
		if ev.Removed {
			t.Errorf("rename-into-place save should read as a change, got %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event after external write")
	}
}

func TestWatcherSeesRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.fountain")
	if err := Save(path, "text"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Removed {
				return
			}
		case <-deadline:
			t.Fatal("no removal event")
		}
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.fountain")
	if err := Save(path, "text"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
