package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenAbsent(t *testing.T) {
	fs := NewFileStore()

	s, err := fs.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Errorf("Load = %+v, want defaults %+v", s, Default())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	fs := NewFileStore()

	want := Settings{SequenceDigits: 4, AutoCheck: false}
	if err := fs.Save(root, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"auto_check": false}`)

	fs := NewFileStore()
	s, err := fs.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.AutoCheck {
		t.Error("AutoCheck = true, want the file's false")
	}
	if s.SequenceDigits != Default().SequenceDigits {
		t.Errorf("SequenceDigits = %d, want default", s.SequenceDigits)
	}
}

func TestLoad_NonPositiveDigitsFallBack(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"sequence_digits": 0, "auto_check": true}`)

	fs := NewFileStore()
	s, err := fs.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.SequenceDigits != Default().SequenceDigits {
		t.Errorf("SequenceDigits = %d, want default fallback", s.SequenceDigits)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{not json`)

	fs := NewFileStore()
	s, err := fs.Load(root)
	if err == nil {
		t.Error("expected parse error")
	}
	if s != Default() {
		t.Errorf("malformed file returned %+v, want defaults", s)
	}
}

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
