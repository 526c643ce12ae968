// ABOUTME: Tests for the input panel: extension filtering, file loading, and the open-file prompt.
// ABOUTME: File loads run against temp files created per test.
package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsAllowedFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"algo.py", true},
		{"algo.txt", true},
		{"ALGO.PY", true},
		{"main.cpp", true},
		{"header.h", true},
		{"script.js", true},
		{"script.ts", true},
		{"Main.java", true},
		{"prog.c", true},
		{"notes.md", false},
		{"binary.exe", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := IsAllowedFile(tt.path); got != tt.want {
			t.Errorf("IsAllowedFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadFileCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algo.py")
	if err := os.WriteFile(path, []byte("def search(a, x):\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	msg := LoadFileCmd(path)()
	loaded, ok := msg.(FileLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("Err = %v", loaded.Err)
	}
	if !strings.Contains(loaded.Code, "def search") {
		t.Errorf("Code = %q", loaded.Code)
	}
}

func TestLoadFileCmdRejectsExtension(t *testing.T) {
	msg := LoadFileCmd("notes.md")()
	loaded := msg.(FileLoadedMsg)
	if loaded.Err == nil {
		t.Fatal("expected extension error")
	}
	if !strings.Contains(loaded.Err.Error(), "unsupported file type") {
		t.Errorf("Err = %v", loaded.Err)
	}
}

func TestLoadFileCmdMissingFile(t *testing.T) {
	msg := LoadFileCmd(filepath.Join(t.TempDir(), "missing.py"))()
	loaded := msg.(FileLoadedMsg)
	if loaded.Err == nil {
		t.Error("expected read error for missing file")
	}
}

func TestInputPanelPromptLifecycle(t *testing.T) {
	m := NewInputPanelModel()
	if m.Prompting() {
		t.Fatal("new panel should not be prompting")
	}
	m.OpenFilePrompt()
	if !m.Prompting() || !m.Focused() {
		t.Error("OpenFilePrompt should activate the prompt")
	}
	m.ClosePrompt()
	if m.Prompting() {
		t.Error("ClosePrompt should deactivate the prompt")
	}
}

func TestInputPanelCodeRoundTrip(t *testing.T) {
	m := NewInputPanelModel()
	m.SetCode("FIB(n)")
	if m.Code() != "FIB(n)" {
		t.Errorf("Code = %q", m.Code())
	}
}
