package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "heroes.html")
	r.Update(2, "gallery.html")
	r.Finish()

	want := "Building codex: 2 pages\n[1/2] heroes.html\n[2/2] gallery.html\nBuild complete\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("NewReporter() under CI should return a CIReporter")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter().(*TerminalReporter); !ok {
		t.Error("NewReporter() outside CI should return a TerminalReporter")
	}
}
