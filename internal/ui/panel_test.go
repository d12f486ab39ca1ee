package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 5, "[░░░░░] 0/1"},
		{1, 2, 10, "[█████░░░░░] 1/2"},
		{3, 3, 4, "[█████] 3/3"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestPrinter_List(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, "mono", true)
	p.List([]model.Todo{
		{ID: "1", Content: "Buy milk"},
		{ID: "2", Content: "Walk dog", Completed: true},
	}, false)

	got := out.String()
	for _, want := range []string{"Todos", " 1. [ ] Buy milk", " 2. [x] Walk dog", "1/2", "+"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrinter_GroupKeepsDisplayIndexes(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, "mono", true)
	p.List([]model.Todo{
		{ID: "1", Content: "done first", Completed: true},
		{ID: "2", Content: "pending second"},
	}, true)

	got := out.String()
	pending := strings.Index(got, "Pending")
	done := strings.Index(got, "Done")
	if pending < 0 || done < pending {
		t.Fatalf("sections out of order:\n%s", got)
	}
	if !strings.Contains(got, " 2. [ ] pending second") || !strings.Contains(got, " 1. [x] done first") {
		t.Errorf("grouped rows lost their indexes:\n%s", got)
	}
}

func TestPrinter_FailGoesToErr(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, "classic", true)
	p.Fail("boom")
	p.OK("fine")
	if !strings.Contains(errOut.String(), "✖ boom") || strings.Contains(out.String(), "boom") {
		t.Errorf("Fail wrote to the wrong stream: out=%q err=%q", out.String(), errOut.String())
	}
	if !strings.Contains(out.String(), "✔ fine") {
		t.Errorf("OK output = %q", out.String())
	}
}
