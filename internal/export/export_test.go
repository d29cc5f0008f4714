package export

import (
	"strings"
	"testing"

	"github.com/srazzak/tutorsite/internal/guard"
)

const sample = `<h1>Binary Represents Data</h1><p>Computers store <strong>everything</strong> as bits.</p>` +
	`<h2>Place values</h2><ul><li>one</li><li>two</li></ul><h3> Nibbles  and bytes </h3>`

func TestMarkdown(t *testing.T) {
	md, err := Markdown(sample)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, want := range []string{
		"# Binary Represents Data",
		"Computers store **everything** as bits.",
		"## Place values",
		"- one",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Errorf("markdown should end with exactly one newline: %q", md)
	}
}

func TestOutline(t *testing.T) {
	hs, err := Outline(sample)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	want := []Heading{
		{1, "Binary Represents Data"},
		{2, "Place values"},
		{3, "Nibbles and bytes"},
	}
	if len(hs) != len(want) {
		t.Fatalf("headings = %+v", hs)
	}
	for i := range want {
		if hs[i] != want[i] {
			t.Errorf("heading %d = %+v, want %+v", i, hs[i], want[i])
		}
	}
}

func TestOutlineIgnoresGuardStyles(t *testing.T) {
	hs, err := Outline(guard.Guard("<h2>Sound</h2>"))
	if err != nil {
		t.Fatal(err)
	}
	if len(hs) != 1 || hs[0].Text != "Sound" {
		t.Errorf("headings = %+v", hs)
	}
}

func TestFormatOutline(t *testing.T) {
	got := FormatOutline([]Heading{{2, "A"}, {3, "B"}, {2, "C"}})
	want := "- A\n  - B\n- C\n"
	if got != want {
		t.Errorf("FormatOutline = %q, want %q", got, want)
	}
	if FormatOutline(nil) != "" {
		t.Error("empty outline should format to empty string")
	}
}
