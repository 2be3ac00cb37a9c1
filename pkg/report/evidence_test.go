package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/gsnview/pkg/gsn"
)

func parse(t *testing.T, name, src string) *gsn.Module {
	t.Helper()
	m, err := gsn.Parse(name, []byte(src))
	if err != nil {
		t.Fatalf("Parse(%s): %v", name, err)
	}
	return m
}

func TestEvidence(t *testing.T) {
	a := parse(t, "a", `
G1:
  text: Top
  supportedBy: [Sn1, Sn2]
Sn1:
  text: Hazard log
  url: https://example.org/log
  level: SIL3
Sn2:
  text: Test report
`)
	b := parse(t, "b", `
Sn3:
  text: Review record
`)

	got := Evidence([]*gsn.Module{a, b}, Options{Layers: []string{"level"}})
	want := `List of Evidence
================

1. Sn1: Hazard log

   Module: a

   URL: https://example.org/log

   LEVEL: SIL3

2. Sn2: Test report

   Module: a

3. Sn3: Review record

   Module: b

`
	if got != want {
		t.Errorf("Evidence() =\n%s\nwant\n%s", got, want)
	}
}

func TestEvidenceEmpty(t *testing.T) {
	m := parse(t, "a", "G1:\n  text: Top\n  undeveloped: true\n")
	got := Evidence([]*gsn.Module{m}, Options{})
	if !strings.HasSuffix(got, NoEvidence+"\n") {
		t.Errorf("Evidence() = %q", got)
	}
	if !strings.HasPrefix(got, Title+"\n") {
		t.Errorf("missing title: %q", got)
	}
}

func TestEvidenceWrapsText(t *testing.T) {
	m := parse(t, "a", "Sn1:\n  text: "+strings.Repeat("word ", 30)+"\n")
	got := Evidence([]*gsn.Module{m}, Options{})
	for _, line := range strings.Split(got, "\n") {
		if len(line) > textWidth+len("1. Sn1: ") {
			t.Errorf("line too long (%d): %q", len(line), line)
		}
	}
	if !strings.Contains(got, "\n   word word") {
		t.Errorf("continuation lines not indented:\n%s", got)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteEvidence(t *testing.T) {
	m := parse(t, "a", "Sn1:\n  text: Test report\n")
	modules := []*gsn.Module{m}

	var buf bytes.Buffer
	if err := WriteEvidence(&buf, modules, Options{}); err != nil {
		t.Fatalf("WriteEvidence() error: %v", err)
	}
	if buf.String() != Evidence(modules, Options{}) {
		t.Errorf("WriteEvidence() = %q, want Evidence() output", buf.String())
	}

	diskFull := errors.New("disk full")
	if err := WriteEvidence(failingWriter{diskFull}, modules, Options{}); !errors.Is(err, diskFull) {
		t.Errorf("WriteEvidence() error = %v, want %v", err, diskFull)
	}
}
