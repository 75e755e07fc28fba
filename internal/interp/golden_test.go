package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
)

// TestDiagnosticsReport_Golden snapshots the rendered diagnostics report
// (header, entry lines, source-line excerpt) for a project with a
// mix of an undefined-variable evaluation error and a malformed-syntax
// parse error.
func TestDiagnosticsReport_Golden(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	in.RegisterFile("main.mos", "let x = ;\nprint(undefined_name);")

	_, _ = in.RunProject("main.mos")

	var report bytes.Buffer
	diagnostics.FlushWithSource(&report, in.Diagnostics(), in.Sources())

	snaps.MatchSnapshot(t, "diagnostics_report", report.String())
}
