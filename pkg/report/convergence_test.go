package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteConvergenceChartProducesHTML(t *testing.T) {
	history := []float64{100, 95, 95, 80, 80, 80}
	var buf bytes.Buffer

	if err := WriteConvergenceChart(&buf, "demo", history); err != nil {
		t.Fatalf("WriteConvergenceChart: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<html") {
		t.Errorf("expected HTML output, got:\n%s", out)
	}
	if !strings.Contains(out, "demo") {
		t.Error("expected instance name to appear in the rendered chart")
	}
}

func TestWriteConvergenceChartRejectsEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteConvergenceChart(&buf, "demo", nil); err == nil {
		t.Fatal("expected an error for an empty cost history")
	}
}
