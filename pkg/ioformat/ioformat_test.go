package ioformat

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

const sampleInstance = `demo
10 2
0 0 0 0
1 10 0 3
2 0 10 4
`

func TestParseInstance(t *testing.T) {
	p, err := ParseInstance(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("ParseInstance: %v", err)
	}
	if p.Name != "demo" {
		t.Errorf("Name = %q, want demo", p.Name)
	}
	if p.VehicleCapacity != 10 {
		t.Errorf("VehicleCapacity = %v, want 10", p.VehicleCapacity)
	}
	if p.MaxVehicles != 2 {
		t.Errorf("MaxVehicles = %v, want 2", p.MaxVehicles)
	}
	if p.CustomerCount() != 2 {
		t.Errorf("CustomerCount() = %d, want 2", p.CustomerCount())
	}
	if !p.Depot().IsDepot {
		t.Error("expected the zero-demand node to be flagged as depot")
	}
}

func TestParseInstanceWithoutMaxVehicles(t *testing.T) {
	instance := "demo\n10\n0 0 0 0\n1 5 0 1\n"
	p, err := ParseInstance(strings.NewReader(instance))
	if err != nil {
		t.Fatalf("ParseInstance: %v", err)
	}
	if p.MaxVehicles != 0 {
		t.Errorf("MaxVehicles = %v, want 0 (unset)", p.MaxVehicles)
	}
}

func TestParseInstanceMissingDepotErrors(t *testing.T) {
	instance := "demo\n10\n1 5 0 1\n2 0 5 1\n"
	_, err := ParseInstance(strings.NewReader(instance))
	if err == nil {
		t.Fatal("expected an error for an instance with no depot")
	}
}

func TestParseInstanceMalformedNumberErrors(t *testing.T) {
	instance := "demo\n10\n0 0 0 0\n1 abc 0 1\n"
	_, err := ParseInstance(strings.NewReader(instance))
	if err == nil {
		t.Fatal("expected an error for a malformed coordinate")
	}
}

func TestWriteSolutionWithEmptyRoute(t *testing.T) {
	nodes := []model.Node{
		model.NewNode(0, 0, 0, 0, true),
		model.NewNode(1, 10, 0, 3, false),
	}
	problem := model.NewProblem("demo", nodes, 0, 10, 0)

	route := model.NewRoute()
	route.Customers = []int{1}
	route.Recalculate(problem)

	solution := model.NewSolution()
	solution.Routes = []*model.Route{route, model.NewRoute()}
	solution.Evaluate(problem, 1.0)

	var buf bytes.Buffer
	if err := WriteSolution(&buf, solution, problem); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "CVRP Solution for instance: demo") {
		t.Error("missing instance name header")
	}
	if !strings.Contains(out, "Route #1: 0 -> 1 -> 0") {
		t.Errorf("missing expected route line, got:\n%s", out)
	}
	if !strings.Contains(out, "Route #2: Empty") {
		t.Errorf("missing Empty route line, got:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                "0h 00m 00s",
		90 * time.Second:                 "0h 01m 30s",
		(2*3600 + 5*60 + 9) * time.Second: "2h 05m 09s",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
