// Package ioformat reads CVRP instance files and writes solved-solution
// reports in the whitespace-separated text formats the solver and the
// reference implementation share.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// ParseInstance reads a CVRP instance: line 1 is the instance name, line 2
// is "<capacity> [<max_vehicles>]", and each remaining non-blank line is
// "<id> <x> <y> <demand>". A node with demand 0 is the depot; exactly one
// is expected. Parse failures are returned to the caller; the solver is
// never invoked on a malformed instance.
func ParseInstance(r io.Reader) (*model.Problem, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	name, err := nextNonEmptyLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("reading instance name: %w", err)
	}

	vehicleLine, err := nextNonEmptyLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("reading vehicle line: %w", err)
	}
	vehicleFields := strings.Fields(vehicleLine)
	if len(vehicleFields) == 0 {
		return nil, fmt.Errorf("vehicle line is empty")
	}
	capacity, err := strconv.ParseFloat(vehicleFields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing vehicle capacity %q: %w", vehicleFields[0], err)
	}
	maxVehicles := 0
	if len(vehicleFields) > 1 {
		mv, err := strconv.Atoi(vehicleFields[1])
		if err != nil {
			return nil, fmt.Errorf("parsing max vehicles %q: %w", vehicleFields[1], err)
		}
		maxVehicles = mv
	}

	var nodes []model.Node
	depotIndex := -1
	lineNo := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("node line %q has %d fields, want at least 4", line, len(fields))
		}
		if _, err := strconv.ParseUint(fields[0], 10, 64); err != nil {
			return nil, fmt.Errorf("parsing node id %q: %w", fields[0], err)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing node x %q: %w", fields[1], err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing node y %q: %w", fields[2], err)
		}
		demand, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing node demand %q: %w", fields[3], err)
		}
		isDepot := demand == 0
		if isDepot {
			depotIndex = lineNo
		}
		nodes = append(nodes, model.NewNode(lineNo, x, y, demand, isDepot))
		lineNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading instance body: %w", err)
	}
	if depotIndex == -1 {
		return nil, fmt.Errorf("instance has no depot (no node with demand 0)")
	}

	return model.NewProblem(name, nodes, depotIndex, capacity, maxVehicles), nil
}

func nextNonEmptyLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
