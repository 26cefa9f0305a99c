package ioformat

import (
	"fmt"
	"io"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// WriteSolution renders solution against problem in the reference report
// format: header lines (instance name, total distance, feasibility, route
// count), then per route either "Empty" or the depot-to-depot customer
// sequence plus its distance and load/capacity lines.
func WriteSolution(w io.Writer, solution *model.Solution, problem *model.Problem) error {
	if _, err := fmt.Fprintf(w, "CVRP Solution for instance: %s\n", problem.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Distance: %.2f\n", solution.Distance); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Is Feasible: %t\n", solution.IsFeasible); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Number of Routes: %d\n\n", len(solution.Routes)); err != nil {
		return err
	}

	for i, route := range solution.Routes {
		if _, err := fmt.Fprintf(w, "Route #%d: ", i+1); err != nil {
			return err
		}
		if route.IsEmpty() {
			if _, err := fmt.Fprintln(w, "Empty"); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprint(w, "0"); err != nil {
			return err
		}
		for _, customer := range route.Customers {
			if _, err := fmt.Fprintf(w, " -> %d", customer); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, " -> 0"); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "  Distance: %.2f\n", route.Distance); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  Load: %.2f / %.2f\n\n", route.Load, problem.VehicleCapacity); err != nil {
			return err
		}
	}

	return nil
}
