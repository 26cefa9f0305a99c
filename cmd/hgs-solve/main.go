// Command hgs-solve runs the hybrid genetic search solver against a CVRP
// instance file and writes the best solution found.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hgs-solve",
		Short: "Solve capacitated vehicle routing problems with a hybrid genetic search",
	}
	root.AddCommand(newSolveCmd())
	return root
}
