package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/jpjj/cvrp-hgs/pkg/config"
	"github.com/jpjj/cvrp-hgs/pkg/ioformat"
	"github.com/jpjj/cvrp-hgs/pkg/orchestrator"
	"github.com/jpjj/cvrp-hgs/pkg/report"
)

type solveOptions struct {
	instancePath string
	configPath   string
	outputPath   string
	reportPath   string
	timeLimit    time.Duration
	seed         int64
	otlpEndpoint string
}

func newSolveCmd() *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve <instance-file>",
		Short: "Solve a single CVRP instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.instancePath = args[0]
			return runSolve(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults used for any field it omits)")
	flags.StringVar(&opts.outputPath, "output", "", "path to write the solution report (defaults to <instance>.sol)")
	flags.StringVar(&opts.reportPath, "report", "", "optional path to write an HTML convergence chart")
	flags.DurationVar(&opts.timeLimit, "time-limit", 0, "wall-clock budget; overrides the config file's timeLimit if set")
	flags.Int64Var(&opts.seed, "seed", 1, "seed for the solver's random number generator")
	flags.StringVar(&opts.otlpEndpoint, "otlp-endpoint", "", "OTLP/gRPC collector endpoint for generation tracing (disabled if empty)")

	return cmd
}

func runSolve(ctx context.Context, opts *solveOptions) error {
	logger := klog.Background().WithValues("instance", opts.instancePath)
	ctx = klog.NewContext(ctx, logger)

	shutdownTracing, err := setupTracing(ctx, opts.otlpEndpoint)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error(err, "shutting down tracer provider")
		}
	}()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	instanceFile, err := os.Open(opts.instancePath)
	if err != nil {
		return fmt.Errorf("opening instance file: %w", err)
	}
	defer instanceFile.Close()

	problem, err := ioformat.ParseInstance(instanceFile)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}
	logger.Info("loaded problem", "customers", problem.CustomerCount())

	orch := orchestrator.New(problem, cfg, uint64(opts.seed))

	result := orch.Run(ctx)
	fmt.Println(result.Stats.String())
	logger.Info("search completed", "stopReason", result.Stats.StopReason)

	if result.Best == nil {
		return fmt.Errorf("no feasible solution found within the configured limits")
	}

	outputPath := opts.outputPath
	if outputPath == "" {
		outputPath = problem.Name + ".sol"
	}
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outputFile.Close()
	if err := ioformat.WriteSolution(outputFile, result.Best, problem); err != nil {
		return fmt.Errorf("writing solution: %w", err)
	}
	logger.Info("wrote solution", "path", outputPath, "distance", result.Best.Distance)

	if opts.reportPath != "" {
		reportFile, err := os.Create(opts.reportPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer reportFile.Close()
		if err := report.WriteConvergenceChart(reportFile, problem.Name, result.Stats.BestCostHistory); err != nil {
			return fmt.Errorf("writing convergence chart: %w", err)
		}
		logger.Info("wrote convergence chart", "path", opts.reportPath)
	}

	return nil
}

func loadConfig(opts *solveOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		data, err := os.ReadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		cfg, err = config.Load(data)
		if err != nil {
			return nil, err
		}
	}
	if opts.timeLimit > 0 {
		cfg.TimeLimit = opts.timeLimit
	}
	return cfg, nil
}
