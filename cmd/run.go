package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"opsim/internal/runner"
	"opsim/internal/telemetry"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Execute test scenarios against the synthetic backend",
	Long: `Execute one named test scenario, or all scenarios sequentially when no
name is given. Steps are revealed one at a time with the same pacing the
dashboard uses, and each scenario ends with a PASS or FAIL verdict.`,
	Example: `  # Run every scenario in order
  opsim run

  # Run a single scenario
  opsim run "Happy Path Order"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenarios,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	gen := telemetry.NewGenerator()
	clientOpts := []telemetry.ClientOption{}
	if d := viper.GetDuration("max_latency"); d >= 0 {
		clientOpts = append(clientOpts, telemetry.WithMaxLatency(d))
	}
	client := telemetry.NewClient(gen, clientOpts...)

	r := runner.NewRunner(client, runner.OnReveal(func(step telemetry.TestStep) {
		fmt.Printf("  ✓ %-22s %dms\n", step.Name, step.Duration)
	}))

	scenarios := r.Scenarios()

	if len(args) == 1 {
		index := -1
		for i, s := range scenarios {
			if s.Name == args[0] {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("unknown scenario %q", args[0])
		}
		fmt.Printf("🧪 %s — %s\n", scenarios[index].Name, scenarios[index].Description)
		r.RunTest(ctx, index)
		printResults(r, []int{index})
		return nil
	}

	fmt.Printf("🧪 Running %d scenarios\n", len(scenarios))
	indices := make([]int, 0, len(scenarios))
	for i, s := range scenarios {
		fmt.Printf("\n▶ %s — %s\n", s.Name, s.Description)
		r.RunTest(ctx, i)
		indices = append(indices, i)
	}
	printResults(r, indices)
	return nil
}

func printResults(r *runner.Runner, indices []int) {
	results := r.Results()
	scenarios := r.Scenarios()

	fmt.Println()
	for _, i := range indices {
		result, ok := results[i]
		if !ok {
			continue
		}
		fmt.Printf("%s: %s (%dms)\n", scenarios[i].Name, result.Status, result.Duration)
	}
}
