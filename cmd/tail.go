package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"opsim/internal/ingest"
	"opsim/internal/telemetry"
)

// tailCmd represents the tail command
var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the synthetic log stream in the terminal",
	Long: `Run the log-ingestion pipeline locally and print entries as they drain
into the display buffer, newest last. The same pacing as the dashboard
applies: batches are polled every 2s and drained one entry per 1.5s.`,
	Example: `  # Follow everything
  opsim tail

  # Only payment-service errors
  opsim tail --service PAYMENT --level ERROR`,
	RunE: runTail,
}

var (
	tailService string
	tailLevel   string
	tailSearch  string
)

func init() {
	rootCmd.AddCommand(tailCmd)

	tailCmd.Flags().StringVar(&tailService, "service", ingest.AnyService, "Only show one service (ORDER, PAYMENT, ...)")
	tailCmd.Flags().StringVar(&tailLevel, "level", ingest.AnyLevel, "Only show one level (INFO, WARN, ERROR, SUCCESS)")
	tailCmd.Flags().StringVar(&tailSearch, "search", "", "Only show entries matching this text")
}

func runTail(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen := telemetry.NewGenerator()
	client := telemetry.NewClient(gen)

	filter := ingest.Filter{Search: tailSearch, Service: tailService, Level: tailLevel}

	pipeline := ingest.NewPipeline(client,
		ingest.WithIntervals(viper.GetDuration("poll_interval"), viper.GetDuration("drain_interval")))
	pipeline.Subscribe(func(entry telemetry.LogEntry) {
		if !filter.Matches(entry) {
			return
		}
		fmt.Printf("%s [%s] %-12s %s\n", entry.Time, entry.Type, entry.Service, entry.Message)
	})

	pipeline.Start(ctx)
	defer pipeline.Stop()

	fmt.Println("📋 Tailing synthetic logs, Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Printf("\nqueued: %d, displayed: %d\n", pipeline.QueueLen(), len(pipeline.Snapshot()))
	return nil
}
