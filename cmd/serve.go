package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"opsim/internal/chaos"
	"opsim/internal/ingest"
	"opsim/internal/server"
	"opsim/internal/telemetry"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the synthetic admin API",
	Long: `Start the admin HTTP API the dashboard front-end consumes.

The service fabricates every response in process:
- GET  /admin/metrics               storefront metrics snapshot
- GET  /admin/logs                  next synthetic log batch
- GET  /admin/logs/stream           websocket tail of the paced log pipeline
- GET  /admin/kafka/topics          fixed topic catalogue
- GET  /admin/kafka/messages        one message batch per topic query
- GET  /admin/traces/{id}           canonical happy-path order trace
- POST /admin/tests/run             step sequence for a named scenario
- /admin/chaos/*                    failure toggles and derived health

Storefront mock endpoints (/products, /orders) are served as well so the
whole demo works against this single process.`,
	Example: `  # Start on the default port (8080)
  opsim serve

  # Custom port, instant responses
  opsim serve --port 3001 --max-latency 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := chaos.NewEngine()
	gen := telemetry.NewGenerator(telemetry.WithHealthSource(engine))

	clientOpts := []telemetry.ClientOption{}
	if d := viper.GetDuration("max_latency"); d >= 0 {
		clientOpts = append(clientOpts, telemetry.WithMaxLatency(d))
	}
	client := telemetry.NewClient(gen, clientOpts...)

	pipeline := ingest.NewPipeline(client,
		ingest.WithIntervals(viper.GetDuration("poll_interval"), viper.GetDuration("drain_interval")))
	pipeline.Start(ctx)
	defer pipeline.Stop()

	port := viper.GetInt("port")
	srv := server.New(port, client, engine, pipeline)

	fmt.Printf("🚀 OpSim admin API starting on http://localhost:%d\n", port)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start(ctx)
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		fmt.Println("\n🛑 Shutting down...")
		cancel()
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("admin API server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		fmt.Printf("⚠️  Error during shutdown: %v\n", err)
	}

	fmt.Println("✅ Stopped")
	return nil
}
