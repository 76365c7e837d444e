package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opsim",
	Short: "Synthetic operations telemetry for the storefront demo dashboard",
	Long: `OpSim fabricates the observability surface of a storefront platform
without running any of it. It provides:

- Self-consistent synthetic metrics, logs, broker messages and traces
- A chaos engine deriving system health from toggled failure scenarios
- A paced log-ingestion pipeline with dedup and a bounded display buffer
- Sequential test-scenario execution with animated step reveal
- An admin HTTP API matching the dashboard front-end's expectations

Everything is simulated in process: no broker, no collector, no database.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.opsim.yaml)")
	rootCmd.PersistentFlags().Int("port", 8080, "Admin API port")
	rootCmd.PersistentFlags().Duration("poll-interval", 0, "Log poll interval (0 = default 2s)")
	rootCmd.PersistentFlags().Duration("drain-interval", 0, "Log drain interval (0 = default 1.5s)")
	rootCmd.PersistentFlags().Duration("max-latency", -1, "Simulated per-call latency cap (-1 = default 800ms, 0 = none)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("poll_interval", rootCmd.PersistentFlags().Lookup("poll-interval"))
	viper.BindPFlag("drain_interval", rootCmd.PersistentFlags().Lookup("drain-interval"))
	viper.BindPFlag("max_latency", rootCmd.PersistentFlags().Lookup("max-latency"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("port", 8080)
}

// initConfig reads in config file and ENV variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".opsim")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
