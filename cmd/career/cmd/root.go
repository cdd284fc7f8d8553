// Package cmd holds the career command tree
package cmd

import (
	"fmt"
	"os"

	// Load .env into the environment before any command reads it
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/ismail-dev-code/career-linker-server/internal/config"
)

var (
	logLevel  string
	logFormat string

	rootCmd = &cobra.Command{
		Use:   "career",
		Short: "Career linker API server",
		Long: `career serves the job board API: job listings, applications, session
cookies for recruiters and a WebSocket chat relay.

Configuration is read from environment variables and an optional .env file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}
)

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cleanDBCmd)
	rootCmd.AddCommand(issueTokenCmd)
}

// loadConfig reads the environment and applies the global flag overrides
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, nil
}
