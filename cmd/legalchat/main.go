// Command legalchat is the terminal client for the legal assistant relay.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/legalassist/pkg/client"
	"github.com/artem13815/legalassist/pkg/logging"
)

var (
	serverURL string
	timeout   time.Duration
	logFile   string
	verbose   bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "legalchat",
	Short: "Ask the virtual legal assistant from your terminal",
	Long: `legalchat talks to a legalassist relay server.

Answers are general legal information, not legal advice.
Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.NewFile(logFile, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func init() {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	defaultServer := os.Getenv("LEGALASSIST_URL")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "relay base URL (env LEGALASSIST_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 90*time.Second, "per-question timeout")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write client logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging (with --log-file)")

	rootCmd.AddCommand(askCmd, chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
