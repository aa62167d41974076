package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tinybio/linkdeck/internal/config"
	"github.com/tinybio/linkdeck/internal/mock"
	"github.com/tinybio/linkdeck/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "linkdeck",
	Short: "Linkdeck - terminal admin console for the link-in-bio platform",
	Long: `Linkdeck is a terminal admin console for managing the link-in-bio
platform: users, link categories and blog articles.

Run without arguments to start the console. It signs in against the
platform API configured in ~/.linkdeck/config.yaml (or --api) and
keeps unsaved article edits in a local draft buffer.

Examples:
  linkdeck                             # Start the console
  linkdeck --api http://localhost:4000/api
  linkdeck --per-page 25               # Larger list pages
  linkdeck mock --seed                 # Run a local stand-in API`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(flagAPI, flagPerPage)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run an in-memory stand-in for the platform API",
	Long: `Run a local HTTP server that implements the platform API surface
with in-memory data. Useful for demos and for developing against the
console without a backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		port := flagMockPort
		if port == 0 {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			port = settings.MockPort
		}

		server := mock.NewServer(mock.Config{Port: port, Seed: flagMockSeed})
		if err := server.Start(); err != nil {
			return err
		}
		fmt.Printf("Mock platform API listening on %s\n", server.Address())
		if flagMockSeed {
			fmt.Println("Seeded demo data (sign in with admin@linkdeck.local)")
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		fmt.Println("Shutting down...")
		return server.Stop()
	},
}

var (
	flagAPI     string
	flagPerPage int

	flagMockPort int
	flagMockSeed bool
)

func init() {
	rootCmd.Flags().StringVar(&flagAPI, "api", "", "Platform API base URL (overrides config)")
	rootCmd.Flags().IntVar(&flagPerPage, "per-page", 0, "Items per list page (overrides config)")

	mockCmd.Flags().IntVar(&flagMockPort, "port", 0, "Port to listen on (default from config)")
	mockCmd.Flags().BoolVar(&flagMockSeed, "seed", true, "Load demo data on startup")

	rootCmd.AddCommand(mockCmd)
}
