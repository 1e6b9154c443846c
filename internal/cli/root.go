// Package cli implements the split/combine command-line front-end: argument
// parsing, the hidden secret prompt, Base58 transport encoding, and terminal
// progress reporting. Everything here is glue around the core
// internal/splitbox package; none of the container/Shamir/AEAD logic lives
// in this package.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set by main.go.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "shardbox",
	Short: "Damage-tolerant Shamir secret splitting",
	Long: `shardbox splits a secret into N transportable shares such that any K
recover it exactly, even if the shares themselves suffer bit-rot or partial
byte loss in transit:
  - ChaCha20-Poly1305 seals the secret under a fresh ephemeral key
  - Shamir secret sharing splits that key into N shares, any K of which recombine it
  - every share and the sealed secret box are wrapped in a damage-tolerant
    container (replicated headers, Reed-Solomon parity, verbatim copies)
  - Base58 carries shares and the secret box as plain text`,
	Version: Version,
}

var globalReporter *Reporter

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if globalReporter != nil {
			globalReporter.Cancel()
			fmt.Fprintln(os.Stderr, "\ncancelling...")
		}
		os.Exit(1)
	}()

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
