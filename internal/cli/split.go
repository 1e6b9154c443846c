package cli

import (
	"fmt"
	"os"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"Shardbox/internal/splitbox"
)

func init() {
	splitCmd.SilenceErrors = true
	splitCmd.SilenceUsage = true
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a secret into N damage-tolerant shares",
	Long: `Split seals a secret under a fresh ephemeral key with ChaCha20-Poly1305,
splits that key into --count Shamir shares (any --threshold of which recombine
it), and wraps every share plus the sealed secret box in a damage-tolerant
container before printing them as Base58 text.

Examples:
  # Split interactively (prompts for the secret), 5 shares, 3 needed to recover
  shardbox split --count 5 --threshold 3

  # Split a secret given on the command line, with Reed-Solomon headroom
  shardbox split --count 5 --threshold 3 --secret "correct horse battery staple" --damage-level 1.0

  # Read the secret from stdin (for scripts)
  echo -n "mysecret" | shardbox split --count 5 --threshold 3 --secret-stdin`,
	RunE: runSplit,
}

var (
	splitCount       int
	splitThreshold   int
	splitDamageLevel float64
	splitSecret      string
	splitSecretStdin bool
	splitQuiet       bool
)

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&splitCount, "count", "n", 0, "Total number of shares to produce")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "k", 0, "Number of shares required to recombine the secret")
	splitCmd.Flags().Float64VarP(&splitDamageLevel, "damage-level", "d", 0, "Expected fraction of bytes lost per share/box (redundancy headroom)")
	splitCmd.Flags().StringVarP(&splitSecret, "secret", "s", "", "Secret to split (visible in shell history; prefer interactive or --secret-stdin)")
	splitCmd.Flags().BoolVar(&splitSecretStdin, "secret-stdin", false, "Read the secret from stdin")
	splitCmd.Flags().BoolVarP(&splitQuiet, "quiet", "q", false, "Suppress status output")

	_ = splitCmd.MarkFlagRequired("count")
	_ = splitCmd.MarkFlagRequired("threshold")
}

func runSplit(cmd *cobra.Command, args []string) error {
	if splitCount <= 0 {
		return fmt.Errorf("--count must be positive")
	}
	if splitThreshold <= 0 || splitThreshold > splitCount {
		return fmt.Errorf("--threshold must be between 1 and --count")
	}
	if splitDamageLevel < 0 {
		return fmt.Errorf("--damage-level must not be negative")
	}

	secret := splitSecret
	switch {
	case splitSecretStdin:
		var err error
		secret, err = ReadSecretFromStdin()
		if err != nil {
			return err
		}
	case secret == "":
		var err error
		secret, err = ReadSecretInteractive()
		if err != nil {
			return fmt.Errorf("secret input: %w", err)
		}
	}

	reporter := NewReporter(splitQuiet)
	reporter.SetCanCancel(true)
	globalReporter = reporter

	shares, box, err := splitbox.Split([]byte(secret), splitDamageLevel, splitCount, splitThreshold, reporter)
	reporter.Finish()
	if err != nil {
		reporter.PrintError("%v", err)
		return err
	}
	if len(shares) < splitThreshold {
		err := fmt.Errorf("only %d of %d shares wrapped successfully, below threshold %d", len(shares), splitCount, splitThreshold)
		reporter.PrintError("%v", err)
		return err
	}

	reporter.PrintSuccess("Split into %d share(s), %d required to recover", len(shares), splitThreshold)
	if !splitQuiet {
		fmt.Fprintln(os.Stderr)
	}

	for i, share := range shares {
		fmt.Printf("share %d/%d: %s\n", i+1, len(shares), base58.Encode(share))
	}
	fmt.Printf("secretbox: %s\n", base58.Encode(box))

	return nil
}
