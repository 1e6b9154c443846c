package cli

import (
	"fmt"
	"os"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"Shardbox/internal/splitbox"
)

func init() {
	combineCmd.SilenceErrors = true
	combineCmd.SilenceUsage = true
}

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Recombine a secret from its shares and secret box",
	Long: `Combine recovers each --share and the --secretbox through the
damage-tolerant container's recovery path, Shamir-combines the surviving
shares into the ephemeral key, and AEAD-decrypts the secret box under it.
At least --threshold shares (from the original split) are required; fewer
fail closed rather than silently returning a wrong secret.

Example:
  shardbox combine --share 2NEpo7TZRR... --share 5Q5CpNu... --share 9XLeuDpu... \
    --secretbox 8TyH8t8...`,
	RunE: runCombine,
}

var (
	combineShares    []string
	combineSecretBox string
	combineQuiet     bool
)

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringArrayVar(&combineShares, "share", nil, "A Base58-encoded share (can be specified multiple times)")
	combineCmd.Flags().StringVar(&combineSecretBox, "secretbox", "", "The Base58-encoded secret box")
	combineCmd.Flags().BoolVarP(&combineQuiet, "quiet", "q", false, "Suppress status output")

	_ = combineCmd.MarkFlagRequired("secretbox")
}

func runCombine(cmd *cobra.Command, args []string) error {
	if len(combineShares) == 0 {
		return fmt.Errorf("at least one --share is required")
	}

	reporter := NewReporter(combineQuiet)
	reporter.SetCanCancel(true)
	globalReporter = reporter

	wrappedShares := make([][]byte, 0, len(combineShares))
	for i, s := range combineShares {
		decoded, err := base58.Decode(s)
		if err != nil {
			return fmt.Errorf("share %d is not valid Base58: %w", i+1, err)
		}
		wrappedShares = append(wrappedShares, decoded)
	}

	wrappedBox, err := base58.Decode(combineSecretBox)
	if err != nil {
		return fmt.Errorf("--secretbox is not valid Base58: %w", err)
	}

	plaintext, err := splitbox.Combine(wrappedShares, wrappedBox, reporter)
	reporter.Finish()
	if err != nil {
		reporter.PrintError("%v", err)
		return err
	}
	reporter.PrintSuccess("Recombined from %d share(s)", len(wrappedShares))

	os.Stdout.Write(plaintext)
	if !combineQuiet {
		fmt.Println()
	}
	return nil
}
