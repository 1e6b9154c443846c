// Shardbox splits a secret into damage-tolerant Shamir shares and recombines
// them, using:
//   - ChaCha20-Poly1305 to seal the secret under a fresh ephemeral key
//   - Shamir secret sharing (GF(256)) to split that key into N shares, any K
//     of which recombine it
//   - a damage-tolerant container (replicated headers, Reed-Solomon parity,
//     verbatim copies) around every share and the sealed secret box
//   - Base58 to carry shares and the secret box as plain text
package main

import (
	"os"

	"Shardbox/internal/cli"
)

// version is the application version.
const version = "v0.1"

func main() {
	os.Exit(cli.Execute(version))
}
