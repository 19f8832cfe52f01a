package commands

import (
	"fmt"

	"github.com/didpress/didpress/internal/logging"
	"github.com/spf13/cobra"
)

// Command for publishing DID documents
var publishCmd = &cobra.Command{
	Use:   "publish DID [DID...]",
	Short: "Publish did:web documents through the daemon",
	Long: `Publish one or more did:web documents through the didpress daemon.

Each identifier is resolved against the upstream wallet agent, admitted into
the daemon's current batch, and the command waits until that batch has been
committed and pushed. Submitting the same identifier again is safe: an
unchanged document produces no new commit.`,
	Example: `  # Publish a single document
  didpressctl publish did:web:acme.github.io:ssi-dids:alice

  # Publish several documents in one call
  didpressctl publish did:web:acme.github.io:ssi-dids:alice did:web:acme.github.io:ssi-dids:bob

  # Publish with JSON output
  didpressctl publish -o json did:web:acme.github.io:ssi-dids:alice`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected at least 1 did:web identifier, got %d", len(args))
			return fmt.Errorf("requires at least 1 argument (did:web identifier)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}
