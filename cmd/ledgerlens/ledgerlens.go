// Package ledgerlenscmder
package ledgerlenscmder

import (
	askcmder "github.com/ledgerlens/ledgerlens/cmd/ledgerlens/ask"
	servecmder "github.com/ledgerlens/ledgerlens/cmd/ledgerlens/serve"
	summarizecmder "github.com/ledgerlens/ledgerlens/cmd/ledgerlens/summarize"
	"github.com/spf13/cobra"
)

const ledgerlensLongDesc string = `Ledgerlens answers questions about financial documents and produces
structured summaries of them, grounded in the document's own text.

Run services using:
  ledgerlens serve        Run the API server
  ledgerlens ask          Ask a one-shot question about a document
  ledgerlens summarize    Summarize a document`

const ledgerlensShortDesc string = "Ledgerlens - Document QA and Summarization"

func NewLedgerlensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledgerlens",
		Short: ledgerlensShortDesc,
		Long:  ledgerlensLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Directory containing config.toml")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(summarizecmder.NewSummarizeCmd())

	return cmd
}
