// Package askcmder provides the ask command for one-shot document QA.
package askcmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/cmd/ledgerlens/build"
	"github.com/ledgerlens/ledgerlens/pkg/config"
	"github.com/ledgerlens/ledgerlens/pkg/logger"
	"github.com/ledgerlens/ledgerlens/pkg/pipeline"
)

type AskCommander struct {
	filePath  string
	text      string
	sessionID string
	topK      int
	chunkSize int

	embeddingProv   string
	embeddingTgt    string
	embeddingModel  string
	generationProv  string
	generationTgt   string
	generationModel string
}

const askLongDesc string = `Ask a one-shot question about a document.

The document is supplied either as a PDF file (--file) or as raw text
(--text). The answer is grounded in the document's own content; when no
part of the document is relevant, the model is told so explicitly.

Examples:
  ledgerlens ask --file report.pdf "What was total revenue?"
  ledgerlens ask --text "Invoice total: \$500." "What is the total?"`

const askShortDesc string = "Ask a question about a document"

var askFlags = []string{
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagGenerationProv,
	config.FlagGenerationTgt,
	config.FlagGenerationModel,
	config.FlagRetrievalTopK,
	config.FlagChunkSize,
}

func NewAskCmd() *cobra.Command {
	cmder := &AskCommander{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("could not get config flag: %v", err)
			}

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, askFlags)

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			return cmder.run(cfg, debug, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.filePath, "file", "f", "", "Path to the PDF document")
	cmd.Flags().StringVar(&cmder.text, "text", "", "Document content as raw text")
	cmd.Flags().StringVar(&cmder.sessionID, "session", "default", "Session ID for conversation memory")
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.embeddingProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.embeddingTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.embeddingModel)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationProv, &cmder.generationProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationTgt, &cmder.generationTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationModel, &cmder.generationModel)
	config.AddIntFlag(cmd, config.Flags, config.FlagRetrievalTopK, &cmder.topK)
	config.AddIntFlag(cmd, config.Flags, config.FlagChunkSize, &cmder.chunkSize)

	return cmd
}

func (c *AskCommander) run(cfg *config.Config, debug bool, question string) error {
	log := logger.NewLogger(debug)
	defer log.Sync()

	ctx := context.Background()

	result, err := build.Pipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer result.Close()

	req := &pipeline.Request{
		Question:  question,
		SessionID: c.sessionID,
		Text:      c.text,
	}

	if c.filePath != "" {
		data, err := os.ReadFile(c.filePath)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		req.Document = data
	}

	answer, err := result.Pipeline.Ask(ctx, req)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	return nil
}
