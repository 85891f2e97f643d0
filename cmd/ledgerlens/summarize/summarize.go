// Package summarizecmder provides the summarize command for one-shot
// document summarization.
package summarizecmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/cmd/ledgerlens/build"
	"github.com/ledgerlens/ledgerlens/pkg/config"
	"github.com/ledgerlens/ledgerlens/pkg/logger"
	"github.com/ledgerlens/ledgerlens/pkg/pipeline"
	"github.com/ledgerlens/ledgerlens/pkg/prompt"
)

type SummarizeCommander struct {
	filePath  string
	text      string
	variant   string
	chunkSize int

	embeddingProv   string
	embeddingTgt    string
	embeddingModel  string
	generationProv  string
	generationTgt   string
	generationModel string
}

const summarizeLongDesc string = `Summarize a document.

The document is supplied either as a PDF file (--file) or as raw text
(--text). The variant controls the summary style:

  short           executive bullet points
  detailed        long-form investor-grade summary (default)
  financial_only  financial performance only
  risk_only       risk factors only

Examples:
  ledgerlens summarize --file report.pdf
  ledgerlens summarize --file report.pdf --variant short`

const summarizeShortDesc string = "Summarize a document"

var summarizeFlags = []string{
	config.FlagEmbeddingProv,
	config.FlagEmbeddingTgt,
	config.FlagEmbeddingModel,
	config.FlagGenerationProv,
	config.FlagGenerationTgt,
	config.FlagGenerationModel,
	config.FlagChunkSize,
}

func NewSummarizeCmd() *cobra.Command {
	cmder := &SummarizeCommander{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: summarizeShortDesc,
		Long:  summarizeLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
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
			config.BindRegisteredFlags(v, cmd, config.Flags, summarizeFlags)

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			return cmder.run(cfg, debug)
		},
	}

	cmd.Flags().StringVarP(&cmder.filePath, "file", "f", "", "Path to the PDF document")
	cmd.Flags().StringVar(&cmder.text, "text", "", "Document content as raw text")
	cmd.Flags().StringVarP(&cmder.variant, "variant", "v", string(prompt.VariantDetailed),
		"Summary variant (short, detailed, financial_only, risk_only)")
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProv, &cmder.embeddingProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingTgt, &cmder.embeddingTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, &cmder.embeddingModel)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationProv, &cmder.generationProv)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationTgt, &cmder.generationTgt)
	config.AddStringFlag(cmd, config.Flags, config.FlagGenerationModel, &cmder.generationModel)
	config.AddIntFlag(cmd, config.Flags, config.FlagChunkSize, &cmder.chunkSize)

	return cmd
}

func (c *SummarizeCommander) run(cfg *config.Config, debug bool) error {
	log := logger.NewLogger(debug)
	defer log.Sync()

	variant, err := prompt.ParseVariant(c.variant)
	if err != nil {
		return err
	}

	ctx := context.Background()

	result, err := build.Pipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer result.Close()

	req := &pipeline.Request{
		Variant: variant,
		Text:    c.text,
	}

	if c.filePath != "" {
		data, err := os.ReadFile(c.filePath)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		req.Document = data
	}

	answer, err := result.Pipeline.Summarize(ctx, req)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	return nil
}
