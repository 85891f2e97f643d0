package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ledgerlens/ledgerlens/pkg/pipeline"
	"github.com/ledgerlens/ledgerlens/pkg/prompt"
)

// SummarizeRequest is the JSON body for POST /v1/summarize. Exactly one of
// Document or Text supplies the source material; Document is base64-encoded
// PDF bytes. Variant defaults to "detailed".
type SummarizeRequest struct {
	Document  []byte `json:"document,omitempty"`
	Text      string `json:"text,omitempty"`
	Variant   string `json:"variant,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// SummarizeResponse is the JSON response for POST /v1/summarize.
type SummarizeResponse struct {
	Summary string `json:"summary"`
	Variant string `json:"variant"`
}

// handleSummarize handles POST /v1/summarize requests.
func (s *Server) handleSummarize(c *fiber.Ctx) error {
	if s.pipeline == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "summarization is not configured: pipeline is required",
		})
	}

	var req SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	variantStr := req.Variant
	if variantStr == "" {
		variantStr = string(prompt.VariantDetailed)
	}
	variant, err := prompt.ParseVariant(variantStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	answer, err := s.pipeline.Summarize(c.Context(), &pipeline.Request{
		Document:  req.Document,
		Text:      req.Text,
		Variant:   variant,
		SessionID: req.SessionID,
	})
	if err != nil {
		return s.pipelineError(c, err)
	}

	return c.JSON(SummarizeResponse{
		Summary: answer.Text,
		Variant: string(variant),
	})
}
