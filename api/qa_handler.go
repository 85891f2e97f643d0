package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/document"
	"github.com/ledgerlens/ledgerlens/pkg/pipeline"
	"github.com/ledgerlens/ledgerlens/pkg/retriever"
)

// QARequest is the JSON body for POST /v1/qa. Exactly one of Document or
// Text supplies the source material; Document is base64-encoded PDF bytes.
type QARequest struct {
	Document  []byte `json:"document,omitempty"`
	Text      string `json:"text,omitempty"`
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// QAResponse is the JSON response for POST /v1/qa.
type QAResponse struct {
	Answer      string        `json:"answer"`
	UsedContext bool          `json:"used_context"`
	Sources     []SourceChunk `json:"sources,omitempty"`
}

// SourceChunk is one retrieved chunk the answer was grounded in.
type SourceChunk struct {
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
}

// handleQA handles POST /v1/qa requests.
func (s *Server) handleQA(c *fiber.Ctx) error {
	if s.pipeline == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "qa is not configured: pipeline is required",
		})
	}

	var req QARequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body",
		})
	}

	answer, err := s.pipeline.Ask(c.Context(), &pipeline.Request{
		Document:  req.Document,
		Text:      req.Text,
		Question:  req.Question,
		SessionID: req.SessionID,
	})
	if err != nil {
		return s.pipelineError(c, err)
	}

	return c.JSON(QAResponse{
		Answer:      answer.Text,
		UsedContext: answer.UsedContext,
		Sources:     sourceChunks(answer.Sources),
	})
}

// pipelineError maps the pipeline's error taxonomy onto HTTP statuses.
// Input problems are the caller's fault; everything else is ours.
func (s *Server) pipelineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrNoInput):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, document.ErrNoText):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("pipeline request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal error",
		})
	}
}

func sourceChunks(chunks []retriever.ScoredChunk) []SourceChunk {
	if len(chunks) == 0 {
		return nil
	}
	out := make([]SourceChunk, len(chunks))
	for i, ch := range chunks {
		out[i] = SourceChunk{
			ChunkIndex: ch.ChunkIndex,
			Text:       ch.Text,
			Score:      ch.Score,
		}
	}
	return out
}
