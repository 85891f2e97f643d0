// Package pipeline orchestrates the full retrieval flow: extract text from
// the input document, chunk and embed it, build a session-scoped vector
// index, retrieve the chunks relevant to the query, assemble the prompt with
// conversation memory, and generate the answer.
//
// The pipeline owns the error taxonomy. Input problems surface as ErrNoInput
// or document.ErrNoText before any model is invoked; generation failures are
// recovered inline into the returned answer so the caller always gets
// something; archiving happens fire-and-forget through the worker pool and
// can never fail a response.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/chunker"
	"github.com/ledgerlens/ledgerlens/pkg/document"
	"github.com/ledgerlens/ledgerlens/pkg/embeddings"
	"github.com/ledgerlens/ledgerlens/pkg/llm"
	"github.com/ledgerlens/ledgerlens/pkg/memory"
	"github.com/ledgerlens/ledgerlens/pkg/prompt"
	"github.com/ledgerlens/ledgerlens/pkg/retriever"
	"github.com/ledgerlens/ledgerlens/pkg/storage"
	"github.com/ledgerlens/ledgerlens/pkg/vector"
	"github.com/ledgerlens/ledgerlens/pkg/worker"
)

// DefaultGenerateTimeout bounds a single generation call.
const DefaultGenerateTimeout = 120 * time.Second

// Request is one QA or summarization request. Exactly one of Document or
// Text supplies the source material.
type Request struct {
	// Document is the raw document bytes (PDF).
	Document []byte

	// Text is the source material as plain text.
	Text string

	// Question is the user's question. Required for Ask.
	Question string

	// Variant selects the summary style. Used by Summarize.
	Variant prompt.Variant

	// SessionID groups requests into one conversation.
	SessionID string
}

// Answer is the produced response.
type Answer struct {
	// Text is the generated answer. Generation failures are reported here
	// as an inline diagnostic rather than an error.
	Text string

	// UsedContext reports whether any retrieved chunk cleared the
	// relevance threshold.
	UsedContext bool

	// Sources are the chunks the answer was grounded in, most relevant
	// first.
	Sources []retriever.ScoredChunk
}

// Config is the configuration options for the pipeline.
type Config struct {
	// Embedder converts text to vectors. Required.
	Embedder embeddings.Embedder

	// Generator produces answers. Required.
	Generator llm.Generator

	// NewIndex creates a fresh, session-scoped vector index per request.
	// Required. The pipeline closes each index when the request ends.
	NewIndex func() (vector.Driver, error)

	// Memory hands out per-session conversation buffers. Required for Ask.
	Memory *memory.Store

	// Pool archives answered requests asynchronously. Optional.
	Pool *worker.Pool

	// ChunkSize is the soft chunk size limit (defaults to chunker.DefaultChunkSize).
	ChunkSize int

	// TopK is the number of QA retrieval candidates (defaults to retriever.DefaultTopK).
	TopK int

	// Threshold is the QA relevance threshold (defaults to retriever.DefaultThreshold).
	Threshold float32

	// GenerateTimeout bounds each generation call (defaults to DefaultGenerateTimeout).
	GenerateTimeout time.Duration

	// MaxPromptLen splits oversized summary prompts (defaults to prompt.DefaultMaxPromptLen).
	MaxPromptLen int

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pipeline answers questions and produces summaries over ad-hoc documents.
type Pipeline struct {
	embedder  embeddings.Embedder
	generator llm.Generator
	newIndex  func() (vector.Driver, error)
	memory    *memory.Store
	pool      *worker.Pool
	chunker   *chunker.Chunker
	pdf       *document.PDF
	plain     *document.PlainText

	topK            int
	threshold       float32
	generateTimeout time.Duration
	maxPromptLen    int

	logger *zap.Logger
}

// New creates a pipeline from the config, applying defaults.
func New(c *Config) (*Pipeline, error) {
	if c.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if c.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if c.NewIndex == nil {
		return nil, fmt.Errorf("index factory is required")
	}

	topK := c.TopK
	if topK <= 0 {
		topK = retriever.DefaultTopK
	}
	threshold := c.Threshold
	if threshold == 0 {
		threshold = retriever.DefaultThreshold
	}
	generateTimeout := c.GenerateTimeout
	if generateTimeout <= 0 {
		generateTimeout = DefaultGenerateTimeout
	}
	maxPromptLen := c.MaxPromptLen
	if maxPromptLen <= 0 {
		maxPromptLen = prompt.DefaultMaxPromptLen
	}
	mem := c.Memory
	if mem == nil {
		mem = memory.NewStore(memory.DefaultCapacity)
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		embedder:        c.Embedder,
		generator:       c.Generator,
		newIndex:        c.NewIndex,
		memory:          mem,
		pool:            c.Pool,
		chunker:         chunker.New(c.ChunkSize),
		pdf:             document.NewPDF(),
		plain:           document.NewPlainText(),
		topK:            topK,
		threshold:       threshold,
		generateTimeout: generateTimeout,
		maxPromptLen:    maxPromptLen,
		logger:          logger,
	}, nil
}

// Ask answers a question against the request's document, using the
// session's conversation memory for follow-ups.
func (p *Pipeline) Ask(ctx context.Context, req *Request) (*Answer, error) {
	if req.Question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrNoInput)
	}

	index, chunks, err := p.buildIndex(ctx, req)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	r := retriever.New(p.embedder, p.logger)
	result, err := r.Retrieve(ctx, index, req.Question, p.topK, p.threshold)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	buffer := p.memory.Session(req.SessionID)

	assembled, err := prompt.AssembleQA(chunkTexts(result.Chunks), buffer.Render(), req.Question)
	if err != nil {
		return nil, err
	}

	answerText := p.generate(ctx, assembled)
	buffer.Append(req.Question, answerText)

	p.archive(&storage.Record{
		SessionID: req.SessionID,
		Task:      string(prompt.TaskQA),
		Query:     req.Question,
		Context:   prompt.JoinChunks(chunkTexts(result.Chunks)),
		Answer:    answerText,
	}, result.UseContext)

	p.logger.Info("question answered",
		zap.String("session_id", req.SessionID),
		zap.Int("chunks_indexed", len(chunks)),
		zap.Int("chunks_used", len(result.Chunks)),
		zap.Bool("used_context", result.UseContext),
	)

	return &Answer{
		Text:        answerText,
		UsedContext: result.UseContext,
		Sources:     result.Chunks,
	}, nil
}

// Summarize produces a summary of the request's document in the style of
// the request's variant.
func (p *Pipeline) Summarize(ctx context.Context, req *Request) (*Answer, error) {
	index, chunks, err := p.buildIndex(ctx, req)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	// Summaries keep every retrieved candidate; the variant's retrieval
	// query steers which part of the document surfaces, not whether it does.
	r := retriever.New(p.embedder, p.logger)
	result, err := r.Retrieve(ctx, index, req.Variant.RetrievalQuery(), req.Variant.TopK(), 0)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	assembled, err := prompt.AssembleSummary(req.Variant, chunkTexts(result.Chunks))
	if err != nil {
		return nil, err
	}

	var answerText string
	for _, part := range prompt.Split(assembled, p.maxPromptLen) {
		answerText += p.generate(ctx, part)
	}

	p.archive(&storage.Record{
		SessionID: req.SessionID,
		Task:      string(prompt.TaskSummarize),
		Query:     req.Variant.RetrievalQuery(),
		Context:   prompt.JoinChunks(chunkTexts(result.Chunks)),
		Answer:    answerText,
	}, result.UseContext)

	p.logger.Info("summary produced",
		zap.String("variant", string(req.Variant)),
		zap.Int("chunks_indexed", len(chunks)),
		zap.Int("chunks_used", len(result.Chunks)),
	)

	return &Answer{
		Text:        answerText,
		UsedContext: result.UseContext,
		Sources:     result.Chunks,
	}, nil
}

// buildIndex extracts and normalizes the request's text, chunks it, embeds
// each chunk, and loads a fresh session-scoped index. The caller owns the
// returned index and must close it.
func (p *Pipeline) buildIndex(ctx context.Context, req *Request) (vector.Driver, []chunker.Chunk, error) {
	text, err := p.extract(req)
	if err != nil {
		return nil, nil, err
	}

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, nil, document.ErrNoText
	}

	vectors, err := embeddings.EmbedAll(ctx, p.embedder, chunker.Texts(chunks))
	if err != nil {
		return nil, nil, fmt.Errorf("embedding chunks: %w", err)
	}

	index, err := p.newIndex()
	if err != nil {
		return nil, nil, fmt.Errorf("creating index: %w", err)
	}

	docs := make([]vector.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = vector.Document{
			ID:         fmt.Sprintf("chunk-%d", c.Index),
			ChunkIndex: c.Index,
			Text:       c.Text,
			Embedding:  vectors[i],
		}
	}

	if err := index.Add(ctx, docs); err != nil {
		index.Close()
		return nil, nil, fmt.Errorf("indexing chunks: %w", err)
	}

	return index, chunks, nil
}

// extract returns normalized text from whichever input the request carries.
func (p *Pipeline) extract(req *Request) (string, error) {
	switch {
	case len(req.Document) > 0:
		text, err := p.pdf.ExtractText(req.Document)
		if err != nil {
			return "", err
		}
		return document.Normalize(text), nil
	case req.Text != "":
		return p.plain.ExtractText([]byte(req.Text))
	default:
		return "", ErrNoInput
	}
}

// generate calls the generator under the configured timeout. Failures are
// recovered into an inline diagnostic so the caller always gets an answer.
func (p *Pipeline) generate(ctx context.Context, assembled string) string {
	genCtx, cancel := context.WithTimeout(ctx, p.generateTimeout)
	defer cancel()

	answer, err := p.generator.Generate(genCtx, assembled)
	if err != nil {
		p.logger.Error("generation failed", zap.Error(err))
		return fmt.Sprintf("[generation error] %v", err)
	}
	return answer
}

// archive hands the record to the worker pool, if one is configured.
func (p *Pipeline) archive(record *storage.Record, usedContext bool) {
	if p.pool == nil {
		return
	}
	p.pool.Enqueue(worker.Job{Record: record, UsedContext: usedContext})
}

func chunkTexts(chunks []retriever.ScoredChunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts
}
