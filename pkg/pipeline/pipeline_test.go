package pipeline_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/document"
	"github.com/ledgerlens/ledgerlens/pkg/llm"
	"github.com/ledgerlens/ledgerlens/pkg/memory"
	"github.com/ledgerlens/ledgerlens/pkg/pipeline"
	"github.com/ledgerlens/ledgerlens/pkg/prompt"
	"github.com/ledgerlens/ledgerlens/pkg/storage/inmemory"
	testutils "github.com/ledgerlens/ledgerlens/pkg/utils/test"
	"github.com/ledgerlens/ledgerlens/pkg/vector"
	"github.com/ledgerlens/ledgerlens/pkg/vector/flat"
	"github.com/ledgerlens/ledgerlens/pkg/worker"
)

const invoiceText = "Invoice total: $500. Payment due in 30 days."

func newTestPipeline(generator llm.Generator, threshold float32) *pipeline.Pipeline {
	p, err := pipeline.New(&pipeline.Config{
		Embedder:  testutils.NewHashEmbedder(),
		Generator: generator,
		NewIndex: func() (vector.Driver, error) {
			return flat.NewDriver(flat.Config{})
		},
		Memory:    memory.NewStore(memory.DefaultCapacity),
		ChunkSize: 30,
		Threshold: threshold,
		Logger:    zap.NewNop(),
	})
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Pipeline", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Ask", func() {
		It("answers the invoice question from the relevant chunk", func() {
			generator := testutils.NewMockGenerator("The total is $500.")
			p := newTestPipeline(generator, 0.3)

			answer, err := p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "What is the total?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(answer.Text).To(ContainSubstring("500"))
			Expect(answer.UsedContext).To(BeTrue())
			Expect(answer.Sources).NotTo(BeEmpty())
			Expect(answer.Sources[0].Text).To(ContainSubstring("$500"))

			Expect(generator.Prompts).To(HaveLen(1))
			Expect(generator.Prompts[0]).To(ContainSubstring("Invoice total: $500."))
			Expect(generator.Prompts[0]).To(ContainSubstring("User: What is the total?"))
		})

		It("renders the no-context branch when nothing clears the threshold", func() {
			generator := testutils.NewMockGenerator("I don't know.")
			p := newTestPipeline(generator, 1.1)

			answer, err := p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "What is the total?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(answer.UsedContext).To(BeFalse())
			Expect(answer.Sources).To(BeEmpty())
			Expect(generator.Prompts[0]).To(ContainSubstring(prompt.NoContextLine))
			Expect(generator.Prompts[0]).NotTo(ContainSubstring("Invoice total"))
		})

		It("carries earlier exchanges of the session into the prompt", func() {
			generator := testutils.NewMockGenerator("Payment is due in 30 days.")
			p := newTestPipeline(generator, 0.3)

			_, err := p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "What is the total?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "When is payment due?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(generator.Prompts).To(HaveLen(2))
			Expect(generator.Prompts[1]).To(ContainSubstring("User: What is the total?"))
			Expect(generator.Prompts[1]).To(ContainSubstring("AI: Payment is due in 30 days."))
		})

		It("isolates memory between sessions", func() {
			generator := testutils.NewMockGenerator("answer")
			p := newTestPipeline(generator, 0.3)

			_, err := p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "What is the total?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "When is payment due?",
				SessionID: "s2",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(generator.Prompts[1]).NotTo(ContainSubstring("What is the total?"))
		})

		It("recovers generation failures into an inline diagnostic", func() {
			generator := testutils.NewMockGenerator("")
			generator.FailWith = llm.ErrGeneration
			p := newTestPipeline(generator, 0.3)

			answer, err := p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "What is the total?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(answer.Text).To(ContainSubstring("[generation error]"))
		})

		Context("with no usable input", func() {
			It("returns ErrNoInput without invoking the generator", func() {
				generator := testutils.NewMockGenerator("never")
				p := newTestPipeline(generator, 0.3)

				_, err := p.Ask(ctx, &pipeline.Request{Question: "What is the total?"})
				Expect(errors.Is(err, pipeline.ErrNoInput)).To(BeTrue())
				Expect(generator.Prompts).To(BeEmpty())
			})

			It("returns ErrNoInput when the question is missing", func() {
				generator := testutils.NewMockGenerator("never")
				p := newTestPipeline(generator, 0.3)

				_, err := p.Ask(ctx, &pipeline.Request{Text: invoiceText})
				Expect(errors.Is(err, pipeline.ErrNoInput)).To(BeTrue())
				Expect(generator.Prompts).To(BeEmpty())
			})

			It("returns ErrNoText for whitespace-only text", func() {
				generator := testutils.NewMockGenerator("never")
				p := newTestPipeline(generator, 0.3)

				_, err := p.Ask(ctx, &pipeline.Request{
					Text:     "   \n\t  ",
					Question: "What is the total?",
				})
				Expect(errors.Is(err, document.ErrNoText)).To(BeTrue())
				Expect(generator.Prompts).To(BeEmpty())
			})
		})
	})

	Describe("Summarize", func() {
		It("summarizes with the variant's template and retrieval query", func() {
			generator := testutils.NewMockGenerator("- Revenue was $500.")
			p := newTestPipeline(generator, 0.5)

			answer, err := p.Summarize(ctx, &pipeline.Request{
				Text:    invoiceText,
				Variant: prompt.VariantShort,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(answer.Text).To(Equal("- Revenue was $500."))
			Expect(generator.Prompts).To(HaveLen(1))
			Expect(generator.Prompts[0]).To(ContainSubstring("executive-style summary"))
		})

		It("splits oversized prompts and concatenates part outputs", func() {
			generator := testutils.NewMockGenerator("part.")
			p, err := pipeline.New(&pipeline.Config{
				Embedder:  testutils.NewHashEmbedder(),
				Generator: generator,
				NewIndex: func() (vector.Driver, error) {
					return flat.NewDriver(flat.Config{})
				},
				MaxPromptLen: 200,
				Logger:       zap.NewNop(),
			})
			Expect(err).NotTo(HaveOccurred())

			answer, err := p.Summarize(ctx, &pipeline.Request{
				Text:    invoiceText,
				Variant: prompt.VariantShort,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(len(generator.Prompts)).To(BeNumerically(">", 1))
			Expect(answer.Text).To(Equal(repeatString("part.", len(generator.Prompts))))
		})

		It("returns ErrNoInput for an empty request", func() {
			generator := testutils.NewMockGenerator("never")
			p := newTestPipeline(generator, 0.5)

			_, err := p.Summarize(ctx, &pipeline.Request{Variant: prompt.VariantShort})
			Expect(errors.Is(err, pipeline.ErrNoInput)).To(BeTrue())
			Expect(generator.Prompts).To(BeEmpty())
		})
	})

	Describe("Archiving", func() {
		It("records answered questions through the worker pool", func() {
			driver := inmemory.NewInMemoryDriver()
			pool, err := worker.NewPool(&worker.Config{
				Driver: driver,
				Logger: zap.NewNop(),
			})
			Expect(err).NotTo(HaveOccurred())

			generator := testutils.NewMockGenerator("The total is $500.")
			p, err := pipeline.New(&pipeline.Config{
				Embedder:  testutils.NewHashEmbedder(),
				Generator: generator,
				NewIndex: func() (vector.Driver, error) {
					return flat.NewDriver(flat.Config{})
				},
				Pool:      pool,
				ChunkSize: 30,
				Threshold: 0.3,
				Logger:    zap.NewNop(),
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = p.Ask(ctx, &pipeline.Request{
				Text:      invoiceText,
				Question:  "What is the total?",
				SessionID: "s1",
			})
			Expect(err).NotTo(HaveOccurred())

			pool.Close()

			records, err := driver.Recent(ctx, "s1", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Task).To(Equal(string(prompt.TaskQA)))
			Expect(records[0].Query).To(Equal("What is the total?"))
			Expect(records[0].Answer).To(Equal("The total is $500."))
			Expect(records[0].Context).To(ContainSubstring("$500"))
		})
	})
})

func repeatString(s string, n int) string {
	out := ""
	for range n {
		out += s
	}
	return out
}
