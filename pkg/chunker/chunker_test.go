package chunker_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerlens/ledgerlens/pkg/chunker"
	"github.com/ledgerlens/ledgerlens/pkg/document"
)

var _ = Describe("Chunker", func() {
	It("returns an empty slice for empty input", func() {
		Expect(chunker.New(100).Chunk("")).To(BeEmpty())
	})

	It("returns an empty slice for whitespace-only input", func() {
		Expect(chunker.New(100).Chunk("  \n\t ")).To(BeEmpty())
	})

	It("keeps a short document as a single chunk", func() {
		chunks := chunker.New(500).Chunk("Revenue grew 12%. Margins held steady.")
		Expect(chunks).To(HaveLen(1))
		Expect(chunks[0].Index).To(Equal(0))
		Expect(chunks[0].Text).To(Equal("Revenue grew 12%. Margins held steady."))
	})

	It("starts a new chunk when the size limit would be exceeded", func() {
		chunks := chunker.New(30).Chunk("First sentence here. Second sentence here. Third sentence here.")
		Expect(len(chunks)).To(BeNumerically(">", 1))
		for _, ch := range chunks {
			Expect(strings.TrimSpace(ch.Text)).NotTo(BeEmpty())
		}
	})

	It("never splits mid-sentence", func() {
		text := "Alpha beta gamma delta. Epsilon zeta eta theta."
		for _, ch := range chunker.New(25).Chunk(text) {
			Expect(strings.HasSuffix(ch.Text, ".")).To(BeTrue())
		}
	})

	It("emits an oversized sentence as its own chunk without truncation", func() {
		long := "This single sentence is far longer than the configured chunk size limit and must survive intact."
		chunks := chunker.New(20).Chunk(long)
		Expect(chunks).To(HaveLen(1))
		Expect(chunks[0].Text).To(Equal(long))
	})

	It("handles text without any sentence terminator", func() {
		chunks := chunker.New(100).Chunk("a bare fragment with no terminator")
		Expect(chunks).To(HaveLen(1))
		Expect(chunks[0].Text).To(Equal("a bare fragment with no terminator"))
	})

	It("assigns consecutive indexes starting at zero", func() {
		chunks := chunker.New(20).Chunk("One one one. Two two two. Three three three. Four four four.")
		for i, ch := range chunks {
			Expect(ch.Index).To(Equal(i))
		}
	})

	It("is deterministic for identical input", func() {
		text := "Cash flow improved. Debt was reduced. Dividends were paid. Guidance was raised."
		Expect(chunker.New(40).Chunk(text)).To(Equal(chunker.New(40).Chunk(text)))
	})

	It("keeps multi-character terminators with their sentence", func() {
		chunks := chunker.New(20).Chunk("Revenue grew... Margins held?! Cash flow improved.")
		Expect(chunker.Texts(chunks)).To(Equal([]string{
			"Revenue grew...",
			"Margins held?!",
			"Cash flow improved.",
		}))
	})

	It("reassembles losslessly modulo boundary whitespace", func() {
		raw := "Invoice total:   $500. Payment due in 30 days.\nLate fees apply after that. Contact billing with questions."
		normalized := document.Normalize(raw)

		chunks := chunker.New(40).Chunk(normalized)
		reassembled := document.Normalize(strings.Join(chunker.Texts(chunks), " "))
		Expect(reassembled).To(Equal(normalized))
	})

	It("reassembles ellipses and stacked terminators losslessly", func() {
		normalized := document.Normalize("Revenue grew... Margins held?! Cash flow improved.")

		chunks := chunker.New(40).Chunk(normalized)
		reassembled := document.Normalize(strings.Join(chunker.Texts(chunks), " "))
		Expect(reassembled).To(Equal(normalized))
	})
})
