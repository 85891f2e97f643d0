package prompt_test

import (
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerlens/ledgerlens/pkg/prompt"
)

var _ = Describe("AssembleQA", func() {
	It("joins chunks with blank lines and appends the query", func() {
		out, err := prompt.AssembleQA(
			[]string{"chunk one", "chunk two"},
			"User: hi\nAI: hello",
			"What was revenue?",
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(out).To(ContainSubstring("chunk one\n\nchunk two"))
		Expect(out).To(ContainSubstring("User: hi\nAI: hello"))
		Expect(out).To(HaveSuffix("User: What was revenue?\nAI:"))
	})

	It("renders the no-context line when no chunks were retrieved", func() {
		out, err := prompt.AssembleQA(nil, "", "What was revenue?")
		Expect(err).NotTo(HaveOccurred())

		Expect(out).To(ContainSubstring(prompt.NoContextLine))
	})

	It("is byte-deterministic", func() {
		chunks := []string{"a", "b"}
		first, err := prompt.AssembleQA(chunks, "memory", "q")
		Expect(err).NotTo(HaveOccurred())

		second, err := prompt.AssembleQA(chunks, "memory", "q")
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})
})

var _ = Describe("AssembleSummary", func() {
	It("injects the context into the variant's template", func() {
		out, err := prompt.AssembleSummary(prompt.VariantShort, []string{"revenue rose"})
		Expect(err).NotTo(HaveOccurred())

		Expect(out).To(ContainSubstring("executive-style summary"))
		Expect(out).To(ContainSubstring("revenue rose"))
	})

	It("uses a distinct template per variant", func() {
		variants := []prompt.Variant{
			prompt.VariantShort,
			prompt.VariantDetailed,
			prompt.VariantFinancialOnly,
			prompt.VariantRiskOnly,
		}

		seen := map[string]bool{}
		for _, v := range variants {
			out, err := prompt.AssembleSummary(v, []string{"ctx"})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen[out]).To(BeFalse(), "variant %s reused another variant's template", v)
			seen[out] = true
		}
	})

	It("falls back to the detailed template for unknown variants", func() {
		unknown, err := prompt.AssembleSummary(prompt.Variant("bogus"), []string{"ctx"})
		Expect(err).NotTo(HaveOccurred())

		detailed, err := prompt.AssembleSummary(prompt.VariantDetailed, []string{"ctx"})
		Expect(err).NotTo(HaveOccurred())
		Expect(unknown).To(Equal(detailed))
	})
})

var _ = Describe("ParseVariant", func() {
	It("accepts the four summary variants", func() {
		for _, s := range []string{"short", "detailed", "financial_only", "risk_only"} {
			v, err := prompt.ParseVariant(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(v)).To(Equal(s))
		}
	})

	It("rejects anything else", func() {
		_, err := prompt.ParseVariant("medium")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Variant", func() {
	It("retrieves wide for detailed and narrow otherwise", func() {
		Expect(prompt.VariantDetailed.TopK()).To(Equal(60))
		Expect(prompt.VariantShort.TopK()).To(Equal(5))
		Expect(prompt.VariantFinancialOnly.TopK()).To(Equal(5))
		Expect(prompt.VariantRiskOnly.TopK()).To(Equal(5))
	})

	It("maps each variant to its retrieval query", func() {
		Expect(prompt.VariantShort.RetrievalQuery()).To(Equal("summary of company performance"))
		Expect(prompt.VariantDetailed.RetrievalQuery()).To(Equal("company financials and risks"))
		Expect(prompt.VariantFinancialOnly.RetrievalQuery()).To(Equal("financial statements overview"))
		Expect(prompt.VariantRiskOnly.RetrievalQuery()).To(Equal("risk factors and challenges"))
	})
})

var _ = Describe("Split", func() {
	It("returns a single part for prompts within the limit", func() {
		Expect(prompt.Split("short prompt", 100)).To(Equal([]string{"short prompt"}))
	})

	It("splits into ordered parts that reassemble losslessly", func() {
		text := strings.Repeat("abcdefghij", 100)

		parts := prompt.Split(text, 333)
		Expect(len(parts)).To(BeNumerically(">", 1))
		for _, p := range parts[:len(parts)-1] {
			Expect(len(p)).To(Equal(333))
		}
		Expect(strings.Join(parts, "")).To(Equal(text))
	})

	It("never tears a multi-byte rune across parts", func() {
		text := strings.Repeat("é", 10) // 2 bytes each

		parts := prompt.Split(text, 3)
		for _, p := range parts {
			Expect(utf8.ValidString(p)).To(BeTrue())
		}
		Expect(strings.Join(parts, "")).To(Equal(text))
	})

	It("emits a rune wider than maxLen whole", func() {
		parts := prompt.Split("€", 1) // 3 bytes
		Expect(parts).To(Equal([]string{"€"}))
	})

	It("treats non-positive maxLen as the default", func() {
		text := strings.Repeat("x", prompt.DefaultMaxPromptLen+1)

		parts := prompt.Split(text, 0)
		Expect(parts).To(HaveLen(2))
		Expect(len(parts[0])).To(Equal(prompt.DefaultMaxPromptLen))
	})
})
