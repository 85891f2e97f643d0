// Package prompt assembles generation prompts from retrieved context,
// conversation memory, and the user's query. Assembly is pure string work:
// the same inputs always produce byte-identical output, so prompts can be
// logged, diffed, and replayed.
package prompt

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// Task selects the prompt family.
type Task string

const (
	// TaskQA answers a question against retrieved context and memory.
	TaskQA Task = "qa"

	// TaskSummarize produces a structured summary of retrieved context.
	TaskSummarize Task = "summarize"
)

// Variant selects the summarization style.
type Variant string

const (
	// VariantShort is an executive-style bullet summary.
	VariantShort Variant = "short"

	// VariantDetailed is a long-form investor-grade summary.
	VariantDetailed Variant = "detailed"

	// VariantFinancialOnly covers only financial performance.
	VariantFinancialOnly Variant = "financial_only"

	// VariantRiskOnly covers only risk factors.
	VariantRiskOnly Variant = "risk_only"
)

// NoContextLine is rendered in place of document context when retrieval
// found nothing relevant. It is an explicit statement, never an empty
// interpolation, so the generator is told rather than left to guess.
const NoContextLine = "No relevant context found in the provided document."

// DefaultMaxPromptLen is the default maximum prompt length in bytes before
// the prompt is split into parts for multi-call generation.
const DefaultMaxPromptLen = 12000

// retrievalQueries maps each summary variant to the text embedded and used
// to query the index. Summaries have no user question, so the variant
// supplies the retrieval intent.
var retrievalQueries = map[Variant]string{
	VariantShort:         "summary of company performance",
	VariantDetailed:      "company financials and risks",
	VariantFinancialOnly: "financial statements overview",
	VariantRiskOnly:      "risk factors and challenges",
}

// ParseVariant validates a summary variant string.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantShort, VariantDetailed, VariantFinancialOnly, VariantRiskOnly:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported summary variant: %s", s)
	}
}

// RetrievalQuery returns the retrieval query text for a summary variant.
func (v Variant) RetrievalQuery() string {
	if q, ok := retrievalQueries[v]; ok {
		return q
	}
	return "company summary"
}

// TopK returns how many candidate chunks the variant retrieves. The detailed
// variant needs broad coverage of the document; the focused variants work
// from a handful of on-topic chunks.
func (v Variant) TopK() int {
	if v == VariantDetailed {
		return 60
	}
	return 5
}

var qaTemplate = template.Must(template.New("qa").Parse(
	`You are a helpful and knowledgeable financial assistant AI.

Context from document:
{{.Context}}

Previous Conversation:
{{.Memory}}

User: {{.Query}}
AI:`))

var summaryTemplates = map[Variant]*template.Template{
	VariantShort: template.Must(template.New("short").Parse(
		`You are a professional financial analyst. Write a crisp, executive-style summary of the company's annual report that can be read in under a minute.

Format:
- Use 6 to 8 clear bullet points
- Keep it under 500 words
- Avoid technical jargon and long paragraphs

Include:
- Key financial highlights: revenue, profit, cash flow (only if mentioned)
- Key business updates or major developments
- Major risks or challenges
- Future direction or strategic plans (if available)

Do NOT mention missing data or unavailable sections, and do not include tables. Focus only on what is clearly available in the report.

Company Report Excerpts:
{{.Context}}
`)),

	VariantDetailed: template.Must(template.New("detailed").Parse(
		`You are a senior financial analyst. Write a comprehensive, investor-grade summary of the company's annual report.

Structure:
1. Executive Summary
2. Business Overview and Market Position
3. Products, Services, and Revenue Streams
4. Financial Performance and Key Metrics
5. Management Discussion and Analysis
6. Risk Factors and Challenges
7. Strategic Initiatives and Future Outlook
8. Noteworthy Events, Leadership Changes, or Developments

Guidelines:
- Write in well-structured paragraphs, no bullet points
- Maintain a formal, analytical tone
- Avoid unnecessary repetition
- Do NOT mention missing or unavailable data
- No tables; use clear, detailed text descriptions

Use ONLY the extracted report content below.

Extracted Annual Report Content:
{{.Context}}
`)),

	VariantFinancialOnly: template.Must(template.New("financial_only").Parse(
		`You are a professional finance analyst. Write a precise, structured summary focusing strictly on the company's financial performance, based only on the content provided.

Include:
- Revenue and net income figures or trends
- Operating margins and profitability indicators (if available)
- Assets and liabilities overview
- Cash flow breakdown: operating, investing, financing
- Year-over-year comparisons or financial trends (if mentioned)

Avoid business descriptions, risk factors, or strategy discussions, and never mention missing or unavailable data. Present the information in clear, concise paragraphs using plain English.

Extracted Financial Content:
{{.Context}}
`)),

	VariantRiskOnly: template.Must(template.New("risk_only").Parse(
		`You are a risk management analyst. Write a detailed summary focused solely on the risk factors presented in the company's annual report.

Include:
- Strategic, market, legal, environmental, and operational risks
- Risk implications on performance or future strategy
- Any mitigation plans or risk disclosures

Do not include financials or other topics, and do not write that data is missing; use only the content provided.

Extracted Risk-Related Context:
{{.Context}}
`)),
}

// qaData is the input to the QA template.
type qaData struct {
	Context string
	Memory  string
	Query   string
}

// summaryData is the input to the summary templates.
type summaryData struct {
	Context string
}

// JoinChunks renders retrieved chunk texts into a single context block.
func JoinChunks(chunks []string) string {
	return strings.Join(chunks, "\n\n")
}

// AssembleQA builds the QA prompt. An empty chunk list renders the
// NoContextLine in the context slot; memory is injected verbatim.
func AssembleQA(chunks []string, memory, query string) (string, error) {
	contextBlock := NoContextLine
	if len(chunks) > 0 {
		contextBlock = JoinChunks(chunks)
	}

	var sb strings.Builder
	err := qaTemplate.Execute(&sb, qaData{
		Context: contextBlock,
		Memory:  memory,
		Query:   query,
	})
	if err != nil {
		return "", fmt.Errorf("assembling qa prompt: %w", err)
	}
	return sb.String(), nil
}

// AssembleSummary builds the summary prompt for the given variant. Unknown
// variants fall back to the detailed template, mirroring ParseVariant being
// the validation point.
func AssembleSummary(variant Variant, chunks []string) (string, error) {
	tmpl, ok := summaryTemplates[variant]
	if !ok {
		tmpl = summaryTemplates[VariantDetailed]
	}

	var sb strings.Builder
	err := tmpl.Execute(&sb, summaryData{Context: JoinChunks(chunks)})
	if err != nil {
		return "", fmt.Errorf("assembling summary prompt: %w", err)
	}
	return sb.String(), nil
}

// Split slices a prompt into ordered parts of at most maxLen bytes so an
// oversized prompt can be generated over multiple stateless calls. Parts
// break on rune boundaries so no multi-byte character is torn across two
// calls. A non-positive maxLen falls back to DefaultMaxPromptLen.
// Concatenating the parts reproduces the input exactly.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxPromptLen
	}

	if text == "" {
		return []string{""}
	}

	parts := make([]string, 0, (len(text)+maxLen-1)/maxLen)
	for i := 0; i < len(text); {
		end := i + maxLen
		if end >= len(text) {
			end = len(text)
		} else {
			for end > i && !utf8.RuneStart(text[end]) {
				end--
			}
			// A single rune wider than maxLen is emitted whole.
			if end == i {
				_, width := utf8.DecodeRuneInString(text[i:])
				end = i + width
			}
		}
		parts = append(parts, text[i:end])
		i = end
	}
	return parts
}
