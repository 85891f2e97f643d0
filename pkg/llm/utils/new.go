// Package llmutils is the generation utility package
package llmutils

import (
	"fmt"

	"github.com/ledgerlens/ledgerlens/pkg/llm"
	"github.com/ledgerlens/ledgerlens/pkg/llm/ollama"
	"github.com/ledgerlens/ledgerlens/pkg/llm/openai"
)

type NewGeneratorOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	APIKey       string
	Temperature  float32
	MaxTokens    int
}

func NewGenerator(o *NewGeneratorOpts) (llm.Generator, error) {
	switch o.ProviderType {
	case "ollama":
		return ollama.NewGenerator(ollama.Config{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	case "openai":
		return openai.NewGenerator(openai.Config{
			APIKey:      o.APIKey,
			BaseURL:     o.TargetURL,
			Model:       o.Model,
			Temperature: o.Temperature,
			MaxTokens:   o.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", o.ProviderType)
	}
}
