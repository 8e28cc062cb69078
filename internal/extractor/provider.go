package extractor

import (
	"fmt"
	"strings"
)

// Provider names accepted by NewGenerator.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewGenerator builds the generator for a provider name. It returns
// ErrMissingAPIKey when apiKey is empty.
func NewGenerator(provider, apiKey, model string) (Generator, error) {
	switch strings.ToLower(provider) {
	case "", ProviderGemini:
		g, err := NewGeminiGenerator(apiKey, model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOpenAI:
		g, err := NewOpenAIGenerator(apiKey, model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown extraction provider %q", provider)
	}
}
