package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiProvider produces embeddings through the Gemini embedding API.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
	dimension int
}

// NewGeminiProvider dials the Gemini API. The dimension must match the
// deployed model; vectors of any other length are rejected on arrival.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, dimension int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{client: client, modelName: modelName, dimension: dimension}, nil
}

func (p *GeminiProvider) Dimension() int { return p.dimension }

// EmbedBatch embeds all texts in one API round trip and returns vectors
// in input order.
func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	model := p.client.EmbeddingModel(p.modelName)
	batch := model.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	resp, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, classifyError(err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, &ProviderError{
			Kind: FailureTransient,
			Err:  fmt.Errorf("got %d embeddings for %d texts", len(resp.Embeddings), len(texts)),
		}
	}

	out := make([][]float32, 0, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if len(e.Values) != p.dimension {
			return nil, &ProviderError{
				Kind: FailureModelNotFound,
				Err:  fmt.Errorf("embedding %d has dimension %d, configured %d", i, len(e.Values), p.dimension),
			}
		}
		out = append(out, e.Values)
	}
	return out, nil
}

func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return &ProviderError{Kind: FailureAuth, Err: err}
		case 404:
			return &ProviderError{Kind: FailureModelNotFound, Err: err}
		case 429:
			return &ProviderError{Kind: FailureRateLimited, Err: err}
		case 400:
			msg := strings.ToLower(apiErr.Message)
			if strings.Contains(msg, "token") || strings.Contains(msg, "too long") {
				return &ProviderError{Kind: FailureContextTooLong, Err: err}
			}
			return &ProviderError{Kind: FailureContentFiltered, Err: err}
		}
	}
	return &ProviderError{Kind: FailureTransient, Err: err}
}
