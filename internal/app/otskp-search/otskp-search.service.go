package otskp_search_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// Suggestion is one OTSKP catalog entry matched against a position
// description.
type Suggestion struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Service suggests OTSKP codes for positions the pipeline extracted without
// one: it embeds the description and runs a kNN search over the seeded
// catalog index. Runs outside the resolution round only.
type Service struct {
	openaiClient     *openai.Client
	opensearchClient *opensearchapi.Client
	index            string
	embeddingModel   string
}

func New(
	openaiClient *openai.Client,
	opensearchClient *opensearchapi.Client,
) *Service {
	return &Service{
		openaiClient:     openaiClient,
		opensearchClient: opensearchClient,
		index:            "otskp-catalog",
		embeddingModel:   openai.EmbeddingModelTextEmbedding3Small,
	}
}

func (this *Service) generateEmbedding(ctx context.Context, text string) ([]float64, error) {
	response, err := this.openaiClient.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: this.embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(response.Data) == 0 {
		return nil, errors.New("no embedding data received")
	}
	return response.Data[0].Embedding, nil
}

func (s *Service) searchIndex(ctx context.Context, embedding []float64, k int, minScore float64) ([]Suggestion, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"knn": map[string]interface{}{
				"embedding": map[string]interface{}{
					"vector": embedding,
					"k":      k,
				},
			},
		},
		"size":      k,
		"_source":   []string{"code", "name"},
		"min_score": minScore,
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	searchResp, err := s.opensearchClient.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{s.index},
		Body:    strings.NewReader(string(queryJSON)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search index %s: %w", s.index, err)
	}

	var results []Suggestion
	for _, hit := range searchResp.Hits.Hits {
		var source struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(hit.Source, &source); err != nil {
			continue
		}
		results = append(results, Suggestion{
			Code:       source.Code,
			Name:       source.Name,
			Confidence: float64(hit.Score),
		})
	}

	return results, nil
}

// SuggestCode returns the best catalog match for a position description.
func (s *Service) SuggestCode(ctx context.Context, description string) (*Suggestion, error) {
	results, err := s.SuggestCodes(ctx, description, 5)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no matching OTSKP code found for '%s'", description)
	}
	return &results[0], nil
}

// SuggestCodes returns up to limit catalog matches for a description.
func (s *Service) SuggestCodes(ctx context.Context, description string, limit int) ([]Suggestion, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("description cannot be empty")
	}

	embedding, err := s.generateEmbedding(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding for '%s': %w", description, err)
	}

	results, err := s.searchIndex(ctx, embedding, limit, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog for '%s': %w", description, err)
	}

	return results, nil
}

// GetConfidenceLevel buckets the raw kNN score for UI consumption.
func (r *Suggestion) GetConfidenceLevel() string {
	switch {
	case r.Confidence >= 0.9:
		return "very_high"
	case r.Confidence >= 0.8:
		return "high"
	case r.Confidence >= 0.7:
		return "medium"
	case r.Confidence >= 0.5:
		return "low"
	default:
		return "very_low"
	}
}
