package otskp_search_service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// CatalogEntry is one OTSKP catalog row seeded into the search index.
type CatalogEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// builtinCatalog covers the bridge-work items the pipeline most often
// extracts. Deployments seed the full national catalog on top of it.
var builtinCatalog = []CatalogEntry{
	{Code: "272325", Name: "Základy z prostého betonu"},
	{Code: "272365", Name: "Výztuž základů z betonářské oceli"},
	{Code: "317325", Name: "Beton úložných prahů C30/37"},
	{Code: "334325", Name: "Beton pilířů a stativ C30/37"},
	{Code: "421325", Name: "Beton mostovek a monolitických nosníků"},
	{Code: "422361", Name: "Výztuž mostovek z oceli B500B"},
	{Code: "451315", Name: "Podkladní a výplňový beton C16/20"},
	{Code: "457366", Name: "Bednění říms mostních objektů"},
	{Code: "711112", Name: "Izolace proti vodě asfaltovými pásy"},
	{Code: "936124", Name: "Odvodnění mostovky, drenážní žlaby"},
}

func BuiltinCatalog() []CatalogEntry {
	return builtinCatalog
}

const indexMapping = `{
	"settings": {"index": {"knn": true}},
	"mappings": {
		"properties": {
			"code": {"type": "keyword"},
			"name": {"type": "text"},
			"embedding": {"type": "knn_vector", "dimension": 1536}
		}
	}
}`

// EnsureIndex creates the catalog index with its kNN mapping. An
// already-existing index is not an error.
func (s *Service) EnsureIndex(ctx context.Context) error {
	_, err := s.opensearchClient.Indices.Create(ctx, opensearchapi.IndicesCreateReq{
		Index: s.index,
		Body:  strings.NewReader(indexMapping),
	})
	if err != nil && !strings.Contains(err.Error(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	return nil
}

// IndexCatalog embeds and indexes catalog entries one by one. Seed-time
// code path, so per-entry calls are fine.
func (s *Service) IndexCatalog(ctx context.Context, entries []CatalogEntry) error {
	for _, entry := range entries {
		embedding, err := s.generateEmbedding(ctx, entry.Name)
		if err != nil {
			return fmt.Errorf("embed catalog entry %s: %w", entry.Code, err)
		}

		doc, err := json.Marshal(map[string]interface{}{
			"code":      entry.Code,
			"name":      entry.Name,
			"embedding": embedding,
		})
		if err != nil {
			return err
		}

		_, err = s.opensearchClient.Index(ctx, opensearchapi.IndexReq{
			Index:      s.index,
			DocumentID: entry.Code,
			Body:       strings.NewReader(string(doc)),
		})
		if err != nil {
			return fmt.Errorf("index catalog entry %s: %w", entry.Code, err)
		}
	}
	return nil
}
