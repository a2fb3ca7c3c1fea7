package main

import (
	"context"
	"fmt"

	nova_config_loader "github.com/init-pkg/nova/tools/config-loader"

	otskp_search_service "github.com/init-pkg/soupis-parser/internal/app/otskp-search"
	openai_client "github.com/init-pkg/soupis-parser/internal/clients/openai"
	opensearch_client "github.com/init-pkg/soupis-parser/internal/clients/opensearch"
	"github.com/init-pkg/soupis-parser/internal/config"
)

// Seeds the OTSKP catalog index used for code suggestions.
func main() {
	var (
		cfg        = nova_config_loader.MustLoad[config.Config]()
		openai     = openai_client.New(&cfg)
		opensearch = opensearch_client.New(&cfg)
		search     = otskp_search_service.New(openai, opensearch)
	)

	ctx := context.Background()
	if err := search.EnsureIndex(ctx); err != nil {
		panic(err)
	}

	catalog := otskp_search_service.BuiltinCatalog()
	if err := search.IndexCatalog(ctx, catalog); err != nil {
		panic(err)
	}

	fmt.Printf("Seeded %d OTSKP catalog entries\n", len(catalog))
}
