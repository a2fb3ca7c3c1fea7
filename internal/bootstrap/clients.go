package bootstrap

import (
	"go.uber.org/fx"

	"github.com/init-pkg/soupis-parser/domain/app"
	callback_client "github.com/init-pkg/soupis-parser/internal/clients/callback"
	classifier_client "github.com/init-pkg/soupis-parser/internal/clients/classifier"
	db_client "github.com/init-pkg/soupis-parser/internal/clients/db"
	openai_client "github.com/init-pkg/soupis-parser/internal/clients/openai"
	opensearch_client "github.com/init-pkg/soupis-parser/internal/clients/opensearch"
	redisdb_client "github.com/init-pkg/soupis-parser/internal/clients/redisdb"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			openai_client.New,
			opensearch_client.New,
			redisdb_client.New,
			db_client.New,
			callback_client.New,
			fx.Annotate(classifier_client.New, fx.As(new(app.ClassifierClient))),
		),
	)
}
