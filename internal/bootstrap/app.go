package bootstrap

import (
	"go.uber.org/fx"

	otskp_search_service "github.com/init-pkg/soupis-parser/internal/app/otskp-search"
	position_pipeline_module "github.com/init-pkg/soupis-parser/internal/app/position-pipeline"
	positions_module "github.com/init-pkg/soupis-parser/internal/app/positions"
)

func appOptions() fx.Option {
	return fx.Options(
		position_pipeline_module.Register(),
		positions_module.Register(),

		fx.Provide(
			otskp_search_service.New,
		),
	)
}
