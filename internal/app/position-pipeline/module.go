package position_pipeline_module

import (
	"go.uber.org/fx"

	"github.com/init-pkg/soupis-parser/domain/app"
	position_pipeline_service "github.com/init-pkg/soupis-parser/internal/app/position-pipeline/service"
	soupis_http_handler "github.com/init-pkg/soupis-parser/internal/app/position-pipeline/transports/http"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(position_pipeline_service.New, fx.As(new(app.SoupisPipelineService))),
			soupis_http_handler.New,
		),
	)
}
