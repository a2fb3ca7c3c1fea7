package positions_module

import (
	"go.uber.org/fx"

	"github.com/init-pkg/soupis-parser/domain/app"
	positions_repository "github.com/init-pkg/soupis-parser/internal/app/positions/repository"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(positions_repository.New, fx.As(new(app.PositionRepository))),
		),
		fx.Invoke(positions_repository.RunMigrations),
	)
}
