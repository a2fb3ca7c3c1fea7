package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	soupis_http_handler "github.com/init-pkg/soupis-parser/internal/app/position-pipeline/transports/http"
	"github.com/init-pkg/soupis-parser/internal/config"
)

func serverOptions() fx.Option {
	return fx.Options(
		fx.Provide(newFiberApp),
		fx.Invoke(registerHandlers),
		fx.Invoke(runServer),
	)
}

func newFiberApp(cfg *config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
}

func registerHandlers(app *fiber.App, soupisHandler *soupis_http_handler.SoupisHttpHandler) {
	soupisHandler.Register(app)
}

func runServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *slog.Logger) {
	addr := fmt.Sprintf(":%d", cfg.App.Port)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(addr); err != nil {
					log.Error("http server stopped", "error", err)
				}
			}()
			log.Info("http server listening", "addr", addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
