package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/fx"

	jobs_worker "github.com/init-pkg/soupis-parser/internal/workers/jobs"
)

func workersOptions() fx.Option {
	return fx.Options(
		fx.Provide(jobs_worker.New),
		fx.Invoke(runJobsConsumer),
	)
}

func runJobsConsumer(lc fx.Lifecycle, consumer *jobs_worker.Consumer, log *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("parse-job consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
