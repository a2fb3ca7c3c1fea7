package bootstrap

import (
	"log/slog"
	"os"
	"strings"

	nova_config_loader "github.com/init-pkg/nova/tools/config-loader"
	"go.uber.org/fx"

	"github.com/init-pkg/soupis-parser/internal/config"
)

func coreOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			newConfig,
			newLogger,
		),
	)
}

func newConfig() *config.Config {
	cfg := nova_config_loader.MustLoad[config.Config]()
	return &cfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.App.LogLevel)}

	var handler slog.Handler
	if strings.ToLower(cfg.App.LogFormat) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
