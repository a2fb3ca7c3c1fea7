package db_client

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/init-pkg/soupis-parser/internal/config"
)

func New(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.Infrastructure.Db.Dsn), &gorm.Config{})
}
