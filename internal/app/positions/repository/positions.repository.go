package positions_repository

import (
	"log/slog"
	"time"

	"github.com/init-pkg/nova/errs"
	nova_ctx "github.com/init-pkg/nova/shared/ctx"
	"gorm.io/gorm"

	"github.com/init-pkg/soupis-parser/domain/app"
)

type ParseRun struct {
	ID        uint64 `gorm:"primaryKey"`
	Filename  string
	Checksum  string `gorm:"size:64;index"`
	Stavba    string
	Objekt    string
	Soupis    string
	Source    string
	CreatedAt time.Time
	Positions []PositionRow `gorm:"foreignKey:ParseRunID"`
}

func (ParseRun) TableName() string { return "parse_runs" }

type PositionRow struct {
	ID            uint64 `gorm:"primaryKey"`
	ParseRunID    uint64 `gorm:"index"`
	PartName      string
	ItemName      string
	Subtype       string
	Unit          string
	Qty           float64
	ConcreteM3    *float64
	OtskpCode     string
	ConcreteGrade string
	Source        string
}

func (PositionRow) TableName() string { return "positions" }

type PositionRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

var _ app.PositionRepository = &PositionRepository{}

func New(db *gorm.DB, log *slog.Logger) *PositionRepository {
	return &PositionRepository{db, log}
}

// SaveRound persists one resolution round — the run header and all its
// positions — in a single transaction.
func (this *PositionRepository) SaveRound(ctx nova_ctx.Ctx, filename string, checksum string, res *app.ResolutionResult) errs.Error {
	run := ParseRun{
		Filename:  filename,
		Checksum:  checksum,
		Stavba:    res.Metadata.Stavba,
		Objekt:    res.Metadata.Objekt,
		Soupis:    res.Metadata.Soupis,
		Source:    res.Source.String(),
		Positions: make([]PositionRow, 0, len(res.Positions)),
	}
	for _, p := range res.Positions {
		run.Positions = append(run.Positions, PositionRow{
			PartName:      p.PartName,
			ItemName:      p.ItemName,
			Subtype:       p.Subtype.String(),
			Unit:          p.Unit,
			Qty:           p.Qty,
			ConcreteM3:    p.ConcreteM3,
			OtskpCode:     p.OtskpCode,
			ConcreteGrade: p.ConcreteGrade,
			Source:        p.Source.String(),
		})
	}

	e := this.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&run).Error
	})
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	this.log.Info("resolution round persisted",
		"run_id", run.ID,
		"file", filename,
		"positions", len(run.Positions))
	return nil
}
