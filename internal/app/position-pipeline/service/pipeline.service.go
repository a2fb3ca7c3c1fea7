package position_pipeline_service

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/init-pkg/nova/errs"
	nova_ctx "github.com/init-pkg/nova/shared/ctx"

	"github.com/init-pkg/soupis-parser/domain/app"
	"github.com/init-pkg/soupis-parser/internal/config"
)

// ErrNoPositions signals that not even the template floor produced output.
// With intact templates this cannot happen; it surfaces only on a
// configuration or data error.
var ErrNoPositions = errors.New("no positions extracted at any tier")

type PositionPipelineService struct {
	classifier app.ClassifierClient
	cfg        *config.Config
	log        *slog.Logger
}

var _ app.SoupisPipelineService = &PositionPipelineService{}

func New(classifier app.ClassifierClient, cfg *config.Config, log *slog.Logger) *PositionPipelineService {
	return &PositionPipelineService{classifier, cfg, log}
}

// Resolve runs one resolution round: sheet selection, metadata scan, then the
// fallback ladder over the classifier and the local heuristics. For any
// workbook with at least one sheet it returns a non-empty position set.
func (this *PositionPipelineService) Resolve(ctx nova_ctx.Ctx, file []byte, filename string, hints app.FileMetadata) (*app.ResolutionResult, errs.Error) {
	sheets, err := loadWorkbook(file)
	if err != nil {
		return nil, errs.WrapAppError(err, &errs.ErrorOpts{})
	}

	sheet, err := selectSheet(sheets, this.log)
	if err != nil {
		return nil, errs.WrapAppError(err, &errs.ErrorOpts{})
	}

	meta := mergeMetadata(scanMetadata(sheet.Rows, this.cfg.Pipeline.MetadataRows, this.log), hints)
	this.log.Info("resolution round started",
		"file", filename,
		"sheet", sheet.Name,
		"stavba", meta.Stavba,
		"objekt", meta.Objekt)

	res := this.resolve(ctx, file, filename, sheet, meta)
	if len(res.Positions) == 0 {
		return nil, errs.WrapAppError(ErrNoPositions, &errs.ErrorOpts{})
	}

	this.log.Info("resolution round finished",
		"file", filename,
		"source", res.Source,
		"positions", len(res.Positions))
	return res, nil
}

// resolve is the fallback state machine. Each tier's empty output moves to
// the next one; the template tier terminates it unconditionally. The
// classifier is never retried.
func (this *PositionPipelineService) resolve(ctx nova_ctx.Ctx, file []byte, filename string, sheet sheetGrid, meta app.FileMetadata) *app.ResolutionResult {
	partName := meta.Objekt
	if partName == "" {
		partName = sheet.Name
	}

	done := func(source app.Source, positions []app.ExtractedPosition) *app.ResolutionResult {
		return &app.ResolutionResult{Metadata: meta, Source: source, Positions: positions}
	}

	// TRY_CLASSIFIER
	classified, err := this.classifier.Classify(ctx, file, filename, meta)
	if err != nil {
		this.log.Warn("classifier unavailable, falling back to scoped extraction", "error", err)
	} else {
		positions := normalizePositions(corePositions(classified, partName))
		if len(positions) > 0 {
			return done(app.SourceCore, positions)
		}
		this.log.Info("classifier returned no concrete positions, falling back to scoped extraction")
	}

	// TRY_LOCAL_SCOPED
	rows := buildRawRows(sheet)
	positions := normalizePositions(extractScoped(rows, partName, meta.Objekt))
	if len(positions) > 0 {
		return done(app.SourceLocalScoped, positions)
	}
	this.log.Info("scoped extraction empty, falling back to grade search")

	// TRY_LOCAL_GLOBAL
	positions = normalizePositions(searchGrades(sheet.Rows, partName))
	if len(positions) > 0 {
		return done(app.SourceLocalGlobal, positions)
	}
	this.log.Info("grade search empty, falling back to templates")

	// USE_TEMPLATES
	return done(app.SourceTemplate, normalizePositions(templatePositions(partName)))
}

// corePositions keeps the classifier items accepted as concrete work and
// maps them onto the canonical position shape.
func corePositions(classified []app.ClassifiedPosition, partName string) []app.ExtractedPosition {
	var out []app.ExtractedPosition
	for _, c := range classified {
		if !strings.EqualFold(c.MaterialType, "concrete") {
			continue
		}
		out = append(out, app.ExtractedPosition{
			PartName:      partName,
			ItemName:      c.Description,
			Subtype:       subtypeFor(c.Description, ""),
			Qty:           c.Quantity,
			OtskpCode:     c.Code,
			ConcreteGrade: findGrade(c.Description),
			Source:        app.SourceCore,
		})
	}
	return out
}

// mergeMetadata fills scanned gaps with caller-provided hints; scanned values
// win because they come from the document itself.
func mergeMetadata(scanned, hints app.FileMetadata) app.FileMetadata {
	if scanned.Stavba == "" {
		scanned.Stavba = hints.Stavba
	}
	if scanned.Objekt == "" {
		scanned.Objekt = hints.Objekt
	}
	if scanned.Soupis == "" {
		scanned.Soupis = hints.Soupis
	}
	return scanned
}
