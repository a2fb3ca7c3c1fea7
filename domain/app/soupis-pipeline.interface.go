package app

import (
	"context"

	"github.com/init-pkg/nova/errs"
	nova_ctx "github.com/init-pkg/nova/shared/ctx"
)

// SoupisPipelineService resolves an uploaded spreadsheet into a non-empty set
// of normalized work positions. Hints carry project labels already known to
// the caller; scanned metadata fills whatever the hints leave unset.
type SoupisPipelineService interface {
	Resolve(ctx nova_ctx.Ctx, file []byte, filename string, hints FileMetadata) (*ResolutionResult, errs.Error)
}

// PositionRepository applies one resolution round as a single atomic write.
type PositionRepository interface {
	SaveRound(ctx nova_ctx.Ctx, filename string, checksum string, res *ResolutionResult) errs.Error
}

// ClassifiedPosition is one item of the external classification service's
// response, after envelope normalization.
type ClassifiedPosition struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	MaterialType   string  `json:"material_type"`
	Code           string  `json:"code"`
	Confidence     float64 `json:"confidence"`
	ValidationFlag bool    `json:"validation_flag"`
}

// ClassifierClient is the single bounded call to the external classification
// service. Implementations never retry and never leak transport errors: any
// failure surfaces as the implementing client's ErrUnavailable sentinel.
type ClassifierClient interface {
	Classify(ctx context.Context, file []byte, filename string, meta FileMetadata) ([]ClassifiedPosition, error)
}
