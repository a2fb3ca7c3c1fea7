package position_pipeline_service

import (
	"context"
	"errors"
	"testing"

	nova_ctx "github.com/init-pkg/nova/shared/ctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/soupis-parser/domain/app"
	"github.com/init-pkg/soupis-parser/internal/config"
)

type stubClassifier struct {
	positions []app.ClassifiedPosition
	err       error
	calls     int
}

func (this *stubClassifier) Classify(_ context.Context, _ []byte, _ string, _ app.FileMetadata) ([]app.ClassifiedPosition, error) {
	this.calls++
	return this.positions, this.err
}

func newPipeline(classifier app.ClassifierClient) *PositionPipelineService {
	cfg := &config.Config{}
	cfg.Pipeline.MetadataRows = 20
	return New(classifier, cfg, discardLogger())
}

// soupisWorkbook is a typical upload: a recap sheet plus the real soupis with
// metadata labels above the item table.
func soupisWorkbook(t *testing.T) []byte {
	t.Helper()
	return workbookBytes(t, map[string][][]string{
		"Soupis prací": {
			{"Stavba:", "D6 Žalmanov"},
			{"Objekt:", "SO 201"},
			{},
			{"Kód", "Popis", "MJ", "Množství"},
			{"272325", "Beton základů C25/30", "m3", "120,5"},
			{"", "Přesun hmot", "km", "10"},
		},
	})
}

func TestResolve_ClassifierWins(t *testing.T) {
	stub := &stubClassifier{positions: []app.ClassifiedPosition{
		{Description: "Beton opěr C30/37", Quantity: 45.5, MaterialType: "Concrete", Code: "272325"},
		{Description: "Ocelová konstrukce", Quantity: 10, MaterialType: "steel"},
	}}
	svc := newPipeline(stub)

	res, err := svc.Resolve(nova_ctx.New(), soupisWorkbook(t), "soupis.xlsx", app.FileMetadata{})
	require.Nil(t, err)

	assert.Equal(t, app.SourceCore, res.Source)
	require.Len(t, res.Positions, 1, "non-concrete classifier items are dropped")
	assert.Equal(t, "Beton opěr C30/37", res.Positions[0].ItemName)
	assert.Equal(t, "C30/37", res.Positions[0].ConcreteGrade)
	assert.Equal(t, app.SubtypeBeton, res.Positions[0].Subtype)
	assert.Equal(t, "SO 201", res.Positions[0].PartName)
	assert.Equal(t, 1, stub.calls)
}

func TestResolve_ClassifierUnavailableFallsToScoped(t *testing.T) {
	stub := &stubClassifier{err: errors.New("classifier down")}
	svc := newPipeline(stub)

	res, err := svc.Resolve(nova_ctx.New(), soupisWorkbook(t), "soupis.xlsx", app.FileMetadata{})
	require.Nil(t, err, "classifier outage is not the caller's problem")

	assert.Equal(t, app.SourceLocalScoped, res.Source)
	require.Len(t, res.Positions, 1)
	assert.Equal(t, "Beton základů C25/30", res.Positions[0].ItemName)
	assert.InDelta(t, 120.5, res.Positions[0].Qty, 1e-9)
	assert.Equal(t, 1, stub.calls, "the classifier is never retried")
}

func TestResolve_EmptyClassifierResultFallsToScoped(t *testing.T) {
	stub := &stubClassifier{positions: []app.ClassifiedPosition{
		{Description: "Ocelové zábradlí", Quantity: 3, MaterialType: "steel"},
	}}
	svc := newPipeline(stub)

	res, err := svc.Resolve(nova_ctx.New(), soupisWorkbook(t), "soupis.xlsx", app.FileMetadata{})
	require.Nil(t, err)
	assert.Equal(t, app.SourceLocalScoped, res.Source)
}

func TestResolve_GradeSearchWhenNoItemTable(t *testing.T) {
	file := workbookBytes(t, map[string][][]string{
		"List1": {
			{"Poznámka"},
			{"C30/37", "m3", "150,5"},
		},
	})
	stub := &stubClassifier{err: errors.New("classifier down")}
	svc := newPipeline(stub)

	res, err := svc.Resolve(nova_ctx.New(), file, "poznamky.xlsx", app.FileMetadata{})
	require.Nil(t, err)

	assert.Equal(t, app.SourceLocalGlobal, res.Source)
	require.Len(t, res.Positions, 1)
	assert.Equal(t, "C30/37", res.Positions[0].ConcreteGrade)
	assert.InDelta(t, 150.5, res.Positions[0].Qty, 1e-9)
}

func TestResolve_TemplateFloor(t *testing.T) {
	file := workbookBytes(t, map[string][][]string{
		"List1": {
			{"jen", "volný", "text"},
		},
	})
	stub := &stubClassifier{err: errors.New("classifier down")}
	svc := newPipeline(stub)

	res, err := svc.Resolve(nova_ctx.New(), file, "nahodny.xlsx", app.FileMetadata{Objekt: "SO 999"})
	require.Nil(t, err)

	assert.Equal(t, app.SourceTemplate, res.Source)
	require.Len(t, res.Positions, 4)
	for _, p := range res.Positions {
		assert.Equal(t, "SO 999", p.PartName)
		assert.InDelta(t, 1, p.Qty, 1e-9)
		assert.Equal(t, app.SourceTemplate, p.Source)
	}
}

func TestResolve_ScannedMetadataWinsOverHints(t *testing.T) {
	stub := &stubClassifier{err: errors.New("classifier down")}
	svc := newPipeline(stub)

	res, err := svc.Resolve(nova_ctx.New(), soupisWorkbook(t), "soupis.xlsx",
		app.FileMetadata{Stavba: "jiná stavba", Soupis: "Soupis 01"})
	require.Nil(t, err)

	assert.Equal(t, "D6 Žalmanov", res.Metadata.Stavba, "document value beats the hint")
	assert.Equal(t, "SO 201", res.Metadata.Objekt)
	assert.Equal(t, "Soupis 01", res.Metadata.Soupis, "hints fill scanned gaps")
}

func TestResolve_InvalidFile(t *testing.T) {
	svc := newPipeline(&stubClassifier{})

	_, err := svc.Resolve(nova_ctx.New(), []byte("not a workbook"), "junk.bin", app.FileMetadata{})
	assert.NotNil(t, err)
}

func TestCorePositions_FilterAndMapping(t *testing.T) {
	classified := []app.ClassifiedPosition{
		{Description: "Beton dříku C35/45", Quantity: 12.3, MaterialType: "concrete", Code: "272325"},
		{Description: "Bednění dříku", Quantity: 40, MaterialType: "CONCRETE"},
		{Description: "Zemní práce", Quantity: 100, MaterialType: "earthworks"},
	}

	out := corePositions(classified, "SO 201")
	require.Len(t, out, 2, "material filter is case-insensitive")

	assert.Equal(t, "C35/45", out[0].ConcreteGrade)
	assert.Equal(t, "272325", out[0].OtskpCode)
	assert.Equal(t, app.SubtypeBedneni, out[1].Subtype)
	for _, p := range out {
		assert.Equal(t, app.SourceCore, p.Source)
	}
}

func TestMergeMetadata(t *testing.T) {
	scanned := app.FileMetadata{Stavba: "D6 Žalmanov"}
	hints := app.FileMetadata{Stavba: "ignored", Objekt: "SO 201"}

	got := mergeMetadata(scanned, hints)
	assert.Equal(t, "D6 Žalmanov", got.Stavba)
	assert.Equal(t, "SO 201", got.Objekt)
	assert.Equal(t, "", got.Soupis)
}
