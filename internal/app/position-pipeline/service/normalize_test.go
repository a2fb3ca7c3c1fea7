package position_pipeline_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/soupis-parser/domain/app"
)

func TestParseLocaleFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"150,5", 150.5, true},
		{"1 234,5", 1234.5, true},
		{"1 234,5", 1234.5, true},
		{"42", 42, true},
		{"3.14", 3.14, true},
		{"", 0, false},
		{"m3", 0, false},
		{"C30/37", 0, false},
	}

	for _, c := range cases {
		got, ok := parseLocaleFloat(c.in)
		assert.Equal(t, c.ok, ok, "input: %q", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "input: %q", c.in)
		}
	}
}

func TestNormalizeText_FoldsDiacriticsAndWhitespace(t *testing.T) {
	assert.Equal(t, "bedneni zakladu", normalizeText("  Bednění   základů "))
	assert.Equal(t, normalizeText("VÝZTUŽ"), normalizeText("vyztuz"))
}

func TestNormalizePositions_DedupIsDiacriticInsensitive(t *testing.T) {
	in := []app.ExtractedPosition{
		{ItemName: "Bednění základů", Subtype: app.SubtypeBedneni, Qty: 10, Source: app.SourceLocalScoped},
		{ItemName: "BEDNENI  ZAKLADU", Subtype: app.SubtypeBedneni, Qty: 99, Source: app.SourceLocalScoped},
		{ItemName: "Beton základů", Subtype: app.SubtypeBeton, Qty: 5, Source: app.SourceLocalScoped},
	}

	out := normalizePositions(in)
	require.Len(t, out, 2)
	assert.Equal(t, "Bednění základů", out[0].ItemName, "first position wins a dedup clash")
	assert.Equal(t, float64(10), out[0].Qty)
	assert.Equal(t, "Beton základů", out[1].ItemName)
}

func TestNormalizePositions_DiscardsInvalid(t *testing.T) {
	in := []app.ExtractedPosition{
		{ItemName: "Beton základů", Subtype: app.SubtypeBeton, Qty: 0},
		{ItemName: "Beton pilířů", Subtype: app.SubtypeBeton, Qty: -1},
		{ItemName: "ab", Subtype: app.SubtypeBeton, Qty: 5},
		{ItemName: "Beton opěr", Subtype: app.SubtypeBeton, Qty: 5},
	}

	out := normalizePositions(in)
	require.Len(t, out, 1)
	assert.Equal(t, "Beton opěr", out[0].ItemName)
}

func TestNormalizePositions_DerivesConcreteM3ForVolumeUnits(t *testing.T) {
	in := []app.ExtractedPosition{
		{ItemName: "Beton základů", Subtype: app.SubtypeBeton, Unit: "m3", Qty: 150.5},
		{ItemName: "Bednění základů", Subtype: app.SubtypeBedneni, Unit: "m2", Qty: 80},
	}

	out := normalizePositions(in)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].ConcreteM3)
	assert.InDelta(t, 150.5, *out[0].ConcreteM3, 1e-9)
	assert.Nil(t, out[1].ConcreteM3)
}

func TestNormalizePositions_OrderStable(t *testing.T) {
	in := []app.ExtractedPosition{
		{ItemName: "Třetí položka", Subtype: app.SubtypeBeton, Qty: 3},
		{ItemName: "První položka", Subtype: app.SubtypeBeton, Qty: 1},
		{ItemName: "Druhá položka", Subtype: app.SubtypeBeton, Qty: 2},
	}

	out := normalizePositions(in)
	require.Len(t, out, 3)
	assert.Equal(t, "Třetí položka", out[0].ItemName)
	assert.Equal(t, "První položka", out[1].ItemName)
	assert.Equal(t, "Druhá položka", out[2].ItemName)
}
