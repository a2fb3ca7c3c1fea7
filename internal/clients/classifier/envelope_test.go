package classifier_client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_FlatPositions(t *testing.T) {
	body := []byte(`{"positions":[{"description":"Beton základů C25/30","quantity":120.5,"material_type":"concrete","code":"272325"}]}`)

	out, err := decodeEnvelope(body)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Beton základů C25/30", out[0].Description)
	assert.InDelta(t, 120.5, out[0].Quantity, 1e-9)
}

func TestDecodeEnvelope_PerFilePositions(t *testing.T) {
	body := []byte(`{"files":[
		{"positions":[{"description":"Beton opěr","quantity":10,"material_type":"concrete"}]},
		{"positions":[{"description":"Bednění opěr","quantity":40,"material_type":"concrete"}]}
	]}`)

	out, err := decodeEnvelope(body)
	require.NoError(t, err)
	require.Len(t, out, 2, "per-file lists are concatenated")
	assert.Equal(t, "Bednění opěr", out[1].Description)
}

func TestDecodeEnvelope_Items(t *testing.T) {
	body := []byte(`{"items":[{"description":"Beton dříku","quantity":12.3,"material_type":"concrete"}]}`)

	out, err := decodeEnvelope(body)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestDecodeEnvelope_NestedData(t *testing.T) {
	body := []byte(`{"data":{"positions":[{"description":"Beton říms","quantity":5,"material_type":"concrete"}]}}`)

	out, err := decodeEnvelope(body)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestDecodeEnvelope_ExplicitlyEmptyIsSuccess(t *testing.T) {
	out, err := decodeEnvelope([]byte(`{"positions":[]}`))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeEnvelope_Precedence(t *testing.T) {
	body := []byte(`{
		"positions":[{"description":"z plochého seznamu","quantity":1,"material_type":"concrete"}],
		"items":[{"description":"z items","quantity":2,"material_type":"concrete"}]
	}`)

	out, err := decodeEnvelope(body)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "z plochého seznamu", out[0].Description)
}

func TestDecodeEnvelope_UnknownShape(t *testing.T) {
	_, err := decodeEnvelope([]byte(`{"status":"ok"}`))
	assert.ErrorIs(t, err, errUnknownShape)
}

func TestDecodeEnvelope_InvalidJson(t *testing.T) {
	_, err := decodeEnvelope([]byte(`not json`))
	assert.Error(t, err)
}
