package classifier_client

import (
	"encoding/json"
	"errors"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// The classification service has shipped at least four successful response
// shapes over time. One adapter normalizes all of them; shape presence is
// detected via pointer fields so an explicitly empty list still counts as a
// recognized (successful, empty) response.
type envelope struct {
	Positions *[]app.ClassifiedPosition `json:"positions"`
	Files     []envelopeFile            `json:"files"`
	Items     *[]app.ClassifiedPosition `json:"items"`
	Data      *envelopeData             `json:"data"`
}

type envelopeFile struct {
	Positions []app.ClassifiedPosition `json:"positions"`
}

type envelopeData struct {
	Positions *[]app.ClassifiedPosition `json:"positions"`
}

var errUnknownShape = errors.New("unrecognized response envelope")

// decodeEnvelope normalizes a response body into a flat position list.
// Shape precedence: positions, files[].positions, items, data.positions.
func decodeEnvelope(body []byte) ([]app.ClassifiedPosition, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	switch {
	case env.Positions != nil:
		return *env.Positions, nil
	case env.Files != nil:
		var out []app.ClassifiedPosition
		for _, f := range env.Files {
			out = append(out, f.Positions...)
		}
		return out, nil
	case env.Items != nil:
		return *env.Items, nil
	case env.Data != nil && env.Data.Positions != nil:
		return *env.Data.Positions, nil
	}
	return nil, errUnknownShape
}
