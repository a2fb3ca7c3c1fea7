package position_pipeline_service

import "github.com/init-pkg/soupis-parser/domain/app"

// templatePositions is the static floor of the fallback ladder for a generic
// bridge object. It must never be empty: the pipeline's non-empty guarantee
// rests on it.
func templatePositions(partName string) []app.ExtractedPosition {
	if partName == "" {
		partName = "Objekt"
	}
	one := func(p app.ExtractedPosition) app.ExtractedPosition {
		p.PartName = partName
		p.Qty = 1
		p.Source = app.SourceTemplate
		return p
	}
	return []app.ExtractedPosition{
		one(app.ExtractedPosition{
			ItemName:      "Beton konstrukcí C30/37",
			Subtype:       app.SubtypeBeton,
			Unit:          "m3",
			ConcreteGrade: "C30/37",
		}),
		one(app.ExtractedPosition{
			ItemName: "Bednění konstrukcí",
			Subtype:  app.SubtypeBedneni,
			Unit:     "m2",
		}),
		one(app.ExtractedPosition{
			ItemName: "Betonářská výztuž B500B",
			Subtype:  app.SubtypeVyztuz,
			Unit:     "t",
		}),
		one(app.ExtractedPosition{
			ItemName: "Ostatní a pomocné práce",
			Subtype:  app.SubtypeJine,
			Unit:     "ks",
		}),
	}
}
