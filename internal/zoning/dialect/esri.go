package dialect

import "regexp"

var esriSig = signature{regexp.MustCompile(`(?i)esri_wms|FeatureInfoCollection`)}

// esri: ArcGIS Server HTML, one header row per layer table followed by
// feature rows. Layer schemas differ per commune, so each logical field has
// several header synonyms, the fuller name first.
type esri struct{}

func (esri) Name() string           { return "esri" }
func (esri) Match(body string) bool { return esriSig.Match(body) }

// Extract leaves a header-only table unknown: ArcGIS emits layer headers
// even for layers that are unrelated to plan coverage.
func (esri) Extract(body string) Outcome {
	for _, t := range parseTables(body) {
		rec := t.record()
		if len(rec) == 0 {
			continue
		}

		symbol := pick(rec, "oznaczenie", "nr planu", "fun_symb")
		planName := pick(rec, "nazwa mpzp", "nazwa planu", "tytul", "plan")
		number := pick(rec, "uchwalenie", "nr uchwały", "pla_nr")
		date := pick(rec, "data uchwalenia", "data_uchwalenia", "obowiazujeod")
		if symbol == "" && planName == "" && number == "" {
			continue
		}

		name := planName
		if number != "" {
			name = resolution(number, date)
		}
		return Covered(Fields{
			PlanName: name,
			Symbol:   symbol,
			Purpose:  pick(rec, "opis_oznac", "rodzaj oznaczenia", "przeznaczenie"),
			ActURL:   linkValue(pick(rec, "www", "link", "lacze")),
		})
	}
	return Unknown()
}
