package dialect

import (
	"regexp"
	"strings"

	pstrings "parcelgate/pkg/platform/strings"
)

var geoserverSig = signature{regexp.MustCompile(`(?i)Geoserver GetFeatureInfo output`)}

const maxPlanNameRunes = 120

// geoserver: HTML output with one <table class="featureInfo"> per layer.
// Known schemas: app.AktPlanowaniaPrzestrzennego.MPZP (tytul,
// dokumentuchwalajacy, obowiazujeod), mpzp_obo_gra_02 (nazwa_plan,
// nr_uch_uch, data_uch_u) and app.RysunkiAktuPlanowania.MPZP (nazwa_planu,
// numer_uchwaly, symbol_w_planie, przeznaczenie).
type geoserver struct{}

func (geoserver) Name() string           { return "geoserver" }
func (geoserver) Match(body string) bool { return geoserverSig.Match(body) }

func (geoserver) Extract(body string) Outcome {
	for _, t := range parseTables(body) {
		if !strings.Contains(t.class, "featureInfo") || len(t.headers()) == 0 {
			continue
		}
		if !t.hasDataRow() {
			return NotCovered()
		}

		rec := t.record()
		title := pick(rec, "tytul", "name")
		planName := pick(rec, "nazwa_plan")
		drawingName := pick(rec, "nazwa_planu")

		var name string
		switch {
		case rec["dokumentuchwalajacy"] != "":
			name = pstrings.Truncate(rec["dokumentuchwalajacy"], maxPlanNameRunes)
		case rec["numer_uchwaly"] != "":
			name = resolution(rec["numer_uchwaly"], rec["data_uchwalenia"])
		case rec["nr_uch_uch"] != "":
			name = resolution(rec["nr_uch_uch"], pick(rec, "obowiazujeod", "data_obow", "data_uch_u"))
		default:
			name = pstrings.FirstNonEmpty(drawingName, planName, title)
		}
		if name == "" {
			continue
		}
		return Covered(Fields{
			PlanName: name,
			Symbol:   pick(rec, "symbol_w_planie"),
			Purpose:  pick(rec, "przeznaczenie", "funkcja_podstawowa_opis", "funkcja_podstawowa"),
			ActURL:   linkValue(pick(rec, "link2", "link", "www")),
		})
	}
	return Unknown()
}

// linkValue accepts only absolute or protocol-relative links.
func linkValue(v string) string {
	switch {
	case strings.HasPrefix(v, "http://"), strings.HasPrefix(v, "https://"):
		return v
	case strings.HasPrefix(v, "//"):
		return "https:" + v
	}
	return ""
}
