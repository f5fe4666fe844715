package dialect

import "regexp"

// noResult: the aggregator states the point lies outside any plan.
type noResult struct{}

var noResultSig = signature{regexp.MustCompile(`(?i)brak wyniku dla wskazanego obszaru`)}

func (noResult) Name() string           { return "no_result" }
func (noResult) Match(body string) bool { return noResultSig.Match(body) }
func (noResult) Extract(string) Outcome { return NotCovered() }

// noService: the commune publishes no plan service, so coverage is unknowable.
type noService struct{}

var noServiceSig = signature{regexp.MustCompile(`(?i)brak serwisu dla wskazanego obszaru`)}

func (noService) Name() string           { return "no_service" }
func (noService) Match(body string) bool { return noServiceSig.Match(body) }
func (noService) Extract(string) Outcome { return Unknown() }

// raster: only a scanned plan drawing is exposed; there are no attributes.
type raster struct{}

var rasterSig = signature{regexp.MustCompile(`(?i)<title>\s*RysunekAktuPlanowania\s*</title>`)}

func (raster) Name() string           { return "raster" }
func (raster) Match(body string) bool { return rasterSig.Match(body) }
func (raster) Extract(string) Outcome { return Unknown() }

// emptyTable: an ESRI or GeoServer page with no table rows at all.
type emptyTable struct{}

func (emptyTable) Name() string { return "empty_table" }

func (emptyTable) Match(body string) bool {
	return (esriSig.Match(body) || geoserverSig.Match(body)) && !anyRow.MatchString(body)
}

func (emptyTable) Extract(string) Outcome { return NotCovered() }

// fallback always matches.
type fallback struct{}

func (fallback) Name() string           { return "unrecognized" }
func (fallback) Match(string) bool      { return true }
func (fallback) Extract(string) Outcome { return Unknown() }
