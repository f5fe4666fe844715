package dialect

import "regexp"

var (
	mapserverSig  = signature{regexp.MustCompile(`(?i)GetFeatureInfo results`)}
	mapserverPair = regexp.MustCompile(`(?is)<TH[^>]*>\s*([^<]+?)\s*</TH>\s*<TD[^>]*>(.*?)</TD>`)
	activeStatus  = regexp.MustCompile(`(?i)obowiazujacy|obowiązujący|aktywny`)
)

// mapserver: MapServer HTML templates render each attribute as a TH/TD pair
// with no grouping per feature. "layer" and "feature" rows are bookkeeping.
type mapserver struct{}

func (mapserver) Name() string           { return "mapserver" }
func (mapserver) Match(body string) bool { return mapserverSig.Match(body) }

func (mapserver) Extract(body string) Outcome {
	kv := pairs(mapserverPair, body)

	business := 0
	for k := range kv {
		if k != "layer" && k != "feature" {
			business++
		}
	}
	if business == 0 {
		return NotCovered()
	}
	if status := kv["status"]; status != "" && !activeStatus.MatchString(status) {
		return NotCovered()
	}

	name := pick(kv, "nazwa", "name")
	number := pick(kv, "numer_uchwaly", "nr_uchwaly")
	if name == "" && number == "" {
		return Unknown()
	}
	if number != "" {
		name = resolution(number, kv["data"])
	}
	return Covered(Fields{PlanName: name})
}
