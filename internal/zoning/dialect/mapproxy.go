package dialect

import "regexp"

var (
	mapproxySig  = signature{regexp.MustCompile(`(?i)<title>\s*Information\s*</title>`)}
	mapproxyPair = regexp.MustCompile(`(?is)<th[^>]*>\s*([^<]+?)\s*</th>\s*<td[^>]*>(.*?)</td>`)
)

// mapproxy: a small "Information" page with th/td pairs for numer, symbol
// and przeznaczenie. Przeznaczenie "N" is a placeholder, not a purpose.
type mapproxy struct{}

func (mapproxy) Name() string           { return "mapproxy" }
func (mapproxy) Match(body string) bool { return mapproxySig.Match(body) }

func (mapproxy) Extract(body string) Outcome {
	kv := pairs(mapproxyPair, body)
	symbol := kv["symbol"]
	number := kv["numer"]
	if symbol == "" && number == "" {
		return NotCovered()
	}

	purpose := kv["przeznaczenie"]
	if purpose == "N" {
		purpose = ""
	}
	return Covered(Fields{
		PlanName: resolution(number, ""),
		Symbol:   symbol,
		Purpose:  purpose,
	})
}
