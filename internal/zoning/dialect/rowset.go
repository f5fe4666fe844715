package dialect

import (
	"regexp"
	"strings"
)

var (
	rowsetSig   = signature{regexp.MustCompile(`(?i)<GetFeatureInfo_Result>`)}
	rowsetRow   = regexp.MustCompile(`(?is)<ROW(?:\s[^>]*)?>(.*?)</ROW>`)
	rowsetField = regexp.MustCompile(`<(\w+)>\s*([^<]*?)\s*</(\w+)>`)
)

// rowset: Oracle-backed services return one <ROW> element per feature with
// one child element per attribute.
type rowset struct{}

func (rowset) Name() string           { return "rowset" }
func (rowset) Match(body string) bool { return rowsetSig.Match(body) }

func (rowset) Extract(body string) Outcome {
	rows := ParseRows(body)
	if len(rows) == 0 {
		return NotCovered()
	}
	r := rows[0]
	return Covered(Fields{
		Symbol:   pick(r, "fun_symb", "symbol"),
		Purpose:  pick(r, "fun_nazwa", "przeznaczenie"),
		PlanName: pick(r, "nazwa_plan", "nazwa"),
	})
}

// ParseRows returns each non-empty <ROW> as lowercase field -> value.
func ParseRows(body string) []map[string]string {
	var rows []map[string]string
	for _, m := range rowsetRow.FindAllStringSubmatch(body, -1) {
		row := map[string]string{}
		for _, f := range rowsetField.FindAllStringSubmatch(m[1], -1) {
			if f[1] != f[3] || isNullish(f[2]) {
				continue
			}
			row[strings.ToLower(f[1])] = cleanText(f[2])
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
