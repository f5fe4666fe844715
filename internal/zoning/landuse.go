package zoning

import (
	"regexp"
	"strings"

	pstrings "parcelgate/pkg/platform/strings"
)

const (
	landUseRawRunes = 800
	zoningRawRunes  = 1000
	minUsableBody   = 20
	maxMarkerValue  = 20
)

var (
	// explicit attribute markers, e.g. <td class="OZNACZENIE">RIVa</td> or OZNACZENIE: RIVa
	markerCode = regexp.MustCompile(`(?i)OZNACZENIE[^>]*>\s*([^<\n|]+)`)
	markerWord = regexp.MustCompile(`(?i)OZNACZENIE`)

	// EGiB use group followed by a soil class. The leading guard is explicit
	// because \b is ASCII-only and would never fire before "Ł".
	taxonomyCode = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])((?:R|Ps|Ł|S|Br|Bi|Ba|Bz|B|Bp|Ls|Lz|N|W|dr|Tk|Ti|Tp)(?:I{1,3}|IV[ab]?|V|VI(?:z)?))\b`)

	// last resort: a pipe-delimited fragment such as "| RIVa, PsV |"
	pipeFragment = regexp.MustCompile(`\|\s*((?:[A-ZŁ][a-z]?(?:I{1,3}|IV[ab]?|V|VI)?(?:,\s*)?)+)\s*\|`)
	upperInitial = regexp.MustCompile(`^[A-ZŁ]`)
)

// ParseLandUse extracts land-use codes from a KIUG response. Explicit
// markers win; the code taxonomy scan and the pipe fragment are fallbacks.
// Codes are unique in first-seen order.
func ParseLandUse(body string) LandUse {
	res := LandUse{Codes: []string{}, Raw: pstrings.Truncate(body, landUseRawRunes)}
	if len(body) < minUsableBody {
		return res
	}

	codes := markerCodes(body)
	if len(codes) == 0 {
		codes = taxonomyCodes(body)
	}
	if len(codes) == 0 {
		codes = pipeCodes(body)
	}

	res.Codes = pstrings.DedupeAndTrim(codes)
	if res.Codes == nil {
		res.Codes = []string{}
	}
	res.Available = len(res.Codes) > 0
	return res
}

func markerCodes(body string) []string {
	var out []string
	for _, m := range markerCode.FindAllStringSubmatch(body, -1) {
		v := strings.TrimSpace(m[1])
		if v != "" && len([]rune(v)) < maxMarkerValue && !markerWord.MatchString(v) {
			out = append(out, v)
		}
	}
	return out
}

func taxonomyCodes(body string) []string {
	var out []string
	for _, m := range taxonomyCode.FindAllStringSubmatch(body, -1) {
		out = append(out, m[1])
	}
	return out
}

func pipeCodes(body string) []string {
	m := pipeFragment.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	var out []string
	for _, c := range strings.Split(m[1], ",") {
		if c = strings.TrimSpace(c); c != "" && upperInitial.MatchString(c) {
			out = append(out, c)
		}
	}
	return out
}
