package resolution

import (
	"regexp"
	"strings"
	"unicode/utf8"

	dErrors "parcelgate/pkg/domain-errors"
)

// Kind tells which lookup a query is routed to.
type Kind string

const (
	KindExactID  Kind = "exact_id"
	KindFreeText Kind = "free_text"
	KindPoint    Kind = "point"
)

// MinQueryRunes is the shortest accepted query after trimming.
const MinQueryRunes = 2

var exactID = regexp.MustCompile(`^\d{6}_\d\.\d{4}\..+$`)

// Query is a classified parcel query.
type Query struct {
	Raw  string `json:"raw"`
	Kind Kind   `json:"kind"`
}

// ClassifyQuery trims raw and decides whether it is a full parcel
// identifier such as 141201_1.0001.6509 or free text.
func ClassifyQuery(raw string) (Query, error) {
	q := strings.TrimSpace(raw)
	if utf8.RuneCountInString(q) < MinQueryRunes {
		return Query{}, dErrors.New(dErrors.CodeValidation, "query must be at least 2 characters")
	}
	if exactID.MatchString(q) {
		return Query{Raw: q, Kind: KindExactID}, nil
	}
	return Query{Raw: q, Kind: KindFreeText}, nil
}

// JoinDistrictNumber builds the free-text form "district number" used for
// precinct plus parcel number searches.
func JoinDistrictNumber(district, number string) string {
	return strings.TrimSpace(strings.TrimSpace(district) + " " + strings.TrimSpace(number))
}
