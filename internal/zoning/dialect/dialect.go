// Package dialect classifies zoning-plan GetFeatureInfo responses.
//
// Communes run different map servers, so the same question comes back in
// many markup conventions. Each convention is a Dialect: a cheap signature
// check plus a pure extractor. A Cascade tries them in a fixed order and the
// first signature that matches owns the response.
package dialect

import "regexp"

// Status is the normalized zoning classification.
type Status string

const (
	StatusCovered    Status = "covered"
	StatusNotCovered Status = "not_covered"
	StatusUnknown    Status = "unknown"
)

// Fields are the plan attributes a dialect can recover.
type Fields struct {
	PlanName string
	Symbol   string
	Purpose  string
	ActURL   string
}

// Empty reports whether no field was recovered.
func (f Fields) Empty() bool {
	return f == Fields{}
}

// PageRef identifies a secondary per-feature page on a commune host.
type PageRef struct {
	Host string
	ID   string
}

// Page is a fetched secondary page.
type Page struct {
	Ref  PageRef
	Body string
}

// Outcome is the tagged result of an extractor. Follow is set by dialects
// whose response only points at other pages; the outcome is final once
// those pages are merged.
type Outcome struct {
	Status Status
	Fields Fields
	Follow []PageRef
}

// Covered builds a covered outcome.
func Covered(f Fields) Outcome {
	return Outcome{Status: StatusCovered, Fields: f}
}

// NotCovered builds a not_covered outcome.
func NotCovered() Outcome {
	return Outcome{Status: StatusNotCovered}
}

// Unknown builds an unknown outcome.
func Unknown() Outcome {
	return Outcome{Status: StatusUnknown}
}

// Normalized clears fields that must not accompany a non-covered status.
func (o Outcome) Normalized() Outcome {
	if o.Status != StatusCovered {
		o.Fields = Fields{}
	}
	o.Follow = nil
	return o
}

// Dialect is one response convention.
type Dialect interface {
	Name() string
	Match(body string) bool
	Extract(body string) Outcome
}

// Merger is implemented by dialects that finish their work on fetched pages.
type Merger interface {
	Merge(pages []Page) Outcome
}

// Cascade is an ordered list of dialects. The last entry should always match.
type Cascade []Dialect

// DefaultCascade returns the production ordering. Earlier entries are
// stronger signals; reordering changes classification.
func DefaultCascade() Cascade {
	return Cascade{
		noResult{},
		noService{},
		raster{},
		emptyTable{},
		emapa{},
		rowset{},
		geoserver{},
		esri{},
		mapserver{},
		mapproxy{},
		igeomap{},
		fallback{},
	}
}

// Select returns the first dialect whose signature matches body.
func (c Cascade) Select(body string) Dialect {
	for _, d := range c {
		if d.Match(body) {
			return d
		}
	}
	return fallback{}
}

// Names lists dialect names in order.
func (c Cascade) Names() []string {
	names := make([]string, len(c))
	for i, d := range c {
		names[i] = d.Name()
	}
	return names
}

// signature is a regexp-backed Match helper.
type signature struct {
	re *regexp.Regexp
}

func (s signature) Match(body string) bool {
	return s.re.MatchString(body)
}
