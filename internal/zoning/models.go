package zoning

import (
	"parcelgate/internal/geometry"
	"parcelgate/internal/zoning/dialect"
)

// Point is the probe location.
type Point = geometry.Point

// Status is the zoning coverage classification.
type Status = dialect.Status

const (
	StatusCovered    = dialect.StatusCovered
	StatusNotCovered = dialect.StatusNotCovered
	StatusUnknown    = dialect.StatusUnknown
)

// LandUse is the land-use probe result. Raw is diagnostic only.
type LandUse struct {
	Available bool     `json:"available"`
	Codes     []string `json:"codes"`
	Raw       string   `json:"raw"`
}

// Zoning is the zoning-plan probe result. For any status other than
// covered the optional fields are nil.
type Zoning struct {
	Status   Status  `json:"status"`
	PlanName *string `json:"planName"`
	Symbol   *string `json:"symbol"`
	Purpose  *string `json:"purpose"`
	ActURL   *string `json:"actUrl"`
	Dialect  string  `json:"dialect,omitempty"`
	Raw      string  `json:"raw"`
}

// Report joins both probes. A probe error is set only when no rung of its
// ladder could be asked at all; the matching section is then the empty result.
type Report struct {
	LandUse    LandUse `json:"landUse"`
	Zoning     Zoning  `json:"zoning"`
	LandUseErr error   `json:"-"`
	ZoningErr  error   `json:"-"`
}

func unknownZoning() Zoning {
	return Zoning{Status: StatusUnknown}
}

func zoningFrom(res dialect.Result, raw string) Zoning {
	z := Zoning{Status: res.Status, Dialect: res.Dialect, Raw: raw}
	if res.Status == StatusCovered {
		z.PlanName = optional(res.Fields.PlanName)
		z.Symbol = optional(res.Fields.Symbol)
		z.Purpose = optional(res.Fields.Purpose)
		z.ActURL = optional(res.Fields.ActURL)
	}
	return z
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
