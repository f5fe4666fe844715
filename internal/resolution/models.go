package resolution

import (
	"parcelgate/internal/cadastre"
	"parcelgate/internal/geometry"
	"parcelgate/internal/landuse"
	"parcelgate/internal/zoning"
)

// Resolution is the answer to a parcel query. Candidates is never nil.
// Site is attached only when exactly one candidate has a centroid.
type Resolution struct {
	Query      Query             `json:"query"`
	Candidates []cadastre.Parcel `json:"candidates"`
	Site       *Site             `json:"site,omitempty"`
}

// Site is the land-use and zoning report for one point.
type Site struct {
	Point        *geometry.Point `json:"point"`
	Commune      string          `json:"commune,omitempty"`
	PortalURL    string          `json:"portalUrl"`
	LandUse      zoning.LandUse  `json:"landUse"`
	LandUseCodes []landuse.Code  `json:"landUseCodes"`
	LandUseNote  string          `json:"landUseNote"`
	Zoning       zoning.Zoning   `json:"zoning"`
	ZoningNote   string          `json:"zoningNote"`
}
