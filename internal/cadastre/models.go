package cadastre

import "parcelgate/internal/geometry"

// Parcel is one cadastral candidate returned by the lookup service.
type Parcel struct {
	RegionCode string `json:"regionCode"` // full TERYT parcel id, e.g. 141201_1.0001.6509
	Province   string `json:"province"`
	County     string `json:"county"`
	Commune    string `json:"commune"`
	District   string `json:"district"`
	Number     string `json:"parcelNumber"`

	Geometry         string          `json:"geometryText,omitempty"`
	Centroid         *geometry.Point `json:"centroid"`
	AreaSquareMeters *int64          `json:"areaSquareMeters"`
}

// Label is a short human form: "6509, Nadarzyn (Nadarzyn)".
func (p Parcel) Label() string {
	label := p.Number
	if label == "" {
		label = p.RegionCode
	}
	if p.District != "" {
		label += ", " + p.District
	}
	if p.Commune != "" {
		label += " (" + p.Commune + ")"
	}
	return label
}
