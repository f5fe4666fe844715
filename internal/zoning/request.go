package zoning

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLandUseURL is the national land-use integration WMS.
	DefaultLandUseURL = "https://integracja.gugik.gov.pl/cgi-bin/KrajowaIntegracjaUzytkowGruntowych"
	// DefaultZoningURL is the national zoning-plan integration WMS.
	DefaultZoningURL = "https://mapy.geoportal.gov.pl/wss/ext/KrajowaIntegracjaMiejscowychPlanowZagospodarowaniaPrzestrzennego"

	// bboxHalfWidth in degrees, roughly 55 m.
	bboxHalfWidth = 0.0005
	featureCount  = "20"

	Version111 = "1.1.1"
	Version130 = "1.3.0"
)

// Rung is one request combination in a probe ladder.
type Rung struct {
	Layers  string
	Format  string
	Version string
	Size    int
}

// LandUseLadder is tried in order until one response is usable.
var LandUseLadder = []Rung{
	{Layers: "dzialki,uzytki,klasouzytki", Format: "text/html", Version: Version111, Size: 11},
	{Layers: "dzialki,uzytki,klasouzytki", Format: "text/xml", Version: Version111, Size: 11},
	{Layers: "dzialki,uzytki,klasouzytki", Format: "text/html", Version: Version130, Size: 11},
}

// ZoningLadder starts with the vector plan layers, then the layer set that
// older commune services accept, then the 1.3.0 axis order.
var ZoningLadder = []Rung{
	{Layers: "wektor-pow,wektor-lin,wektor-str,wektor-pkt,plany", Format: "text/html", Version: Version111, Size: 101},
	{Layers: "plany,plany_granice", Format: "text/html", Version: Version111, Size: 101},
	{Layers: "wektor-pow,wektor-lin,wektor-str,wektor-pkt,plany", Format: "text/html", Version: Version130, Size: 101},
}

// BuildGetFeatureInfo returns a GetFeatureInfo URL for a small box centered
// on p. WMS 1.3.0 with EPSG:4326 uses lat,lng axis order and I/J pixel
// parameters; 1.1.1 uses lng,lat and X/Y.
func BuildGetFeatureInfo(base string, r Rung, p Point) string {
	d := bboxHalfWidth
	half := strconv.Itoa(r.Size / 2)
	size := strconv.Itoa(r.Size)

	var b strings.Builder
	b.WriteString(base)
	if strings.Contains(base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("SERVICE=WMS&VERSION=" + r.Version + "&REQUEST=GetFeatureInfo")
	b.WriteString("&LAYERS=" + r.Layers + "&QUERY_LAYERS=" + r.Layers)

	if r.Version == Version130 {
		b.WriteString("&CRS=EPSG:4326&BBOX=" + bbox(p.Lat-d, p.Lng-d, p.Lat+d, p.Lng+d))
		b.WriteString("&WIDTH=" + size + "&HEIGHT=" + size + "&I=" + half + "&J=" + half)
	} else {
		b.WriteString("&SRS=EPSG:4326&BBOX=" + bbox(p.Lng-d, p.Lat-d, p.Lng+d, p.Lat+d))
		b.WriteString("&WIDTH=" + size + "&HEIGHT=" + size + "&X=" + half + "&Y=" + half)
	}
	b.WriteString("&INFO_FORMAT=" + url.QueryEscape(r.Format) + "&FEATURE_COUNT=" + featureCount)
	return b.String()
}

func bbox(vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
