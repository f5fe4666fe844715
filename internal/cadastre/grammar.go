package cadastre

import (
	"strconv"
	"strings"

	"parcelgate/internal/geometry"
	"parcelgate/internal/upstream"
)

const (
	service       = "uldk"
	statusOK      = "0"
	statusMissing = "-1"

	// identity fields preceding geometry in a record
	metadataFields = 6
)

// ParseRecord decodes one pipe-delimited record. The geometry is everything
// after the sixth pipe so that any further pipes stay inside it.
// A record needs all six identity fields; one with neither a region code nor
// a parcel number is rejected.
func ParseRecord(line string) (Parcel, bool) {
	meta, geom, ok := splitAtPipe(strings.TrimSpace(line), metadataFields)
	if !ok {
		return Parcel{}, false
	}

	fields := strings.Split(meta, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	p := Parcel{
		RegionCode: fields[0],
		Province:   fields[1],
		County:     fields[2],
		Commune:    fields[3],
		District:   fields[4],
		Number:     fields[5],
	}
	if p.RegionCode == "" && p.Number == "" {
		return Parcel{}, false
	}

	if geom = geometry.StripSRID(geom); geom != "" {
		p.Geometry = geom
		p.Centroid, p.AreaSquareMeters = geometry.Measure(geom)
	}
	return p, true
}

// splitAtPipe returns the text before the nth pipe and the text after it.
// ok is false when the line has fewer than n pipes.
func splitAtPipe(line string, n int) (meta, rest string, ok bool) {
	idx := -1
	for i := 0; i < n; i++ {
		next := strings.IndexByte(line[idx+1:], '|')
		if next < 0 {
			return "", "", false
		}
		idx += next + 1
	}
	return line[:idx], line[idx+1:], true
}

func lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// ParseStatusResponse decodes the single-result grammar: a status line
// followed by one record. A bare record on the first line is tolerated.
func ParseStatusResponse(text string) ([]Parcel, error) {
	ls := lines(text)
	if len(ls) == 0 {
		return nil, upstream.NewError(upstream.CategoryBadData, service, "empty response", nil)
	}

	status := ls[0]
	switch code := statusCode(status); {
	case code == statusMissing:
		return nil, nil
	case strings.HasPrefix(code, "-"):
		return nil, upstream.NewStatusError(service, code, "service reported error")
	case code == statusOK:
		if len(ls) < 2 {
			return nil, nil
		}
		if p, ok := ParseRecord(ls[1]); ok {
			return []Parcel{p}, nil
		}
		return nil, upstream.NewError(upstream.CategoryBadData, service, "unreadable record", nil)
	}

	if p, ok := ParseRecord(status); ok {
		return []Parcel{p}, nil
	}
	return nil, upstream.NewError(upstream.CategoryBadData, service, "unexpected response shape", nil)
}

// ParseCountResponse decodes the multi-result grammar: a count line followed
// by records. A missing count line is tolerated when records are present.
func ParseCountResponse(text string) ([]Parcel, error) {
	ls := lines(text)
	if len(ls) == 0 {
		return nil, upstream.NewError(upstream.CategoryBadData, service, "empty response", nil)
	}

	first := ls[0]
	switch code := statusCode(first); {
	case code == statusMissing:
		return nil, nil
	case strings.HasPrefix(code, "-"):
		return nil, upstream.NewStatusError(service, code, "service reported error")
	}

	_, counted := leadingInt(first)
	records := ls
	if counted && !strings.Contains(first, "|") {
		records = ls[1:]
	}

	var out []Parcel
	for _, l := range records {
		if p, ok := ParseRecord(l); ok {
			out = append(out, p)
		}
	}
	if len(out) == 0 && !counted {
		return nil, upstream.NewError(upstream.CategoryBadData, service, "unexpected response shape", nil)
	}
	return out, nil
}

// leadingInt parses the digits at the start of s, ignoring anything after.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func statusCode(line string) string {
	if f := strings.Fields(line); len(f) > 0 {
		return f[0]
	}
	return line
}
