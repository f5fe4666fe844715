// Package landuse decodes EGiB land-use designations such as "RIVa",
// "PsV" or "B-RIIIa" into their use group and soil class.
package landuse

import (
	"regexp"
	"strings"
)

// designation: optional parent group, use group, optional soil class.
// Groups are lazy so that "PsV" reads as Ps + V rather than one code.
var designation = regexp.MustCompile(`^([A-ZŁa-z]{1,3}?)(?:-([A-ZŁa-z]{1,3}?))?(I{1,2}|III[ab]?|IV[ab]?|V|VI(?:z)?)?$`)

// Code is a decoded designation.
type Code struct {
	Raw       string     `json:"code"`
	UseCode   string     `json:"useCode"`
	Parent    string     `json:"parent,omitempty"`
	SoilClass string     `json:"soilClass,omitempty"`
	Use       *UseType   `json:"useType,omitempty"`
	Soil      *SoilClass `json:"soil,omitempty"`
	Summary   string     `json:"summary"`
}

// ParseCode decodes one designation. Unrecognized text is returned as its own
// use code with no description; ok is false only for blank input.
func ParseCode(raw string) (Code, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Code{}, false
	}

	c := Code{Raw: raw, UseCode: raw, Summary: raw}
	m := designation.FindStringSubmatch(raw)
	if m == nil {
		return c, true
	}

	c.UseCode = m[1]
	if m[2] != "" {
		c.Parent = m[1]
		c.UseCode = m[2]
	}
	c.SoilClass = m[3]

	if u, ok := useTypes[c.UseCode]; ok {
		c.Use = &u
	} else if u, ok := useTypes[m[1]]; ok {
		c.Use = &u
	}
	if s, ok := soilClasses[c.SoilClass]; ok {
		c.Soil = &s
	}

	var parts []string
	if c.Use != nil {
		parts = append(parts, c.Use.Official+" ("+c.Use.Common+")")
	} else {
		parts = append(parts, c.UseCode)
	}
	if p, ok := useTypes[c.Parent]; ok {
		parts = append(parts, "na terenie: "+p.Common)
	}
	if c.Soil != nil {
		parts = append(parts, "klasa "+c.SoilClass+": "+c.Soil.Description)
	}
	c.Summary = strings.Join(parts, "; ")
	return c, true
}

// ParseList decodes a comma or semicolon separated list.
func ParseList(s string) []Code {
	var out []Code
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if c, ok := ParseCode(part); ok {
			out = append(out, c)
		}
	}
	return out
}

// Describe decodes each code in order.
func Describe(codes []string) []Code {
	out := make([]Code, 0, len(codes))
	for _, raw := range codes {
		if c, ok := ParseCode(raw); ok {
			out = append(out, c)
		}
	}
	return out
}
