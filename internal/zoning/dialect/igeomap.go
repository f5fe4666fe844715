package dialect

import (
	"regexp"
	"strings"
)

var (
	emphasisTitle    = regexp.MustCompile(`(?i)<b>([^<]{5,})</b>`)
	emphasisCitation = regexp.MustCompile(`(?i)<i>(Uchwała[^<]+)</i>`)
	emphasisActLink  = regexp.MustCompile(`(?i)href=["']([^"']+\.pdf)["'][^>]*>\s*Pokaż treść uchwały`)
)

// igeomap: free-form HTML where the plan title is bold, the resolution
// citation italic, and the act is linked as "Pokaż treść uchwały". When a
// page lists several plans the last one is the most specific.
type igeomap struct{}

type emphasisParts struct {
	title    string
	citation string
	actURL   string
}

func parseEmphasis(body string) emphasisParts {
	return emphasisParts{
		title:    lastGroup(emphasisTitle, body),
		citation: lastGroup(emphasisCitation, body),
		actURL:   lastGroup(emphasisActLink, body),
	}
}

func lastGroup(re *regexp.Regexp, body string) string {
	all := re.FindAllStringSubmatch(body, -1)
	if len(all) == 0 {
		return ""
	}
	return strings.TrimSpace(all[len(all)-1][1])
}

func (igeomap) Name() string { return "igeomap" }

func (igeomap) Match(body string) bool {
	p := parseEmphasis(body)
	return p.title != "" || p.citation != ""
}

func (igeomap) Extract(body string) Outcome {
	p := parseEmphasis(body)
	if p.title == "" && p.citation == "" {
		return Unknown()
	}
	name := p.citation
	if name == "" {
		name = cleanText(p.title)
	}
	return Covered(Fields{
		PlanName: cleanText(name),
		ActURL:   absoluteURL(p.actURL, ""),
	})
}
