package dialect

import (
	"regexp"
	"strings"
)

// MaxFeaturePages caps how many secondary pages one response may trigger.
const MaxFeaturePages = 6

var (
	emapaFrame   = regexp.MustCompile(`(?i)src=["']?//([^/"']+e-mapa\.net[^/"']*)/[^?"']*pln_gfi\.php\?id=(\d+)`)
	emapaActLink = regexp.MustCompile(`(?i)href=["']([^"']*getUchwala[^"']*)["']`)
	emapaPDFLink = regexp.MustCompile(`(?i)href=["']([^"']+\.pdf)["']`)
	planIDParam  = regexp.MustCompile(`[?&]p=(\d+)`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// emapa: the aggregator embeds one iframe per plan feature; each iframe
// page lists "key: value" lines and may link the resolution document.
type emapa struct{}

func (emapa) Name() string { return "emapa" }

func (emapa) Match(body string) bool {
	return emapaFrame.MatchString(body)
}

// Extract returns the feature pages to fetch, deduplicated by id and capped.
func (emapa) Extract(body string) Outcome {
	seen := map[string]struct{}{}
	var refs []PageRef
	for _, m := range emapaFrame.FindAllStringSubmatch(body, -1) {
		if _, ok := seen[m[2]]; ok {
			continue
		}
		seen[m[2]] = struct{}{}
		refs = append(refs, PageRef{Host: m[1], ID: m[2]})
		if len(refs) == MaxFeaturePages {
			break
		}
	}
	return Outcome{Status: StatusUnknown, Follow: refs}
}

// Merge combines feature pages. Line and boundary features ("str") describe
// the zone more precisely than area features ("pow") and win when present.
func (emapa) Merge(pages []Page) Outcome {
	var features []map[string]string
	for _, p := range pages {
		if f := ParseFeaturePage(p.Body, p.Ref.Host); len(f) > 0 {
			features = append(features, f)
		}
	}
	if len(features) == 0 {
		return Unknown()
	}

	best := features[0]
	if f := firstWithType(features, "str"); f != nil {
		best = f
	} else if f := firstWithType(features, "pow"); f != nil {
		best = f
	}

	out := Fields{
		Symbol:  pick(best, "strefa_oznaczenie", "oznaczenie", "symbol"),
		Purpose: pick(best, "opis", "przeznaczenie", "funkcja"),
	}
	for _, f := range features {
		if f["uchwala"] != "" {
			out.PlanName = resolution(f["uchwala"], f["data_uchwaly"])
			break
		}
	}
	for _, f := range features {
		if f[actURLKey] != "" {
			out.ActURL = f[actURLKey]
			break
		}
	}
	return Covered(out)
}

const (
	actURLKey = "_act_url"
	planIDKey = "_plan_id"
)

// ParseFeaturePage reads "key: value" lines from a feature page. Keys are
// lowercased with whitespace folded to underscores; "null" and "-" values
// are skipped. A resolution link, if any, is stored under "_act_url".
func ParseFeaturePage(body, host string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(stripTags(body), "\n") {
		colon := strings.Index(line, ":")
		if colon < 1 {
			continue
		}
		key := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(line[:colon])), "_")
		val := strings.TrimSpace(line[colon+1:])
		if key == "" || val == "" || val == "null" || val == "-" {
			continue
		}
		fields[key] = val
	}

	if m := emapaActLink.FindStringSubmatch(body); m != nil {
		link := absoluteURL(m[1], host)
		fields[actURLKey] = link
		if p := planIDParam.FindStringSubmatch(link); p != nil {
			fields[planIDKey] = p[1]
		}
	} else if m := emapaPDFLink.FindStringSubmatch(body); m != nil {
		fields[actURLKey] = absoluteURL(m[1], host)
	}
	return fields
}

func firstWithType(features []map[string]string, typ string) map[string]string {
	for _, f := range features {
		if f["typ"] == typ {
			return f
		}
	}
	return nil
}
