package dialect

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	pstrings "parcelgate/pkg/platform/strings"
)

var (
	tagRe  = regexp.MustCompile(`<[^>]+>`)
	anyRow = regexp.MustCompile(`(?i)<tr[^>]*>`)
)

// stripTags replaces tags with spaces and decodes entities. Line breaks in
// the source survive so key:value pages can still be split per line.
func stripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.ReplaceAll(s, "\u00a0", " ")
}

// cleanText is stripTags folded to a single line.
func cleanText(s string) string {
	return pstrings.CollapseSpace(stripTags(s))
}

func isNullish(v string) bool {
	return v == "" || strings.EqualFold(v, "null")
}

// absoluteURL normalizes a link found on host: entities decoded,
// protocol-relative links get https, relative ones are anchored on host.
func absoluteURL(link, host string) string {
	link = strings.TrimSpace(html.UnescapeString(link))
	switch {
	case strings.HasPrefix(link, "//"):
		return "https:" + link
	case strings.HasPrefix(link, "http://"), strings.HasPrefix(link, "https://"):
		return link
	case host == "":
		return link
	case strings.HasPrefix(link, "/"):
		return "https://" + host + link
	default:
		return "https://" + host + "/" + link
	}
}

type cell struct {
	header bool
	text   string
}

type table struct {
	class   string
	caption string
	rows    [][]cell
}

// parseTables returns every table in body, outermost first. Rows of a
// nested table belong to that table only.
func parseTables(body string) []table {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var out []table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			out = append(out, readTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func readTable(n *html.Node) table {
	t := table{class: attr(n, "class")}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
				continue
			case atom.Caption:
				t.caption = pstrings.CollapseSpace(nodeText(c))
			case atom.Tr:
				t.rows = append(t.rows, readRow(c))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return t
}

func readRow(tr *html.Node) []cell {
	var cells []cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Th && c.DataAtom != atom.Td) {
			continue
		}
		cells = append(cells, cell{
			header: c.DataAtom == atom.Th,
			text:   pstrings.CollapseSpace(nodeText(c)),
		})
	}
	return cells
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// headers returns the lowercased header names of the first row.
func (t table) headers() []string {
	if len(t.rows) == 0 {
		return nil
	}
	var hs []string
	for _, c := range t.rows[0] {
		if c.header {
			hs = append(hs, strings.ToLower(c.text))
		}
	}
	return hs
}

// hasDataRow reports whether any row after the first has a data cell.
func (t table) hasDataRow() bool {
	for _, r := range t.rows[min(1, len(t.rows)):] {
		for _, c := range r {
			if !c.header {
				return true
			}
		}
	}
	return false
}

// record zips the header row with the first data row. Empty and null
// values are dropped.
func (t table) record() map[string]string {
	hs := t.headers()
	if len(hs) == 0 || len(t.rows) < 2 {
		return nil
	}
	var values []string
	for _, r := range t.rows[1:] {
		for _, c := range r {
			if !c.header {
				values = append(values, c.text)
			}
		}
		if values != nil {
			break
		}
	}
	rec := make(map[string]string, len(hs))
	for i, h := range hs {
		if i < len(values) && !isNullish(values[i]) {
			rec[h] = values[i]
		}
	}
	return rec
}

// pick returns the first non-empty value among keys.
func pick(rec map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(rec[k]); v != "" {
			return v
		}
	}
	return ""
}

// pairs collects lowercase key -> cleaned value from a two-group pattern.
// Later duplicates override earlier ones.
func pairs(re *regexp.Regexp, body string) map[string]string {
	out := map[string]string{}
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		key := strings.ToLower(strings.TrimSpace(m[1]))
		val := cleanText(m[2])
		if key == "" || isNullish(val) {
			continue
		}
		out[key] = val
	}
	return out
}

// resolution formats a plan act citation.
func resolution(number, date string) string {
	if number == "" {
		return ""
	}
	if date != "" {
		return "Uchwała " + number + " z dnia " + date
	}
	return "Uchwała " + number
}
