package resolution

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// strokes are letters that carry no combining mark under NFD.
var strokes = strings.NewReplacer("ł", "l", "Ł", "l", "đ", "d", "ø", "o")

// PortalURL guesses the commune's e-mapa portal address from its name.
// The guess is cosmetic and may point at a portal that does not exist.
func PortalURL(commune string) string {
	return "https://" + portalSlug(commune) + ".e-mapa.net/"
}

func portalSlug(commune string) string {
	name := strings.ToLower(strings.TrimSpace(commune))
	if name == "" {
		return "unknown"
	}
	name = strokes.Replace(name)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(folded), "-")
}
