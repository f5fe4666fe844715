package zoning

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestParseLandUse(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		codes []string
	}{
		{
			name:  "explicit markers",
			body:  `<table><tr><td class="OZNACZENIE">RIVa</td></tr><tr><td class="OZNACZENIE">ŁIII</td></tr><tr><td class="OZNACZENIE">RIVa</td></tr></table>`,
			codes: []string{"RIVa", "ŁIII"},
		},
		{
			name:  "marker values that repeat the marker are ignored",
			body:  `<th>OZNACZENIE</th><td>x</td><p>OZNACZENIE_UZYTKU>OZNACZENIE</p> and then some padding text`,
			codes: []string{},
		},
		{
			name:  "taxonomy codes in a table without markers",
			body:  `<table><tr><td>Użytki</td><td>RIVa, PsV</td></tr></table>`,
			codes: []string{"RIVa", "PsV"},
		},
		{
			name:  "taxonomy recognises Ł and VIz",
			body:  `<div>klasoużytki: ŁIV RVIz LsIII</div>`,
			codes: []string{"ŁIV", "RVIz", "LsIII"},
		},
		{
			name:  "pipe fragment fallback",
			body:  "dzialka 12/3 | K, Dr, W | koniec odpowiedzi",
			codes: []string{"K", "Dr", "W"},
		},
		{
			name:  "nothing recognisable",
			body:  "<html><body>Brak danych dla punktu</body></html>",
			codes: []string{},
		},
		{
			name:  "too short to be usable",
			body:  "RIVa",
			codes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLandUse(tt.body)
			assert.Equal(t, tt.codes, got.Codes)
			assert.Equal(t, len(tt.codes) > 0, got.Available)
		})
	}
}

func TestParseLandUseTruncatesRaw(t *testing.T) {
	body := strings.Repeat("ż", 2000)
	got := ParseLandUse(body)
	assert.Equal(t, landUseRawRunes, utf8.RuneCountInString(got.Raw))
}
