package landuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw    string
		use    string
		parent string
		soil   string
		known  bool
	}{
		{raw: "RIVa", use: "R", soil: "IVa", known: true},
		{raw: "PsV", use: "Ps", soil: "V", known: true},
		{raw: "RIIIb", use: "R", soil: "IIIb", known: true},
		{raw: "ŁIV", use: "Ł", soil: "IV", known: true},
		{raw: "LsVI", use: "Ls", soil: "VI", known: true},
		{raw: "Wsr", use: "Wsr", known: true},
		{raw: "Bi", use: "Bi", known: true},
		{raw: "dr", use: "dr", known: true},
		{raw: "B-RIIIa", use: "R", parent: "B", soil: "IIIa", known: true},
		{raw: "Xyz", use: "Xyz"},
		{raw: "12/4", use: "12/4"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, ok := ParseCode(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.raw, c.Raw)
			assert.Equal(t, tt.use, c.UseCode)
			assert.Equal(t, tt.parent, c.Parent)
			assert.Equal(t, tt.soil, c.SoilClass)
			assert.Equal(t, tt.known, c.Use != nil)
		})
	}
}

func TestParseBlank(t *testing.T) {
	_, ok := ParseCode("   ")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	c, _ := ParseCode("RIVa")
	assert.Equal(t, "Grunty orne (pole / grunty orne); klasa IVa: Gleby średnie; odrolnienie łatwiejsze (decyzja starosty)", c.Summary)

	c, _ = ParseCode("B-RIIIa")
	assert.Contains(t, c.Summary, "na terenie: zabudowa mieszkaniowa")

	c, _ = ParseCode("Xyz")
	assert.Equal(t, "Xyz", c.Summary)
	assert.Nil(t, c.Soil)
}

func TestParseList(t *testing.T) {
	codes := ParseList("RIVa, PsV;; dr ,")
	require.Len(t, codes, 3)
	assert.Equal(t, "R", codes[0].UseCode)
	assert.Equal(t, "Ps", codes[1].UseCode)
	assert.Equal(t, "dr", codes[2].UseCode)

	assert.Empty(t, ParseList(" , ; "))
}

func TestDescribe(t *testing.T) {
	codes := Describe([]string{"N", "", "Ls"})
	require.Len(t, codes, 2)
	assert.Equal(t, "Nieużytki", codes[0].Use.Official)
	assert.Equal(t, "leśne", codes[1].Use.Category)
}

func TestLookup(t *testing.T) {
	u, ok := Lookup("Tp")
	require.True(t, ok)
	assert.Equal(t, "specjalne", u.Category)

	_, ok = Lookup("tp")
	assert.False(t, ok)

	s, ok := Soil("I")
	require.True(t, ok)
	assert.Equal(t, "najlepsza", s.Quality)
}
