package cadastre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelgate/internal/upstream"
)

const (
	triangleRecord = "141201_1.0001.6509|mazowieckie|pruszkowski|Nadarzyn|Nadarzyn|6509|SRID=4326;POLYGON((20.80 52.10,20.801 52.10,20.80 52.101,20.80 52.10))"
	bareRecord     = "146501_8.0108.27|mazowieckie|Warszawa|Warszawa|0108|27|"
)

func TestParseRecord(t *testing.T) {
	t.Run("full record with geometry", func(t *testing.T) {
		p, ok := ParseRecord(triangleRecord)
		require.True(t, ok)
		assert.Equal(t, "141201_1.0001.6509", p.RegionCode)
		assert.Equal(t, "mazowieckie", p.Province)
		assert.Equal(t, "pruszkowski", p.County)
		assert.Equal(t, "Nadarzyn", p.Commune)
		assert.Equal(t, "Nadarzyn", p.District)
		assert.Equal(t, "6509", p.Number)
		assert.Equal(t, "POLYGON((20.80 52.10,20.801 52.10,20.80 52.101,20.80 52.10))", p.Geometry)
		require.NotNil(t, p.Centroid)
		require.NotNil(t, p.AreaSquareMeters)
	})

	t.Run("geometry keeps later pipes", func(t *testing.T) {
		p, ok := ParseRecord("a|b|c|d|e|f|POLYGON((0 0|1 0))")
		require.True(t, ok)
		assert.Equal(t, "POLYGON((0 0|1 0))", p.Geometry)
	})

	t.Run("empty geometry leaves derived values nil", func(t *testing.T) {
		p, ok := ParseRecord(bareRecord)
		require.True(t, ok)
		assert.Empty(t, p.Geometry)
		assert.Nil(t, p.Centroid)
		assert.Nil(t, p.AreaSquareMeters)
	})

	t.Run("short record rejected", func(t *testing.T) {
		for _, line := range []string{
			"foo|bar",
			"141201_1.0001.6509|mazowieckie",
			"141201_1.0001.6509|mazowieckie|pruszkowski|Nadarzyn|Nadarzyn|6509",
		} {
			_, ok := ParseRecord(line)
			assert.False(t, ok, line)
		}
	})

	t.Run("identity-less record rejected", func(t *testing.T) {
		_, ok := ParseRecord("|mazowieckie|pruszkowski|Nadarzyn|Nadarzyn||POLYGON((0 0,1 0,1 1))")
		assert.False(t, ok)
	})

	t.Run("line without pipes rejected", func(t *testing.T) {
		_, ok := ParseRecord("brak wyników")
		assert.False(t, ok)
	})
}

func TestParseStatusResponse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLen  int
		wantCat  upstream.Category
		wantCode string
	}{
		{name: "ok with record", text: "0\n" + triangleRecord + "\n", wantLen: 1},
		{name: "ok with surrounding blank lines", text: "\n 0 \n\n" + triangleRecord, wantLen: 1},
		{name: "record without status line", text: triangleRecord, wantLen: 1},
		{name: "not found", text: "-1 brak wyników\n", wantLen: 0},
		{name: "bare not found", text: "-1", wantLen: 0},
		{name: "service error", text: "-3 niepoprawny identyfikator", wantCat: upstream.CategoryUpstream, wantCode: "-3"},
		{name: "ok without record", text: "0", wantLen: 0},
		{name: "ok with garbage record", text: "0\nnonsense", wantCat: upstream.CategoryBadData},
		{name: "ok with short record", text: "0\nfoo|bar", wantCat: upstream.CategoryBadData},
		{name: "empty body", text: " \n ", wantCat: upstream.CategoryBadData},
		{name: "unexpected body", text: "<html>maintenance</html>", wantCat: upstream.CategoryBadData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatusResponse(tt.text)
			if tt.wantCat != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCat, upstream.GetCategory(err))
				if tt.wantCode != "" {
					var ue *upstream.Error
					require.ErrorAs(t, err, &ue)
					assert.Equal(t, tt.wantCode, ue.Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestParseCountResponse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantIDs []string
		wantCat upstream.Category
	}{
		{
			name:    "count then records",
			text:    "2\n" + triangleRecord + "\n" + bareRecord,
			wantIDs: []string{"141201_1.0001.6509", "146501_8.0108.27"},
		},
		{
			name:    "count with trailing text",
			text:    "1 wynik\n" + bareRecord,
			wantIDs: []string{"146501_8.0108.27"},
		},
		{
			name:    "zero count is valid and empty",
			text:    "0\n",
			wantIDs: nil,
		},
		{
			name:    "missing count line",
			text:    triangleRecord + "\n" + bareRecord,
			wantIDs: []string{"141201_1.0001.6509", "146501_8.0108.27"},
		},
		{
			name:    "junk lines between records skipped",
			text:    "2\n" + triangleRecord + "\n-- separator --\n" + bareRecord,
			wantIDs: []string{"141201_1.0001.6509", "146501_8.0108.27"},
		},
		{name: "not found", text: "-1 brak wyników", wantIDs: nil},
		{name: "service error", text: "-2 błąd", wantCat: upstream.CategoryUpstream},
		{name: "unexpected", text: "Service Unavailable", wantCat: upstream.CategoryBadData},
		{name: "short record only", text: "Nadarzyn|6509\n", wantCat: upstream.CategoryBadData},
		{
			name:    "short record among full ones dropped",
			text:    "2\n" + triangleRecord + "\nfoo|bar\n" + bareRecord,
			wantIDs: []string{"141201_1.0001.6509", "146501_8.0108.27"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCountResponse(tt.text)
			if tt.wantCat != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCat, upstream.GetCategory(err))
				return
			}
			require.NoError(t, err)
			var ids []string
			for _, p := range got {
				ids = append(ids, p.RegionCode)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestLeadingInt(t *testing.T) {
	n, ok := leadingInt("12 wyników")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = leadingInt("wyniki")
	assert.False(t, ok)
}
