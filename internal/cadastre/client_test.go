package cadastre

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelgate/internal/upstream"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(upstream.NewClient(), append([]Option{WithBaseURL(srv.URL + "/")}, opts...)...)
}

func TestClientByID(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"request": q.Get("request"),
			"id":      q.Get("id"),
			"result":  q.Get("result"),
			"srid":    q.Get("srid"),
		}
		_, _ = w.Write([]byte("0\n" + triangleRecord))
	})

	parcels, err := c.ByID(context.Background(), "141201_1.0001.6509")
	require.NoError(t, err)
	require.Len(t, parcels, 1)

	assert.Equal(t, "GetParcelById", gotQuery["request"])
	assert.Equal(t, "141201_1.0001.6509", gotQuery["id"])
	assert.Equal(t, resultFields, gotQuery["result"])
	assert.Equal(t, "4326", gotQuery["srid"])

	p := parcels[0]
	require.NotNil(t, p.Centroid)
	require.NotNil(t, p.AreaSquareMeters)
	assert.InDelta(t, (52.10+52.10+52.101)/3, p.Centroid.Lat, 1e-9)
	assert.InDelta(t, (20.80+20.801+20.80)/3, p.Centroid.Lng, 1e-9)

	dx := 0.001 * 111320 * math.Cos(52.10*math.Pi/180)
	dy := 0.001 * 111320.0
	assert.Equal(t, int64(math.Round(dx*dy/2)), *p.AreaSquareMeters)
}

func TestClientByIDOrNumber(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GetParcelByIdOrNr", r.URL.Query().Get("request"))
		assert.Equal(t, "Nadarzyn 6509", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte("2\n" + triangleRecord + "\n" + bareRecord))
	})

	parcels, err := c.ByIDOrNumber(context.Background(), "Nadarzyn 6509")
	require.NoError(t, err)
	assert.Len(t, parcels, 2)
}

func TestClientAtPoint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GetParcelByXY", r.URL.Query().Get("request"))
		assert.Equal(t, "20.8005,52.1003,4326", r.URL.Query().Get("xy"))
		_, _ = w.Write([]byte("0\n" + triangleRecord))
	})

	parcels, err := c.AtPoint(context.Background(), 52.1003, 20.8005)
	require.NoError(t, err)
	assert.Len(t, parcels, 1)
}

func TestClientFailures(t *testing.T) {
	t.Run("timeout is transport not not-found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}, WithTimeout(30*time.Millisecond))

		parcels, err := c.ByID(context.Background(), "141201_1.0001.6509")
		require.Error(t, err)
		assert.Nil(t, parcels)
		assert.True(t, upstream.IsTransport(err))
	})

	t.Run("http 500 is transport", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := c.ByIDOrNumber(context.Background(), "x 1")
		assert.True(t, upstream.IsTransport(err))
	})

	t.Run("negative status is upstream", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("-3 niepoprawny format"))
		})
		_, err := c.ByID(context.Background(), "bad")
		assert.True(t, upstream.IsUpstream(err))
	})
}

func TestParcelLabel(t *testing.T) {
	p, _ := ParseRecord(triangleRecord)
	assert.Equal(t, "6509, Nadarzyn (Nadarzyn)", p.Label())
}
