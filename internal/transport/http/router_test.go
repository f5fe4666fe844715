package httptransport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"parcelgate/internal/diagnostics"
	"parcelgate/internal/diagnostics/memory"
	"parcelgate/internal/geometry"
	"parcelgate/internal/transport/http/mocks"
	"parcelgate/pkg/platform/middleware/requestid"
	"parcelgate/pkg/testutil"
)

func newTestRouter(t *testing.T, lister diagnostics.Lister) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	return NewRouter(Deps{
		Parcels:  mocks.NewMockParcelService(ctrl),
		Resolver: mocks.NewMockActResolver(ctrl),
		Lister:   lister,
		Gatherer: prometheus.NewRegistry(),
	})
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, nil)
	w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestid.Header))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)
	w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDiagnosticsUnresolved(t *testing.T) {
	t.Run("without lister", func(t *testing.T) {
		r := newTestRouter(t, nil)
		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/diagnostics/unresolved", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists newest first", func(t *testing.T) {
		store := memory.NewStore(10)
		ctx := context.Background()
		for _, commune := range []string{"Nadarzyn", "Raszyn", "Michałowice"} {
			require.NoError(t, store.Record(ctx, diagnostics.Unresolved{
				Point:   geometry.Point{Lat: 52.1, Lng: 20.8},
				Commune: commune,
				Reason:  "unrecognized response",
			}))
		}
		r := newTestRouter(t, store)

		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/diagnostics/unresolved?limit=2", nil))

		require.Equal(t, http.StatusOK, w.Code)
		resp := testutil.UnmarshalResponse[UnresolvedResponse](t, w)
		require.Len(t, resp.Records, 2)
		assert.Equal(t, "Michałowice", resp.Records[0].Commune)
		assert.Equal(t, "Raszyn", resp.Records[1].Commune)
	})

	t.Run("empty store renders empty list", func(t *testing.T) {
		r := newTestRouter(t, memory.NewStore(10))
		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/diagnostics/unresolved", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"records":[]}`, w.Body.String())
	})

	t.Run("bad limit", func(t *testing.T) {
		r := newTestRouter(t, memory.NewStore(10))
		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/diagnostics/unresolved?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
