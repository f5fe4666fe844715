package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"parcelgate/internal/cadastre"
	"parcelgate/internal/geometry"
	"parcelgate/internal/resolution"
	"parcelgate/internal/transport/http/mocks"
	"parcelgate/internal/zoning"
	dErrors "parcelgate/pkg/domain-errors"
	"parcelgate/pkg/testutil"
)

//go:generate mockgen -source=handlers_parcels.go -destination=mocks/parcel-mocks.go -package=mocks ParcelService
type ParcelHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ParcelHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestParcelHandlerSuite(t *testing.T) {
	suite.Run(t, new(ParcelHandlerSuite))
}

func newParcelHandler(t *testing.T) (chi.Router, *mocks.MockParcelService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockParcelService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	NewParcelHandler(mockService, logger).Register(r)
	return r, mockService
}

func (s *ParcelHandlerSuite) TestResolveFound() {
	r, svc := newParcelHandler(s.T())
	id := "141201_1.0001.6509"
	svc.EXPECT().Resolve(gomock.Any(), id).Return(&resolution.Resolution{
		Query:      resolution.Query{Raw: id, Kind: resolution.KindExactID},
		Candidates: []cadastre.Parcel{{RegionCode: id, Commune: "Nadarzyn", Number: "6509"}},
	}, nil)

	w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels?q="+id, nil))

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	candidates := resp["candidates"].([]any)
	s.Require().Len(candidates, 1)
	s.Equal(id, candidates[0].(map[string]any)["regionCode"])
	s.NotContains(resp, "error")
}

func (s *ParcelHandlerSuite) TestResolveJoinsDistrictAndNumber() {
	r, svc := newParcelHandler(s.T())
	svc.EXPECT().Resolve(gomock.Any(), "Nadarzyn 6509").Return(&resolution.Resolution{
		Query:      resolution.Query{Raw: "Nadarzyn 6509", Kind: resolution.KindFreeText},
		Candidates: []cadastre.Parcel{},
	}, nil)

	w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels?district=Nadarzyn&number=6509", nil))
	s.Equal(http.StatusOK, w.Code)
}

func (s *ParcelHandlerSuite) TestResolveValidationError() {
	r, svc := newParcelHandler(s.T())
	svc.EXPECT().Resolve(gomock.Any(), "a").
		Return(nil, dErrors.New(dErrors.CodeValidation, "query must be at least 2 characters"))

	w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels?q=a", nil))

	testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "validation_error")
	assert.Contains(s.T(), w.Body.String(), "query must be at least 2 characters")
}

func (s *ParcelHandlerSuite) TestResolveUpstreamFailureKeepsEmptyCandidates() {
	r, svc := newParcelHandler(s.T())
	svc.EXPECT().Resolve(gomock.Any(), "Nadarzyn 6509").Return(
		&resolution.Resolution{
			Query:      resolution.Query{Raw: "Nadarzyn 6509", Kind: resolution.KindFreeText},
			Candidates: []cadastre.Parcel{},
		},
		dErrors.New(dErrors.CodeUpstream, "cadastre returned status 503"),
	)

	w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels?q=Nadarzyn+6509", nil))

	s.Equal(http.StatusBadGateway, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal([]any{}, resp["candidates"])
	s.Equal("upstream_error", resp["error"])
	s.Equal("cadastre returned status 503", resp["error_description"])
}

func (s *ParcelHandlerSuite) TestParcelAt() {
	s.Run("missing coordinates", func() {
		r, _ := newParcelHandler(s.T())
		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels/at", nil))
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unparsable coordinates", func() {
		r, _ := newParcelHandler(s.T())
		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels/at?lat=abc&lng=20", nil))
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "bad_request")
	})

	s.Run("delegates parsed point", func() {
		r, svc := newParcelHandler(s.T())
		svc.EXPECT().ParcelAt(gomock.Any(), 52.1, 20.8).Return(&resolution.Resolution{
			Query:      resolution.Query{Raw: "52.100000,20.800000", Kind: resolution.KindPoint},
			Candidates: []cadastre.Parcel{},
			Site:       &resolution.Site{Zoning: zoning.Zoning{Status: zoning.StatusNotCovered}},
		}, nil)

		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/parcels/at?lat=52.1&lng=20.8", nil))

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		site := resp["site"].(map[string]any)
		s.Equal("not_covered", site["zoning"].(map[string]any)["status"])
	})
}

func (s *ParcelHandlerSuite) TestSite() {
	s.Run("without coordinates passes nil point", func() {
		r, svc := newParcelHandler(s.T())
		svc.EXPECT().Site(gomock.Any(), (*geometry.Point)(nil), "Nadarzyn").
			Return(&resolution.Site{Commune: "Nadarzyn", PortalURL: "https://nadarzyn.e-mapa.net/"}, nil)

		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/site?commune=Nadarzyn", nil))

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("https://nadarzyn.e-mapa.net/", resp["portalUrl"])
	})

	s.Run("with coordinates", func() {
		r, svc := newParcelHandler(s.T())
		svc.EXPECT().Site(gomock.Any(), &geometry.Point{Lat: 52.1, Lng: 20.8}, "").
			Return(&resolution.Site{}, nil)

		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/site?lat=52.1&lng=20.8", nil))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("service rejects point", func() {
		r, svc := newParcelHandler(s.T())
		svc.EXPECT().Site(gomock.Any(), gomock.Any(), "").
			Return(nil, dErrors.New(dErrors.CodeValidation, "latitude out of range"))

		w := testutil.DoRequest(r, httptest.NewRequest(http.MethodGet, "/site?lat=91&lng=20", nil))
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}
