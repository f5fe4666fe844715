package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelgate/internal/platform/metrics"
	dErrors "parcelgate/pkg/domain-errors"
	"parcelgate/pkg/platform/sentinel"
)

func TestClientGet(t *testing.T) {
	t.Run("returns body status and content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/pdf,*/*", r.Header.Get("Accept"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("0\nrecord"))
		}))
		defer srv.Close()

		c := NewClient(WithMetrics(metrics.New(prometheus.NewRegistry())))
		resp, err := c.Get(context.Background(), srv.URL, WithService("uldk"), WithAccept("application/pdf,*/*"))
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.Equal(t, "0\nrecord", resp.Text())
		assert.Contains(t, resp.ContentType, "text/plain")
	})

	t.Run("non-2xx is data not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		resp, err := NewClient().Get(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.False(t, resp.OK())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("deadline expiry is a transport error", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := NewClient().Get(context.Background(), srv.URL, WithService("kimpzp"), WithTimeout(50*time.Millisecond))
		require.Error(t, err)
		assert.True(t, IsTransport(err))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Contains(t, err.Error(), "kimpzp")
	})

	t.Run("body is capped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", maxBodyBytes+100)))
		}))
		defer srv.Close()

		resp, err := NewClient().Get(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Len(t, resp.Body, maxBodyBytes)

		resp, err = NewClient().Get(context.Background(), srv.URL, WithMaxBody(maxBodyBytes+10))
		require.NoError(t, err)
		assert.Len(t, resp.Body, maxBodyBytes+10)
	})
}

func TestClientBreakers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	c := NewClient(WithBreakers(2, time.Hour))
	ctx := context.Background()
	for range 2 {
		_, err := c.Get(ctx, deadURL, WithService("kiug"))
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "circuit open")
	}

	_, err := c.Get(ctx, deadURL, WithService("kiug"))
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Contains(t, err.Error(), "circuit open")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)

	_, err = c.Get(ctx, deadURL, WithService("uldk"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "circuit open", "breakers are per service")
}

func TestToDomain(t *testing.T) {
	assert.Nil(t, ToDomain(nil))
	assert.True(t, dErrors.HasCode(ToDomain(NewError(CategoryTransport, "uldk", "refused", nil)), dErrors.CodeTransport))
	assert.True(t, dErrors.HasCode(ToDomain(NewStatusError("uldk", "-3", "bad id")), dErrors.CodeUpstream))
	assert.True(t, dErrors.HasCode(ToDomain(NewError(CategoryBadData, "uldk", "garbage", nil)), dErrors.CodeFormat))
	assert.True(t, dErrors.HasCode(ToDomain(errors.New("x")), dErrors.CodeInternal))
}

func TestErrorMessage(t *testing.T) {
	err := NewStatusError("uldk", "-3", "service error")
	assert.Equal(t, "uldk [upstream]: service error (code -3)", err.Error())
	assert.True(t, IsUpstream(err))
	assert.False(t, IsTransport(err))
}
