package actdoc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelgate/internal/upstream"
)

func TestFindDocumentLink(t *testing.T) {
	const base = "https://bip.nadarzyn.pl/uchwaly/akt.php?id=7"
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{
			name: "absolute",
			body: `<a href="https://bip.nadarzyn.pl/files/XXV-287.pdf">pobierz</a>`,
			want: "https://bip.nadarzyn.pl/files/XXV-287.pdf", ok: true,
		},
		{
			name: "root relative",
			body: `<p><a href='/files/plan.pdf'>plan</a></p>`,
			want: "https://bip.nadarzyn.pl/files/plan.pdf", ok: true,
		},
		{
			name: "relative resolves against origin",
			body: `<a href="files/plan.pdf">plan</a>`,
			want: "https://bip.nadarzyn.pl/files/plan.pdf", ok: true,
		},
		{
			name: "protocol relative",
			body: `<a href="//cdn.e-mapa.net/docs/uchwala.pdf">x</a>`,
			want: "https://cdn.e-mapa.net/docs/uchwala.pdf", ok: true,
		},
		{
			name: "query string and entities",
			body: `<a href="/get.pdf?id=4411&amp;typ=1">x</a>`,
			want: "https://bip.nadarzyn.pl/get.pdf?id=4411&typ=1", ok: true,
		},
		{
			name: "first pdf wins",
			body: `<link href="/style.css"><a href="/a.pdf">a</a><a href="/b.pdf">b</a>`,
			want: "https://bip.nadarzyn.pl/a.pdf", ok: true,
		},
		{
			name: "uppercase extension",
			body: `<a href="/SCAN.PDF">a</a>`,
			want: "https://bip.nadarzyn.pl/SCAN.PDF", ok: true,
		},
		{name: "no pdf", body: `<a href="/index.html">home</a>`},
		{name: "pdf in text only", body: `<p>plan.pdf</p>`},
		{name: "empty", body: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindDocumentLink(tt.body, base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverResolve(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/pdf,*/*", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><a href="/docs/akt.pdf">Pokaż treść uchwały</a></html>`))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>brak</html>`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := NewResolver(upstream.NewClient(), WithResolveTimeout(100*time.Millisecond))
	ctx := context.Background()

	got, ok := r.Resolve(ctx, srv.URL+"/direct")
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/direct", got)

	got, ok = r.Resolve(ctx, srv.URL+"/landing")
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/docs/akt.pdf", got)

	for _, path := range []string{"/empty", "/missing", "/slow"} {
		got, ok = r.Resolve(ctx, srv.URL+path)
		assert.False(t, ok, path)
		assert.Empty(t, got, path)
	}

	_, ok = r.Resolve(ctx, "  ")
	require.False(t, ok)
}
