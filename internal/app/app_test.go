package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelgate/internal/actdoc/storage"
	"parcelgate/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Storage = storage.Config{Type: storage.TypeLocal, LocalPath: t.TempDir()}
	return cfg
}

func TestBuildMemoryBackend(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t), slog.New(slog.DiscardHandler), Options{
		Registerer: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Service)
	assert.NotNil(t, a.Resolver)
	assert.NotNil(t, a.Archiver)
	assert.NotNil(t, a.Lister)
	assert.NotNil(t, a.Metrics)
}

func TestBuildWithoutDiagnosticsOrStorage(t *testing.T) {
	a, err := Build(context.Background(), testConfig(t), slog.New(slog.DiscardHandler), Options{
		SkipStorage: true,
		Diagnostics: config.BackendNone,
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Archiver)
	assert.Nil(t, a.Lister)
	assert.Nil(t, a.Metrics)
}

func TestBuildRejectsUnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Type = "ftp"
	_, err := Build(context.Background(), cfg, slog.New(slog.DiscardHandler), Options{})
	require.Error(t, err)
}
