// Package app assembles the resolution engine from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"parcelgate/internal/actdoc"
	"parcelgate/internal/actdoc/storage"
	"parcelgate/internal/cadastre"
	"parcelgate/internal/diagnostics"
	diagkafka "parcelgate/internal/diagnostics/kafka"
	"parcelgate/internal/diagnostics/memory"
	diagpostgres "parcelgate/internal/diagnostics/postgres"
	"parcelgate/internal/platform/config"
	"parcelgate/internal/platform/metrics"
	"parcelgate/internal/resolution"
	"parcelgate/internal/upstream"
	"parcelgate/internal/zoning"
	"parcelgate/internal/zoning/dialect"
)

const (
	kafkaPartitions = 3
	kafkaReplicas   = 1
)

// App holds the wired components. Archiver and Lister may be nil.
type App struct {
	Service  *resolution.Service
	Resolver *actdoc.Resolver
	Archiver *actdoc.Archiver
	Lister   diagnostics.Lister
	Metrics  *metrics.Metrics

	closers []func()
}

// Options tune what Build wires.
type Options struct {
	// Registerer receives metrics; nil disables them.
	Registerer prometheus.Registerer
	// SkipStorage leaves the archiver unwired.
	SkipStorage bool
	// Diagnostics overrides cfg.Diagnostics.Backend when non-empty.
	Diagnostics string
}

// Build wires every component named by cfg.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	a := &App{}
	if opts.Registerer != nil {
		a.Metrics = metrics.New(opts.Registerer)
	}

	fetcher := upstream.NewClient(
		upstream.WithBreakers(cfg.Upstream.BreakerThreshold, cfg.Upstream.BreakerCooldown),
		upstream.WithMetrics(a.Metrics),
		upstream.WithLogger(logger),
	)

	parcels := cadastre.NewClient(fetcher,
		cadastre.WithBaseURL(cfg.Upstream.ULDKURL),
		cadastre.WithTimeout(cfg.Upstream.ULDKTimeout),
		cadastre.WithLogger(logger),
	)
	pages := zoning.NewFeaturePages(fetcher, cfg.Upstream.FeaturePageURL, cfg.Upstream.FeaturePageTimeout)
	classifier := dialect.NewClassifier(pages,
		dialect.WithFanOut(cfg.Upstream.FanOut),
		dialect.WithLogger(logger),
		dialect.WithMetrics(a.Metrics),
	)
	prober := zoning.NewProber(fetcher, classifier, zoning.Config{
		LandUseURL: cfg.Upstream.LandUseURL,
		ZoningURL:  cfg.Upstream.ZoningURL,
		Timeout:    cfg.Upstream.WMSTimeout,
	}, zoning.WithMetrics(a.Metrics), zoning.WithLogger(logger))

	backend := cfg.Diagnostics.Backend
	if opts.Diagnostics != "" {
		backend = opts.Diagnostics
	}
	sink, err := a.diagnostics(ctx, backend, cfg.Diagnostics, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Service = resolution.NewService(parcels, prober,
		resolution.WithSink(sink),
		resolution.WithMetrics(a.Metrics),
		resolution.WithLogger(logger),
	)
	a.Resolver = actdoc.NewResolver(fetcher,
		actdoc.WithResolveTimeout(cfg.Upstream.ActResolveTimeout),
		actdoc.WithResolverLogger(logger),
	)

	if !opts.SkipStorage {
		store, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init storage: %w", err)
		}
		a.Archiver = actdoc.NewArchiver(a.Resolver, fetcher, store,
			actdoc.WithDownloadTimeout(cfg.Upstream.ActDownloadTimeout),
			actdoc.WithArchiverMetrics(a.Metrics),
			actdoc.WithArchiverLogger(logger),
		)
	}
	return a, nil
}

func (a *App) diagnostics(ctx context.Context, backend string, cfg config.Diagnostics, logger *slog.Logger) (diagnostics.Sink, error) {
	switch backend {
	case config.BackendNone:
		return diagnostics.Discard{}, nil
	case config.BackendPostgres:
		pool, err := diagpostgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		store := diagpostgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		a.Lister = store
		return store, nil
	case config.BackendKafka:
		cl, err := diagkafka.NewClient(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, cl.Close)
		topic := cfg.KafkaTopic
		if topic == "" {
			topic = diagkafka.DefaultTopic
		}
		if err := diagkafka.EnsureTopic(ctx, cl, topic, kafkaPartitions, kafkaReplicas); err != nil {
			return nil, err
		}
		return diagkafka.New(cl, diagkafka.WithTopic(topic), diagkafka.WithLogger(logger)), nil
	default:
		store := memory.NewStore(cfg.MemoryCapacity)
		a.Lister = store
		return store, nil
	}
}

// Close releases backend connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
