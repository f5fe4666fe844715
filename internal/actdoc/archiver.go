package actdoc

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"parcelgate/internal/actdoc/storage"
	"parcelgate/internal/platform/metrics"
	"parcelgate/internal/upstream"
	dErrors "parcelgate/pkg/domain-errors"
)

const (
	downloadTimeout = 30 * time.Second
	// MinDocumentBytes rejects error pages served with a document type.
	MinDocumentBytes = 1000
	maxDocumentBytes = 64 << 20
)

// Stored describes an archived document.
type Stored struct {
	SourceURL string `json:"sourceUrl"`
	Key       string `json:"key"`
	Location  string `json:"location"`
	Size      int    `json:"size"`
}

// Archiver downloads act documents and keeps them in storage.
type Archiver struct {
	resolver *Resolver
	fetcher  upstream.Fetcher
	store    storage.Storage
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// ArchiverOption configures an Archiver.
type ArchiverOption func(*Archiver)

func WithDownloadTimeout(d time.Duration) ArchiverOption {
	return func(a *Archiver) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithArchiverMetrics(m *metrics.Metrics) ArchiverOption {
	return func(a *Archiver) { a.metrics = m }
}

func WithArchiverLogger(l *slog.Logger) ArchiverOption {
	return func(a *Archiver) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewArchiver(resolver *Resolver, fetcher upstream.Fetcher, store storage.Storage, opts ...ArchiverOption) *Archiver {
	a := &Archiver{
		resolver: resolver,
		fetcher:  fetcher,
		store:    store,
		timeout:  downloadTimeout,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Archive resolves actURL, downloads the document and stores it under
// mpzp/<projectID>/<filename>. An existing object is replaced.
func (a *Archiver) Archive(ctx context.Context, actURL, projectID, filename string) (*Stored, error) {
	key, err := storage.ActKey(projectID, filename)
	if err != nil || actURL == "" {
		a.metrics.IncrementArchive("invalid")
		return nil, dErrors.New(dErrors.CodeValidation, "url, projectId and filename are required")
	}

	docURL, ok := a.resolver.Resolve(ctx, actURL)
	if !ok {
		a.metrics.IncrementArchive("unresolved")
		return nil, dErrors.New(dErrors.CodeNotFound, "no downloadable link found")
	}

	resp, err := a.fetcher.Get(ctx, docURL,
		upstream.WithService(service),
		upstream.WithTimeout(a.timeout),
		upstream.WithMaxBody(maxDocumentBytes),
	)
	if err != nil {
		a.metrics.IncrementArchive("download_failed")
		return nil, upstream.ToDomain(err)
	}
	if !resp.OK() {
		a.metrics.IncrementArchive("download_failed")
		return nil, dErrors.New(dErrors.CodeUpstream, "document download returned an error status")
	}
	if len(resp.Body) < MinDocumentBytes {
		a.metrics.IncrementArchive("too_small")
		a.logger.WarnContext(ctx, "document too small", "url", docURL, "size", len(resp.Body))
		return nil, dErrors.New(dErrors.CodeFormat, "downloaded file is too small to be a document")
	}

	loc, err := a.store.Upload(ctx, key, "application/pdf", bytes.NewReader(resp.Body))
	if err != nil {
		a.metrics.IncrementArchive("store_failed")
		a.logger.ErrorContext(ctx, "failed to store document", "key", key, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}

	a.metrics.IncrementArchive("stored")
	a.logger.InfoContext(ctx, "act document archived", "key", key, "size", len(resp.Body))
	return &Stored{SourceURL: docURL, Key: key, Location: loc, Size: len(resp.Body)}, nil
}
