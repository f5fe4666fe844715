// Package storage keeps archived act documents on disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"parcelgate/pkg/platform/sentinel"
)

// Storage stores objects under slash-separated keys.
type Storage interface {
	// Upload stores data under key and returns where it can be fetched.
	Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Type selects a backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config holds backend settings.
type Config struct {
	Type          Type   `yaml:"type"`
	LocalPath     string `yaml:"local_path"`
	S3Bucket      string `yaml:"s3_bucket"`
	S3Region      string `yaml:"s3_region"`
	S3Endpoint    string `yaml:"s3_endpoint"`
	PublicBaseURL string `yaml:"public_base_url"`
	AWSAccessKey  string `yaml:"-"`
	AWSSecretKey  string `yaml:"-"`
}

// ErrNotFound is returned by Download for a missing key.
var ErrNotFound = sentinel.ErrNotFound

// New builds the configured backend.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocal(cfg.LocalPath)
	case TypeS3:
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// ActKey builds the key for a project's act document: mpzp/<project>/<file>.
// Both segments are sanitized so the key cannot escape its prefix.
func ActKey(projectID, filename string) (string, error) {
	project := sanitize(projectID)
	file := sanitize(filename)
	if project == "" || file == "" {
		return "", errors.New("project id and filename are required")
	}
	if !strings.EqualFold(path.Ext(file), ".pdf") {
		file += ".pdf"
	}
	return "mpzp/" + project + "/" + file, nil
}

func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(s)
	s = strings.Trim(s, ".")
	return s
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".pdf":
		return "application/pdf"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
