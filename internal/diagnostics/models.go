// Package diagnostics records points whose zoning could not be classified
// so that unsupported map-service dialects can be reviewed later.
package diagnostics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"parcelgate/internal/geometry"
	pstrings "parcelgate/pkg/platform/strings"
)

// MaxRawRunes bounds the diagnostic body kept with each record.
const MaxRawRunes = 1000

// Unresolved is one zoning probe that ended as unknown.
type Unresolved struct {
	ID         uuid.UUID      `json:"id"`
	Point      geometry.Point `json:"point"`
	Commune    string         `json:"commune,omitempty"`
	ParcelID   string         `json:"parcelId,omitempty"`
	Dialect    string         `json:"dialect,omitempty"`
	Reason     string         `json:"reason"`
	Raw        string         `json:"raw,omitempty"`
	RecordedAt time.Time      `json:"recordedAt"`
}

// Sink accepts unresolved records.
type Sink interface {
	Record(ctx context.Context, u Unresolved) error
}

// Lister returns the most recent records, newest first.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]Unresolved, error)
}

// Prepare fills the ID and timestamp when missing and truncates Raw.
func Prepare(u Unresolved, now time.Time) Unresolved {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.RecordedAt.IsZero() {
		u.RecordedAt = now
	}
	u.Raw = pstrings.Truncate(u.Raw, MaxRawRunes)
	return u
}

// Discard drops every record.
type Discard struct{}

func (Discard) Record(context.Context, Unresolved) error { return nil }
