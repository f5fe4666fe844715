package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"parcelgate/internal/diagnostics"
	"parcelgate/internal/geometry"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var out kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		out = append(out, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return out
}

func TestPublisherRecord(t *testing.T) {
	fp := &fakeProducer{}
	p := New(fp, WithTopic("diag"))

	err := p.Record(context.Background(), diagnostics.Unresolved{
		Point:    geometry.Point{Lat: 52.1, Lng: 20.8},
		ParcelID: "141201_1.0001.6509",
		Dialect:  "unrecognized",
		Reason:   "no dialect matched",
	})
	require.NoError(t, err)
	require.Len(t, fp.records, 1)

	rec := fp.records[0]
	assert.Equal(t, "diag", rec.Topic)
	assert.Equal(t, "141201_1.0001.6509", string(rec.Key))
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "unrecognized", string(rec.Headers[0].Value))

	var got diagnostics.Unresolved
	require.NoError(t, json.Unmarshal(rec.Value, &got))
	assert.Equal(t, "no dialect matched", got.Reason)
	assert.False(t, got.RecordedAt.IsZero())
}

func TestPublisherKeyFallsBackToID(t *testing.T) {
	fp := &fakeProducer{}
	require.NoError(t, New(fp).Record(context.Background(), diagnostics.Unresolved{Reason: "x"}))
	require.Len(t, fp.records, 1)
	assert.Equal(t, DefaultTopic, fp.records[0].Topic)
	assert.Len(t, fp.records[0].Key, 36)
}

func TestPublisherError(t *testing.T) {
	fp := &fakeProducer{err: errors.New("broker down")}
	err := New(fp).Record(context.Background(), diagnostics.Unresolved{Reason: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewClientRequiresBrokers(t *testing.T) {
	_, err := NewClient(nil, "")
	assert.Error(t, err)
}
