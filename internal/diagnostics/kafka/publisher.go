package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"parcelgate/internal/diagnostics"
)

// DefaultTopic carries unresolved zoning records.
const DefaultTopic = "parcelgate.unresolved-zoning"

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher writes unresolved records to a Kafka topic as JSON, keyed by
// parcel ID so that repeated failures for one parcel share a partition.
type Publisher struct {
	client producer
	topic  string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

func WithTopic(topic string) Option {
	return func(p *Publisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func New(client producer, opts ...Option) *Publisher {
	p := &Publisher{client: client, topic: DefaultTopic, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewClient connects to brokers with diagnostics defaults.
func NewClient(brokers []string, topic string) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(50*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return cl, nil
}

// EnsureTopic creates topic unless it already exists.
func EnsureTopic(ctx context.Context, cl *kgo.Client, topic string, partitions int32, replicas int16) error {
	adm := kadm.NewClient(cl)
	resp, err := adm.CreateTopics(ctx, partitions, replicas, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for name, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", name, r.Err)
		}
	}
	return nil
}

// Record publishes u and waits for the broker acknowledgement.
func (p *Publisher) Record(ctx context.Context, u diagnostics.Unresolved) error {
	u = diagnostics.Prepare(u, p.now())
	value, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal unresolved zoning: %w", err)
	}

	key := u.ParcelID
	if key == "" {
		key = u.ID.String()
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "dialect", Value: []byte(u.Dialect)},
		},
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "failed to publish unresolved zoning",
				"topic", p.topic,
				"parcel_id", u.ParcelID,
				"error", err,
			)
		}
		return fmt.Errorf("publish unresolved zoning: %w", err)
	}
	return nil
}
