// Package kafka publishes error records to a Kafka topic so downstream
// consumers can reprocess them.
package kafka

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/twmb/franz-go/pkg/kgo"

	collector "github.com/blank-1/datacollector/pkg/pipeline/core/collector"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the connection settings for the Kafka error sink.
type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// envelope is the JSON message published per error record.
type envelope struct {
	SourceID   string                 `json:"source_id"`
	Payload    map[string]interface{} `json:"payload"`
	Cause      string                 `json:"cause"`
	ReportedAt time.Time              `json:"reported_at"`
}

// Collector publishes failed records to a Kafka topic.
type Collector struct {
	client *kgo.Client
	topic  string
}

// New creates a Kafka-backed collector and verifies broker connectivity.
func New(ctx context.Context, cfg Config) (*Collector, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka error sink requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka error sink requires a topic")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ProducerLinger(50*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach kafka brokers: %w", err)
	}

	return &Collector{client: client, topic: cfg.Topic}, nil
}

// Report publishes one failed record. Publish failures are logged, never
// propagated to the reporting stage.
func (c *Collector) Report(ctx context.Context, r *record.Record, cause error) {
	msg := envelope{
		SourceID:   r.Header().SourceID,
		Payload:    r.Value(),
		Cause:      cause.Error(),
		ReportedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("Failed to serialize error record %s: %v", r.Header().SourceID, err)
		return
	}

	rec := &kgo.Record{
		Topic: c.topic,
		Key:   []byte(r.Header().SourceID),
		Value: value,
	}
	if err := c.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		logger.Errorf("Failed to publish error record %s: %v", r.Header().SourceID, err)
	}
}

// Close flushes pending messages and closes the client.
func (c *Collector) Close() {
	c.client.Close()
}

var _ collector.ErrorCollector = (*Collector)(nil)
