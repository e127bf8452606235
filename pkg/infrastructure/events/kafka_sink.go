package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// kafkaMessageWriter abstracts kafka.Writer for testability
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink forwards store events to a Kafka topic, keyed by stream id so
// one analysis run stays on one partition
type KafkaSink struct {
	writer  kafkaMessageWriter
	types   map[string]bool
	timeout time.Duration
}

// NewKafkaSink creates a sink for the given brokers.
// brokers can be a comma-separated list of host:port.
func NewKafkaSink(brokers, topic string, eventTypes ...string) (*KafkaSink, error) {
	var addrs []string
	for _, a := range strings.Split(brokers, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafka sink needs at least one broker")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka sink needs a topic")
	}

	return newKafkaSink(&kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}, eventTypes...), nil
}

// NewKafkaSinkWith is only for tests to inject a fake writer
func NewKafkaSinkWith(w kafkaMessageWriter, eventTypes ...string) *KafkaSink {
	return newKafkaSink(w, eventTypes...)
}

func newKafkaSink(w kafkaMessageWriter, eventTypes ...string) *KafkaSink {
	types := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = true
	}
	return &KafkaSink{writer: w, types: types, timeout: 5 * time.Second}
}

// CanHandle reports whether the sink forwards this event type.
// A sink created without types forwards everything.
func (k *KafkaSink) CanHandle(eventType string) bool {
	return len(k.types) == 0 || k.types[eventType]
}

// Handle serializes the event as JSON and writes it synchronously
func (k *KafkaSink) Handle(event Event) error {
	payload, err := json.Marshal(BaseEvent{
		EventType:    event.Type(),
		Stream:       event.StreamID(),
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: event.Version(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Type(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.StreamID()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type())},
		},
	})
	if err != nil {
		return fmt.Errorf("write %s to kafka: %w", event.Type(), err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
