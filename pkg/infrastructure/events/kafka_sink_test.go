package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// fakeKafkaWriter implements kafkaMessageWriter for tests
type fakeKafkaWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.closed {
		return errors.New("writer closed")
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeKafkaWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeKafkaWriter) messages() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafka.Message(nil), f.msgs...)
}

func TestKafkaSink_Handle(t *testing.T) {
	fake := &fakeKafkaWriter{}
	sink := NewKafkaSinkWith(fake)

	completed := AnalysisCompleted{
		RunID:   "run-7",
		SaleIDs: []string{"S1"},
		Summary: entities.Summary{Total: 3, ShortageCount: 1, SufficientCount: 2, TotalNeeded: entities.NewQuantity(12)},
	}
	require.NoError(t, sink.Handle(NewAnalysisCompletedEvent(completed)))

	require.Len(t, fake.msgs, 1)
	msg := fake.msgs[0]
	assert.Equal(t, "analysis-run-7", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, AnalysisCompletedEvent, string(msg.Headers[0].Value))

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			RunID   string `json:"run_id"`
			Summary struct {
				Total       int     `json:"total"`
				TotalNeeded float64 `json:"total_needed"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, AnalysisCompletedEvent, decoded.Type)
	assert.Equal(t, "run-7", decoded.Data.RunID)
	assert.Equal(t, 3, decoded.Data.Summary.Total)
	assert.Equal(t, 12.0, decoded.Data.Summary.TotalNeeded)
}

func TestKafkaSink_Filtering(t *testing.T) {
	sink := NewKafkaSinkWith(&fakeKafkaWriter{}, ShortageIdentifiedEvent, WorkOrderCreatedEvent)

	assert.True(t, sink.CanHandle(ShortageIdentifiedEvent))
	assert.True(t, sink.CanHandle(WorkOrderCreatedEvent))
	assert.False(t, sink.CanHandle(AnalysisCompletedEvent))
	assert.True(t, NewKafkaSinkWith(&fakeKafkaWriter{}).CanHandle(AnalysisCompletedEvent))
}

func TestKafkaSink_WriteError(t *testing.T) {
	fake := &fakeKafkaWriter{err: errors.New("broker down")}
	sink := NewKafkaSinkWith(fake)

	err := sink.Handle(NewAnalysisRejectedEvent("run-1", "empty"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	require.NoError(t, sink.Close())
	assert.True(t, fake.closed)
}

func TestNewKafkaSink_Validation(t *testing.T) {
	_, err := NewKafkaSink(" , ", "mrp-events")
	assert.Error(t, err)

	_, err = NewKafkaSink("localhost:9092", " ")
	assert.Error(t, err)

	sink, err := NewKafkaSink("localhost:9092, localhost:9093", "mrp-events")
	require.NoError(t, err)
	assert.NotNil(t, sink)
}

func TestKafkaSink_SubscribedToStoreKeepsOrder(t *testing.T) {
	fake := &fakeKafkaWriter{}
	sink := NewKafkaSinkWith(fake)
	store := NewInMemoryEventStore()
	require.NoError(t, store.Subscribe([]string{AllEvents}, sink))

	const total = 200
	for i := 0; i < total; i++ {
		require.NoError(t, store.AppendEvent("analysis-run-1", NewEvent(DataIntegrityWarningEvent, "analysis-run-1", fmt.Sprintf("e%03d", i))))
	}

	// Close drains pending deliveries before the sink shuts down
	require.NoError(t, store.Close())
	require.NoError(t, sink.Close())

	msgs := fake.messages()
	require.Len(t, msgs, total)
	for i, msg := range msgs {
		var decoded struct {
			Data    string `json:"data"`
			Version int    `json:"version"`
		}
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, fmt.Sprintf("e%03d", i), decoded.Data)
		assert.Equal(t, i+1, decoded.Version)
		assert.Equal(t, "analysis-run-1", string(msg.Key))
	}

	assert.ErrorIs(t, store.AppendEvent("analysis-run-1", NewEvent(DataIntegrityWarningEvent, "analysis-run-1", "late")), ErrStoreClosed)
}
