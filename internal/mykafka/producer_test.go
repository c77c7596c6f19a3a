package mykafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublishEvent_EncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "order_events"}

	err := p.PublishEvent(context.Background(), "7", map[string]any{"type": "new_order", "order_id": 7})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "7", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"type":"new_order","order_id":7}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishEvent_WriteError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("down")}}
	err := p.PublishEvent(context.Background(), "1", map[string]any{})
	require.Error(t, err)
}

func TestPublishEvent_MarshalError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}}
	err := p.PublishEvent(context.Background(), "1", make(chan int))
	require.Error(t, err)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil, "order_events")
	require.Error(t, err)

	p, err := NewProducer([]string{"localhost:9092"}, "order_events")
	require.NoError(t, err)
	assert.Equal(t, "order_events", p.Topic())
	require.NoError(t, p.Close())
}
