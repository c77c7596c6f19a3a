package realtime

import (
	"context"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
)

type EventSink interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

// Notifier delivers events to websocket listeners and, when a sink is set,
// mirrors them onto the event stream.
type Notifier struct {
	Hub  *Hub
	Sink EventSink
}

type streamEvent struct {
	Type      string `json:"type"`
	Namespace string `json:"namespace"`
	Data      any    `json:"data"`
}

func (n *Notifier) Publish(ctx context.Context, ev Event) {
	if n.Hub != nil {
		n.Hub.Publish(ctx, ev)
	}
	if n.Sink == nil {
		return
	}
	err := n.Sink.PublishEvent(ctx, ev.Key, streamEvent{Type: ev.Name, Namespace: ev.Namespace, Data: ev.Data})
	if err != nil {
		logging.FromContext(ctx).Error("event_stream_publish_failed", "event", ev.Name, "error", err)
	}
}
