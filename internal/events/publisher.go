package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/nadscollection/storefront/internal/cart"
)

// Publisher emits cart events to Kafka. Publishing is best-effort, matching
// the persistence policy: a failed publish is logged and the mutation
// stands.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// ForSession binds the publisher to one session, yielding a notifier a cart
// store can hold.
func (p *Publisher) ForSession(sessionID string) *SessionNotifier {
	return &SessionNotifier{publisher: p, sessionID: sessionID}
}

func (p *Publisher) publish(ctx context.Context, ev CartEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Events] Failed to marshal %s event: %v", ev.EventType, err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.SessionID),
		Value: data,
		Time:  ev.OccurredAt,
	})
	if err != nil {
		log.Printf("[Events] Failed to publish %s event: %v", ev.EventType, err)
	}
}

// SessionNotifier implements cart.Notifier for one session.
type SessionNotifier struct {
	publisher *Publisher
	sessionID string
}

func (n *SessionNotifier) ItemAdded(ctx context.Context, l cart.Line) {
	n.publisher.publish(ctx, n.event(EventItemAdded, &l))
}

func (n *SessionNotifier) ItemRemoved(ctx context.Context, l cart.Line) {
	n.publisher.publish(ctx, n.event(EventItemRemoved, &l))
}

func (n *SessionNotifier) Cleared(ctx context.Context) {
	n.publisher.publish(ctx, n.event(EventCartCleared, nil))
}

// OrderSubmitted records a successful upstream order submission.
func (n *SessionNotifier) OrderSubmitted(ctx context.Context, total float64) {
	ev := n.event(EventOrderSubmitted, nil)
	ev.Price = total
	n.publisher.publish(ctx, ev)
}

func (n *SessionNotifier) event(eventType string, l *cart.Line) CartEvent {
	ev := CartEvent{
		ID:         uuid.New().String(),
		EventType:  eventType,
		SessionID:  n.sessionID,
		OccurredAt: time.Now(),
	}
	if l != nil {
		ev.LineKey = l.Key()
		ev.ProductID = int(l.ID)
		ev.Size = l.SelectedSize
		ev.Price = float64(l.Price)
	}
	return ev
}
