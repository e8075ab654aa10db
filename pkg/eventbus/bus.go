package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/stakalivres/notifymail/pkg/logger"
)

// Message is a published event as seen by a handler.
type Message[T any] struct {
	ID        string
	Topic     string
	Payload   T
	Timestamp time.Time

	// values of the publish context, detached from its cancellation
	ctx context.Context
}

// Handler consumes events of one topic. A returned error or a panic is
// logged by the bus and never reaches the publisher.
type Handler[T any] func(ctx context.Context, msg Message[T]) error

// Bus is a topic-keyed publish/subscribe registry.
//
// Every subscription owns a pending list drained by its own consumer
// goroutine, so handlers of one topic run in publish order and a slow or
// failing handler never blocks the publisher or the other handlers.
type Bus[T any] struct {
	opts    *options
	mu      sync.RWMutex
	topics  map[string][]*Subscription[T]
	closed  bool
	wg      sync.WaitGroup
	pending atomic.Int64
}

// New creates a new event bus.
func New[T any](opts ...Option) *Bus[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Bus[T]{
		opts:   o,
		topics: make(map[string][]*Subscription[T]),
	}
}

// Subscribe registers handler on topic and starts its consumer.
// The name identifies the handler in logs.
func (b *Bus[T]) Subscribe(topic, name string, handler Handler[T]) (*Subscription[T], error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	sub := &Subscription[T]{
		id:       uuid.New().String(),
		topic:    topic,
		name:     name,
		handler: handler,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		bus:     b,
	}
	b.topics[topic] = append(b.topics[topic], sub)

	b.wg.Add(1)
	go sub.consume()

	b.opts.logger.Debug("event handler subscribed",
		logger.Topic(topic),
		logger.Handler(name),
	)

	return sub, nil
}

// Publish hands payload to every subscription of topic in registration
// order. It never waits for handlers. Handlers receive a context with the
// values of ctx but not its deadline or cancellation, so a publisher whose
// context is already done still delivers. Publishing to a topic without
// subscribers is not an error; the event is lost.
func (b *Bus[T]) Publish(ctx context.Context, topic string, payload T) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	subs := slices.Clone(b.topics[topic])
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.opts.logger.DebugContext(ctx, "no subscribers for event", logger.Topic(topic))
		return nil
	}

	msg := Message[T]{
		ID:        uuid.New().String(),
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
		ctx:       context.WithoutCancel(ctx),
	}

	for _, sub := range subs {
		if !sub.send(msg, b.opts.maxPending) {
			b.opts.logger.WarnContext(ctx, "event dropped",
				logger.Topic(topic),
				logger.Handler(sub.name),
				slog.String("event_id", msg.ID),
			)
			if b.opts.onDrop != nil {
				b.opts.onDrop(topic)
			}
		}
	}
	return nil
}

// Drain blocks until every published event has been handled or ctx is done.
func (b *Bus[T]) Drain(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for b.pending.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// SubscriberCount returns the number of subscriptions on topic.
func (b *Bus[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

// Topics returns the topics that currently have subscribers.
func (b *Bus[T]) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	topics := make([]string, 0, len(b.topics))
	for name, subs := range b.topics {
		if len(subs) > 0 {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics
}

// Close stops accepting events, lets consumers finish what is buffered and
// waits for them up to the shutdown timeout.
func (b *Bus[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	var subs []*Subscription[T]
	for _, list := range b.topics {
		subs = append(subs, list...)
	}
	b.topics = make(map[string][]*Subscription[T])
	b.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(b.opts.shutdownTimeout):
		return ErrShutdownTimeout
	}
}

func (b *Bus[T]) remove(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.topics[sub.topic] = slices.DeleteFunc(b.topics[sub.topic], func(s *Subscription[T]) bool {
		return s == sub
	})
	if len(b.topics[sub.topic]) == 0 {
		delete(b.topics, sub.topic)
	}
}

// Subscription is a registered handler with its own consumer goroutine.
type Subscription[T any] struct {
	id      string
	topic   string
	name    string
	handler Handler[T]
	wake    chan struct{}
	done    chan struct{}
	bus     *Bus[T]

	mu      sync.Mutex
	items   []Message[T]
	stopped bool
}

func (s *Subscription[T]) ID() string    { return s.id }
func (s *Subscription[T]) Topic() string { return s.topic }
func (s *Subscription[T]) Name() string  { return s.name }

// Done is closed once the consumer has handled every pending event and exited.
func (s *Subscription[T]) Done() <-chan struct{} { return s.done }

// Pending returns the number of events waiting for the handler.
func (s *Subscription[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close unsubscribes. Events already pending are still handled.
func (s *Subscription[T]) Close() error {
	s.bus.remove(s)
	s.stop()
	return nil
}

func (s *Subscription[T]) stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.signal()
}

func (s *Subscription[T]) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// send appends msg without blocking. It fails only when the subscription is
// stopped or already holds limit events (limit <= 0 means no cap).
func (s *Subscription[T]) send(msg Message[T], limit int) bool {
	s.mu.Lock()
	if s.stopped || (limit > 0 && len(s.items) >= limit) {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items, msg)
	s.bus.pending.Add(1)
	s.mu.Unlock()

	s.signal()
	return true
}

func (s *Subscription[T]) next() (Message[T], bool) {
	for {
		s.mu.Lock()
		if len(s.items) > 0 {
			msg := s.items[0]
			s.items[0] = Message[T]{}
			s.items = s.items[1:]
			s.mu.Unlock()
			return msg, true
		}
		stopped := s.stopped
		s.mu.Unlock()
		if stopped {
			return Message[T]{}, false
		}
		<-s.wake
	}
}

func (s *Subscription[T]) consume() {
	defer s.bus.wg.Done()
	defer close(s.done)

	for {
		msg, ok := s.next()
		if !ok {
			return
		}
		s.handle(msg)
	}
}

func (s *Subscription[T]) handle(msg Message[T]) {
	defer s.bus.pending.Add(-1)

	log := s.bus.opts.logger
	ctx := msg.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		if r := recover(); r != nil {
			log.LogAttrs(ctx, slog.LevelError, "event handler panicked",
				logger.Topic(s.topic),
				logger.Handler(s.name),
				slog.String("event_id", msg.ID),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	if err := s.handler(ctx, msg); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "event handler failed",
			logger.Topic(s.topic),
			logger.Handler(s.name),
			slog.String("event_id", msg.ID),
			logger.Error(err),
		)
	}
}
