package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	orderingapp "github.com/orderflow/backend/internal/application/ordering"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// defaultCloseTimeout bounds how long Close waits for the subscriber loop
const defaultCloseTimeout = 5 * time.Second

// Ensure RedisChatFeed implements the application port
var _ orderingapp.ChatPublisher = (*RedisChatFeed)(nil)

// RedisChatFeed fans chat messages out across instances using Redis Pub/Sub.
// Every server instance subscribes to one channel and forwards messages to
// its connected SSE clients.
type RedisChatFeed struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// ChatFeedOption is a functional option for configuring RedisChatFeed
type ChatFeedOption func(*RedisChatFeed)

// WithChatFeedChannel sets the Pub/Sub channel name
func WithChatFeedChannel(channel string) ChatFeedOption {
	return func(f *RedisChatFeed) {
		f.channel = channel
	}
}

// WithChatFeedLogger sets the logger for the feed
func WithChatFeedLogger(logger *zap.Logger) ChatFeedOption {
	return func(f *RedisChatFeed) {
		f.logger = logger
	}
}

// NewRedisChatFeed creates a chat feed with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisChatFeed(client *redis.Client, opts ...ChatFeedOption) *RedisChatFeed {
	feed := &RedisChatFeed{
		client:     client,
		ownsClient: false,
		channel:    "orderflow:chat",
		logger:     zap.NewNop(),
		doneCh:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(feed)
	}

	return feed
}

// Publish sends a chat message to all subscribed instances
func (f *RedisChatFeed) Publish(ctx context.Context, msg orderingapp.ChatMessagePayload) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixNano()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		f.logger.Error("Failed to marshal chat message",
			zap.String("order_id", msg.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := f.client.Publish(ctx, f.channel, data).Err(); err != nil {
		f.logger.Error("Failed to publish chat message",
			zap.String("channel", f.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	f.logger.Debug("Published chat message",
		zap.String("order_id", msg.OrderID),
		zap.String("channel", f.channel))

	return nil
}

// Subscribe starts listening for chat messages.
// The callback function is invoked for each received message.
// This method should be called in a goroutine as it blocks.
func (f *RedisChatFeed) Subscribe(ctx context.Context, callback func(msg orderingapp.ChatMessagePayload)) error {
	f.mu.Lock()
	if f.isRunning {
		f.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	f.isRunning = true
	f.mu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancelFn = cancel
	f.mu.Unlock()

	pubsub := f.client.Subscribe(subCtx, f.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(subCtx); err != nil {
		f.mu.Lock()
		f.isRunning = false
		f.mu.Unlock()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	f.logger.Info("Subscribed to chat channel", zap.String("channel", f.channel))

	ch := pubsub.Channel()

	for {
		select {
		case <-subCtx.Done():
			f.logger.Info("Chat subscription stopped")
			f.mu.Lock()
			f.isRunning = false
			f.mu.Unlock()
			f.markDone()
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				f.logger.Warn("Chat channel closed")
				f.mu.Lock()
				f.isRunning = false
				f.mu.Unlock()
				f.markDone()
				return nil
			}

			var payload orderingapp.ChatMessagePayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				f.logger.Error("Failed to unmarshal chat message",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}

			// Call the callback in a separate goroutine to prevent blocking
			go func(m orderingapp.ChatMessagePayload) {
				defer func() {
					if r := recover(); r != nil {
						f.logger.Error("Panic in chat message callback",
							zap.Any("panic", r))
					}
				}()
				callback(m)
			}(payload)
		}
	}
}

func (f *RedisChatFeed) markDone() {
	f.doneOnce.Do(func() {
		close(f.doneCh)
	})
}

// Close stops the subscription loop
func (f *RedisChatFeed) Close() error {
	f.mu.Lock()
	cancelFn := f.cancelFn
	f.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-f.doneCh:
		case <-time.After(defaultCloseTimeout):
			f.logger.Warn("Timeout waiting for chat subscription to stop")
		}
	}

	if f.ownsClient {
		return f.client.Close()
	}
	return nil
}
