package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/orderflow/backend/internal/application/ordering"
	"go.uber.org/zap"
)

// ChatFeed delivers chat messages published by any server instance
type ChatFeed interface {
	Subscribe(ctx context.Context, callback func(msg orderingapp.ChatMessagePayload)) error
}

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID      string
	OrderID string
	Email   string
	Chan    chan SSEMessage
	Done    chan struct{}
}

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// ChatSSEHandler streams order chat messages to clients over
// Server-Sent Events. Each client subscribes to a single order and only
// receives messages for that order.
type ChatSSEHandler struct {
	BaseHandler
	feed        ChatFeed
	chatService *orderingapp.ChatService
	logger      *zap.Logger
	clients     sync.Map // map[string]*SSEClient
	ctx         context.Context
	cancel      context.CancelFunc
	heartbeat   time.Duration
	started     bool
	startMu     sync.Mutex
	maxClients  int
}

// ChatSSEOption is a functional option for configuring the handler
type ChatSSEOption func(*ChatSSEHandler)

// WithSSELogger sets the logger for the handler
func WithSSELogger(logger *zap.Logger) ChatSSEOption {
	return func(h *ChatSSEHandler) {
		h.logger = logger
	}
}

// WithSSEHeartbeat sets the heartbeat interval
func WithSSEHeartbeat(interval time.Duration) ChatSSEOption {
	return func(h *ChatSSEHandler) {
		h.heartbeat = interval
	}
}

// WithSSEMaxClients sets the maximum number of concurrent SSE clients
func WithSSEMaxClients(max int) ChatSSEOption {
	return func(h *ChatSSEHandler) {
		h.maxClients = max
	}
}

// NewChatSSEHandler creates a new SSE handler for order chat streams
func NewChatSSEHandler(feed ChatFeed, chatService *orderingapp.ChatService, opts ...ChatSSEOption) *ChatSSEHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &ChatSSEHandler{
		feed:        feed,
		chatService: chatService,
		logger:      zap.NewNop(),
		ctx:         ctx,
		cancel:      cancel,
		heartbeat:   30 * time.Second,
		maxClients:  10000,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Start begins listening for chat messages and broadcasting to clients
func (h *ChatSSEHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("SSE handler already started")
	}

	go h.sendHeartbeats()

	go func() {
		err := h.feed.Subscribe(h.ctx, h.handleChatMessage)
		if err != nil && h.ctx.Err() == nil {
			h.logger.Error("SSE subscription error", zap.Error(err))
		}
	}()

	h.started = true
	h.logger.Info("Chat SSE handler started")
	return nil
}

// Stop stops the SSE handler
func (h *ChatSSEHandler) Stop() {
	h.cancel()

	h.clients.Range(func(key, value any) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		return true
	})

	h.logger.Info("Chat SSE handler stopped")
}

// handleChatMessage fans a published message out to the clients watching
// the same order
func (h *ChatSSEHandler) handleChatMessage(msg orderingapp.ChatMessagePayload) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal SSE event", zap.Error(err))
		return
	}

	sseMsg := SSEMessage{
		Event: "message",
		Data:  string(data),
		ID:    msg.MessageID,
	}

	h.clients.Range(func(key, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok || client.OrderID != msg.OrderID {
			return true
		}

		select {
		case client.Chan <- sseMsg:
			h.logger.Debug("Sent SSE message to client",
				zap.String("client_id", client.ID),
				zap.String("order_id", client.OrderID))
		default:
			// Channel full, client might be slow
			h.logger.Warn("Client channel full, dropping message",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

// sendHeartbeats periodically sends heartbeat messages to keep
// connections alive through proxies
func (h *ChatSSEHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			heartbeat := SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			}
			h.clients.Range(func(key, value any) bool {
				if client, ok := value.(*SSEClient); ok {
					select {
					case client.Chan <- heartbeat:
					default:
					}
				}
				return true
			})
		}
	}
}

// Stream establishes an SSE connection for one order's chat thread.
// Browsers cannot set an Authorization header on EventSource, so the
// JWT middleware also accepts the token as an access_token query param.
func (h *ChatSSEHandler) Stream(c *gin.Context) {
	if h.maxClients > 0 && h.GetClientCount() >= h.maxClients {
		c.JSON(503, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MAX_CONNECTIONS_REACHED",
				"message": "Maximum number of SSE connections reached",
			},
		})
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	actor := getActor(c)
	if err := h.chatService.CheckAccess(c.Request.Context(), actor, orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Buffer size allows messages to queue without blocking broadcast
	const sseMessageBufferSize = 100
	client := &SSEClient{
		ID:      uuid.New().String(),
		OrderID: orderID.String(),
		Email:   actor.Email,
		Chan:    make(chan SSEMessage, sseMessageBufferSize),
		Done:    make(chan struct{}),
	}

	h.clients.Store(client.ID, client)
	defer h.removeClient(client)

	h.logger.Info("SSE client connected",
		zap.String("client_id", client.ID),
		zap.String("order_id", client.OrderID),
		zap.String("email", client.Email))

	h.sendEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected (request context done)",
				zap.String("client_id", client.ID))
			return
		case <-client.Done:
			h.logger.Info("SSE client disconnected (done signal)",
				zap.String("client_id", client.ID))
			return
		case <-h.ctx.Done():
			h.logger.Info("SSE handler stopped, disconnecting client",
				zap.String("client_id", client.ID))
			return
		case msg := <-client.Chan:
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// removeClient forgets a client after its stream ends. The channel is
// never closed: broadcast goroutines may still hold the client from a
// Range and a send on a closed channel panics, so a racing message just
// lands in the buffer and is collected with the client.
func (h *ChatSSEHandler) removeClient(client *SSEClient) {
	h.clients.Delete(client.ID)
}

// sendEvent writes an SSE event to the response writer
func (h *ChatSSEHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// GetClientCount returns the number of connected SSE clients
func (h *ChatSSEHandler) GetClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
