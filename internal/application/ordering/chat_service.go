package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/orderflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ChatMessagePayload is the event published for each chat message
type ChatMessagePayload struct {
	MessageID   string `json:"message_id"`
	OrderID     string `json:"order_id"`
	AuthorEmail string `json:"author_email"`
	AuthorName  string `json:"author_name"`
	AuthorRole  string `json:"author_role"`
	Body        string `json:"body"`
	CreatedAt   string `json:"created_at"`
	Timestamp   int64  `json:"timestamp"`
}

// ChatPublisher fans chat messages out to connected clients.
// Implemented by the infrastructure layer (Redis Pub/Sub).
type ChatPublisher interface {
	Publish(ctx context.Context, msg ChatMessagePayload) error
}

// ChatService handles order chat threads.
// Messages are persisted first; broadcast to live listeners is best effort.
type ChatService struct {
	messageRepo ordering.OrderMessageRepository
	orderRepo   ordering.OrderRepository
	publisher   ChatPublisher
	logger      *zap.Logger
}

// ChatServiceOption is a functional option for configuring ChatService
type ChatServiceOption func(*ChatService)

// WithChatLogger sets the logger
func WithChatLogger(logger *zap.Logger) ChatServiceOption {
	return func(s *ChatService) {
		s.logger = logger
	}
}

// NewChatService creates a new ChatService
func NewChatService(
	messageRepo ordering.OrderMessageRepository,
	orderRepo ordering.OrderRepository,
	publisher ChatPublisher,
	opts ...ChatServiceOption,
) *ChatService {
	service := &ChatService{
		messageRepo: messageRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Post persists a chat message on an order thread and broadcasts it
func (s *ChatService) Post(ctx context.Context, actor Actor, orderID uuid.UUID, req PostMessageRequest) (*MessageResponse, error) {
	if err := s.checkAccess(ctx, actor, orderID); err != nil {
		return nil, err
	}

	message, err := ordering.NewOrderMessage(orderID, actor.Email, actor.DisplayName, actor.Role.String(), req.Body)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.Save(ctx, message); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := ChatMessagePayload{
			MessageID:   message.ID.String(),
			OrderID:     message.OrderID.String(),
			AuthorEmail: message.AuthorEmail,
			AuthorName:  message.AuthorName,
			AuthorRole:  message.AuthorRole,
			Body:        message.Body,
			CreatedAt:   message.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := s.publisher.Publish(ctx, payload); err != nil {
			// The message is already stored; listeners will catch up on reload
			s.logger.Warn("Failed to broadcast chat message",
				zap.String("order_id", orderID.String()),
				zap.Error(err))
		}
	}

	response := ToMessageResponse(message)
	return &response, nil
}

// History returns all messages on an order thread in chronological order
func (s *ChatService) History(ctx context.Context, actor Actor, orderID uuid.UUID) ([]MessageResponse, error) {
	if err := s.checkAccess(ctx, actor, orderID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToMessageResponses(messages), nil
}

// CheckAccess verifies the actor may read the order's chat thread
func (s *ChatService) CheckAccess(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	return s.checkAccess(ctx, actor, orderID)
}

func (s *ChatService) checkAccess(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !actor.CanManageOrders() && !order.IsOwnedBy(actor.Email) {
		return shared.ErrNotFound
	}
	return nil
}
