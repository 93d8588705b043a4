//go:generate go run go.uber.org/mock/mockgen -source=messages.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
)

type IMessageRepository interface {
	ByEvent(ctx context.Context, eventID domain.EventID) ([]domain.Message, error)
	Global(ctx context.Context) ([]domain.Message, error)
	Recent(ctx context.Context) ([]domain.Message, error)
	All(ctx context.Context) ([]domain.Message, error)
	Insert(ctx context.Context, message NewMessage) error
}

// NewMessage is the insert shape; the store fills in id and created_at.
type NewMessage struct {
	SenderID domain.UserID      `json:"sender_id"`
	EventID  *domain.EventID    `json:"event_id"`
	Content  string             `json:"content"`
	Kind     domain.MessageKind `json:"message_type"`
	IsGlobal bool               `json:"is_global"`
}

type MessageRepository struct {
	gw       contract.IGateway
	log      *slog.Logger
	pageSize int
	allSize  int
}

// NewMessageRepository builds the message store access layer. pageSize caps
// the scoped listings (per event, global, recent), allSize the unscoped one.
func NewMessageRepository(gw contract.IGateway, log *slog.Logger, pageSize, allSize int) MessageRepository {
	return MessageRepository{gw: gw, log: log, pageSize: pageSize, allSize: allSize}
}

func (r MessageRepository) ByEvent(ctx context.Context, eventID domain.EventID) ([]domain.Message, error) {
	return r.query(ctx, []gateway.Filter{gateway.Eq("event_id", string(eventID))}, r.pageSize)
}

func (r MessageRepository) Global(ctx context.Context) ([]domain.Message, error) {
	return r.query(ctx, []gateway.Filter{gateway.Eq("is_global", true)}, r.pageSize)
}

// Recent is the "my messages" page: the latest messages across all scopes.
func (r MessageRepository) Recent(ctx context.Context) ([]domain.Message, error) {
	return r.query(ctx, nil, r.pageSize)
}

func (r MessageRepository) All(ctx context.Context) ([]domain.Message, error) {
	return r.query(ctx, nil, r.allSize)
}

func (r MessageRepository) Insert(ctx context.Context, message NewMessage) error {
	return r.gw.Insert(ctx, gateway.CollectionMessages, message)
}

// query always orders strictly by creation time descending; every message
// listing the portal shows is newest first.
func (r MessageRepository) query(ctx context.Context, filters []gateway.Filter, limit int) ([]domain.Message, error) {
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionMessages,
		Filters:    filters,
		OrderBy:    []gateway.Order{gateway.Desc("created_at")},
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(records))
	for _, record := range records {
		var message domain.Message
		if err := json.Unmarshal(record, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}
