//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=../mocks/mock_event_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/samber/lo"

	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
)

type IEventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Event, error)
	Get(ctx context.Context, id domain.EventID) (*domain.Event, error)
	ByIDs(ctx context.Context, ids []domain.EventID) ([]domain.Event, error)
}

type EventRepository struct {
	gw  contract.IGateway
	log *slog.Logger
}

func NewEventRepository(gw contract.IGateway, log *slog.Logger) EventRepository {
	return EventRepository{gw: gw, log: log}
}

// List returns every event, technical before non-technical, each block in
// name order.
func (r EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionEvents,
		OrderBy:    []gateway.Order{gateway.Asc("category"), gateway.Asc("name")},
	})
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

func (r EventRepository) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Event, error) {
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionEvents,
		Filters:    []gateway.Filter{gateway.Eq("category", string(category))},
		OrderBy:    []gateway.Order{gateway.Asc("name")},
	})
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

// Get returns nil without error when the event does not exist.
func (r EventRepository) Get(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionEvents,
		Filters:    []gateway.Filter{gateway.Eq("id", string(id))},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	events, err := decodeEvents(records)
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

func (r EventRepository) ByIDs(ctx context.Context, ids []domain.EventID) ([]domain.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	values := lo.Map(ids, func(id domain.EventID, _ int) any { return string(id) })
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionEvents,
		Filters:    []gateway.Filter{gateway.In("id", values...)},
	})
	if err != nil {
		return nil, err
	}
	return decodeEvents(records)
}

func decodeEvents(records []gateway.Record) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(records))
	for _, record := range records {
		var event domain.Event
		if err := json.Unmarshal(record, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
