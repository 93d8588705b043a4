package services

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/MalleshPillai/creation-2k26-nexus/cache"
	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/repositories"
)

type IEventService interface {
	Events(ctx context.Context) ([]domain.EventDetail, error)
	EventsByCategory(ctx context.Context, category domain.Category) ([]domain.EventDetail, error)
	Event(ctx context.Context, id *domain.EventID) (*domain.EventDetail, error)
	MyInchargeEvent(ctx context.Context) (*domain.EventDetail, error)
}

type EventService struct {
	events    repositories.IEventRepository
	incharges repositories.IInchargeRepository
	store     *cache.Store
	identity  contract.IIdentity
	log       *slog.Logger
}

func NewEventService(
	events repositories.IEventRepository,
	incharges repositories.IInchargeRepository,
	store *cache.Store,
	identity contract.IIdentity,
	log *slog.Logger,
) *EventService {
	return &EventService{
		events:    events,
		incharges: incharges,
		store:     store,
		identity:  identity,
		log:       log,
	}
}

// Events lists every event with in-charge assignments attached, technical
// first, each block name-ordered.
func (s *EventService) Events(ctx context.Context) ([]domain.EventDetail, error) {
	key := cache.NewKey("events")
	return cache.Fetch(ctx, s.store, key, true, func(ctx context.Context) ([]domain.EventDetail, error) {
		events, err := s.events.List(ctx)
		if err != nil {
			return nil, err
		}
		return s.withIncharges(ctx, events)
	})
}

func (s *EventService) EventsByCategory(ctx context.Context, category domain.Category) ([]domain.EventDetail, error) {
	key := cache.NewKey("events", string(category))
	return cache.Fetch(ctx, s.store, key, category.Valid(), func(ctx context.Context) ([]domain.EventDetail, error) {
		events, err := s.events.ListByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		return s.withIncharges(ctx, events)
	})
}

// Event resolves one event; a nil id disables the fetch entirely and a
// missing event comes back nil without error.
func (s *EventService) Event(ctx context.Context, id *domain.EventID) (*domain.EventDetail, error) {
	var eventID domain.EventID
	if id != nil {
		eventID = *id
	}
	key := cache.NewKey("event", string(eventID))
	return cache.Fetch(ctx, s.store, key, id != nil, func(ctx context.Context) (*domain.EventDetail, error) {
		event, err := s.events.Get(ctx, eventID)
		if err != nil || event == nil {
			return nil, err
		}
		details, err := s.withIncharges(ctx, []domain.Event{*event})
		if err != nil {
			return nil, err
		}
		return &details[0], nil
	})
}

// MyInchargeEvent is the IC dashboard path: the event assigned to the current
// user, nil when they are not an in-charge or not signed in.
func (s *EventService) MyInchargeEvent(ctx context.Context) (*domain.EventDetail, error) {
	user := s.identity.CurrentUser()
	var id domain.UserID
	if user != nil {
		id = *user
	}
	key := cache.NewKey("incharge", string(id))
	return cache.Fetch(ctx, s.store, key, user != nil, func(ctx context.Context) (*domain.EventDetail, error) {
		incharge, err := s.incharges.ForUser(ctx, id)
		if err != nil || incharge == nil {
			return nil, err
		}
		return s.Event(ctx, &incharge.EventID)
	})
}

// withIncharges performs the event→incharge join in one batched lookup,
// preserving event order. Events without assignments keep a nil slice.
func (s *EventService) withIncharges(ctx context.Context, events []domain.Event) ([]domain.EventDetail, error) {
	details := make([]domain.EventDetail, 0, len(events))
	if len(events) == 0 {
		return details, nil
	}
	ids := lo.Map(events, func(e domain.Event, _ int) domain.EventID { return e.ID })
	incharges, err := s.incharges.ByEventIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byEvent := lo.GroupBy(incharges, func(i domain.StudentIncharge) domain.EventID { return i.EventID })
	for _, event := range events {
		details = append(details, domain.EventDetail{
			Event:     event,
			Incharges: byEvent[event.ID],
		})
	}
	return details, nil
}
