//go:generate go run go.uber.org/mock/mockgen -source=registrations.go -destination=../mocks/mock_registration_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
)

type IRegistrationRepository interface {
	ByEvent(ctx context.Context, eventID domain.EventID) ([]domain.Registration, error)
	ByUser(ctx context.Context, userID domain.UserID) ([]domain.Registration, error)
	Insert(ctx context.Context, userID domain.UserID, eventID domain.EventID) error
}

type newRegistration struct {
	UserID  domain.UserID  `json:"user_id"`
	EventID domain.EventID `json:"event_id"`
}

type RegistrationRepository struct {
	gw  contract.IGateway
	log *slog.Logger
}

func NewRegistrationRepository(gw contract.IGateway, log *slog.Logger) RegistrationRepository {
	return RegistrationRepository{gw: gw, log: log}
}

func (r RegistrationRepository) ByEvent(ctx context.Context, eventID domain.EventID) ([]domain.Registration, error) {
	return r.query(ctx, gateway.Eq("event_id", string(eventID)))
}

func (r RegistrationRepository) ByUser(ctx context.Context, userID domain.UserID) ([]domain.Registration, error) {
	return r.query(ctx, gateway.Eq("user_id", string(userID)))
}

// Insert creates the (user, event) registration row. The store's
// unique_user_event constraint is the only defense against duplicates;
// concurrent attempts are serialized there, not here.
func (r RegistrationRepository) Insert(ctx context.Context, userID domain.UserID, eventID domain.EventID) error {
	return r.gw.Insert(ctx, gateway.CollectionRegistrations, newRegistration{
		UserID:  userID,
		EventID: eventID,
	})
}

func (r RegistrationRepository) query(ctx context.Context, filter gateway.Filter) ([]domain.Registration, error) {
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionRegistrations,
		Filters:    []gateway.Filter{filter},
		OrderBy:    []gateway.Order{gateway.Asc("created_at")},
	})
	if err != nil {
		return nil, err
	}
	registrations := make([]domain.Registration, 0, len(records))
	for _, record := range records {
		var registration domain.Registration
		if err := json.Unmarshal(record, &registration); err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}
	return registrations, nil
}
