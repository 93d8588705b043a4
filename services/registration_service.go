package services

import (
	"context"
	"log/slog"

	"github.com/MalleshPillai/creation-2k26-nexus/cache"
	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
	"github.com/MalleshPillai/creation-2k26-nexus/projection"
	"github.com/MalleshPillai/creation-2k26-nexus/repositories"
)

type IRegistrationService interface {
	Register(ctx context.Context, eventID domain.EventID) (Outcome, error)
	EventRegistrations(ctx context.Context, eventID domain.EventID) ([]domain.RegistrationView, error)
	MyRegistrations(ctx context.Context) ([]domain.Registration, error)
}

type RegistrationService struct {
	registrations repositories.IRegistrationRepository
	assembler     projection.Assembler
	store         *cache.Store
	identity      contract.IIdentity
	notifier      contract.INotifier
	log           *slog.Logger
}

func NewRegistrationService(
	registrations repositories.IRegistrationRepository,
	assembler projection.Assembler,
	store *cache.Store,
	identity contract.IIdentity,
	notifier contract.INotifier,
	log *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		assembler:     assembler,
		store:         store,
		identity:      identity,
		notifier:      notifier,
		log:           log,
	}
}

// Register signs the current user up for an event. A duplicate attempt is the
// same logical outcome as the first success: the store's unique_user_event
// constraint rejects the second row and the violation is absorbed as
// OutcomeIdempotent. Concurrent attempts for the same pair may both reach the
// gateway; the constraint is the sole serialization point.
func (s *RegistrationService) Register(ctx context.Context, eventID domain.EventID) (Outcome, error) {
	user := s.identity.CurrentUser()
	if user == nil {
		s.notifier.Notify(contract.NotifyInfo, "Sign In Required", "Sign in to register for events.")
		return OutcomeUnauthenticated, nil
	}

	if err := validate.Struct(domain.RegisterCommand{EventID: eventID}); err != nil {
		s.notifier.Notify(contract.NotifyError, "Registration Failed", err.Error())
		return OutcomeFailed, err
	}

	err := s.registrations.Insert(ctx, *user, eventID)
	switch {
	case err == nil:
		s.store.Invalidate(cache.NewKey("registrations", "event", string(eventID)))
		s.store.Invalidate(cache.NewKey("registrations", "user", string(*user)))
		s.notifier.Notify(contract.NotifySuccess, "Registration Successful! 🎉", "You are now registered for this event.")
		s.log.Info("registration created", "user_id", *user, "event_id", eventID)
		return OutcomeFresh, nil

	case gateway.IsConstraint(err, gateway.ConstraintUserEvent):
		// No row changed, so no cache entry is stale.
		s.notifier.Notify(contract.NotifyInfo, "Already Registered", "You are already registered for this event.")
		return OutcomeIdempotent, nil

	default:
		s.notifier.Notify(contract.NotifyError, "Registration Failed", err.Error())
		return OutcomeFailed, err
	}
}

// EventRegistrations lists an event's participants with profiles attached.
func (s *RegistrationService) EventRegistrations(ctx context.Context, eventID domain.EventID) ([]domain.RegistrationView, error) {
	key := cache.NewKey("registrations", "event", string(eventID))
	return cache.Fetch(ctx, s.store, key, eventID != "", func(ctx context.Context) ([]domain.RegistrationView, error) {
		rows, err := s.registrations.ByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return s.assembler.RegistrationViews(ctx, rows)
	})
}

// MyRegistrations lists the current user's registrations; empty when nobody
// is signed in.
func (s *RegistrationService) MyRegistrations(ctx context.Context) ([]domain.Registration, error) {
	user := s.identity.CurrentUser()
	var id domain.UserID
	if user != nil {
		id = *user
	}
	key := cache.NewKey("registrations", "user", string(id))
	return cache.Fetch(ctx, s.store, key, user != nil, func(ctx context.Context) ([]domain.Registration, error) {
		return s.registrations.ByUser(ctx, id)
	})
}
