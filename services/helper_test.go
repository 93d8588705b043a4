package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MalleshPillai/creation-2k26-nexus/cache"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
	"github.com/MalleshPillai/creation-2k26-nexus/projection"
	"github.com/MalleshPillai/creation-2k26-nexus/repositories"
	"github.com/MalleshPillai/creation-2k26-nexus/sink"
)

// staticIdentity pins the signed-in user for a test; nil means anonymous.
type staticIdentity struct {
	id *domain.UserID
}

func (s staticIdentity) CurrentUser() *domain.UserID { return s.id }

func signedIn(id domain.UserID) staticIdentity { return staticIdentity{id: &id} }

func anonymous() staticIdentity { return staticIdentity{} }

// fixture wires the full stack over an in-memory store, one isolated
// instance per test.
type fixture struct {
	gw            *gateway.BadgerGateway
	store         *cache.Store
	notifier      *sink.CollectingNotifier
	assembler     projection.Assembler
	events        repositories.EventRepository
	incharges     repositories.InchargeRepository
	messages      repositories.MessageRepository
	registrations repositories.RegistrationRepository
	profiles      repositories.ProfileRepository
	log           *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.Default()
	db, err := gateway.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gw := gateway.NewBadgerGateway(db, gateway.PortalSchema(), log)
	events := repositories.NewEventRepository(gw, log)
	profiles := repositories.NewProfileRepository(gw, log)
	return &fixture{
		gw:            gw,
		store:         cache.NewStore(log),
		notifier:      sink.NewCollectingNotifier(),
		assembler:     projection.NewAssembler(profiles, events, log),
		events:        events,
		incharges:     repositories.NewInchargeRepository(gw, log),
		messages:      repositories.NewMessageRepository(gw, log, 50, 100),
		registrations: repositories.NewRegistrationRepository(gw, log),
		profiles:      profiles,
		log:           log,
	}
}

func (f *fixture) registrationService(identity staticIdentity) *RegistrationService {
	return NewRegistrationService(f.registrations, f.assembler, f.store, identity, f.notifier, f.log)
}

func (f *fixture) messageService(identity staticIdentity) *MessageService {
	return NewMessageService(f.messages, f.assembler, f.store, identity, f.notifier, f.log)
}

func (f *fixture) eventService(identity staticIdentity) *EventService {
	return NewEventService(f.events, f.incharges, f.store, identity, f.log)
}
