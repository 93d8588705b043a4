package services

import (
	"context"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
	"github.com/MalleshPillai/creation-2k26-nexus/mocks"
)

func Test_Register_FreshThenIdempotentThenOtherEvent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	service := f.registrationService(signedIn("u1"))
	ctx := context.Background()

	outcome, err := service.Register(ctx, "e1")
	req.NoError(err)
	req.Equal(OutcomeFresh, outcome)

	outcome, err = service.Register(ctx, "e1")
	req.NoError(err)
	req.Equal(OutcomeIdempotent, outcome)
	req.True(outcome.Succeeded())

	outcome, err = service.Register(ctx, "e2")
	req.NoError(err)
	req.Equal(OutcomeFresh, outcome)

	// Three attempts, two stored registrations, one notification each.
	rows, err := f.registrations.ByUser(ctx, "u1")
	req.NoError(err)
	req.Len(rows, 2)
	notifications := f.notifier.Drain()
	req.Len(notifications, 3)
	req.Equal(contract.NotifySuccess, notifications[0].Kind)
	req.Equal("Already Registered", notifications[1].Title)
	req.Equal(contract.NotifyInfo, notifications[1].Kind)
	req.Equal(contract.NotifySuccess, notifications[2].Kind)
}

func Test_Register_Unauthenticated_NoGatewayCalls(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	// No expectations: any gateway call fails the test.
	gw := mocks.NewMockIGateway(ctrl)
	notifier := mocks.NewMockINotifier(ctrl)
	notifier.EXPECT().Notify(contract.NotifyInfo, "Sign In Required", gomock.Any())

	f := newFixture(t)
	service := NewRegistrationService(
		newMockBackedRegistrations(gw),
		f.assembler, f.store, anonymous(), notifier, f.log,
	)

	outcome, err := service.Register(context.Background(), "e1")
	req.NoError(err)
	req.Equal(OutcomeUnauthenticated, outcome)
}

func Test_Register_ConcurrentAttempts_ExactlyOneRow(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	service := f.registrationService(signedIn("u1"))
	ctx := context.Background()

	const attempts = 12
	outcomes := make(chan Outcome, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := service.Register(ctx, "e1")
			require.NoError(t, err)
			outcomes <- outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	var fresh, idempotent int
	for outcome := range outcomes {
		req.True(outcome.Succeeded(), "no attempt may fail: got %s", outcome)
		switch outcome {
		case OutcomeFresh:
			fresh++
		case OutcomeIdempotent:
			idempotent++
		}
	}
	req.Equal(1, fresh)
	req.Equal(attempts-1, idempotent)

	rows, err := f.registrations.ByEvent(ctx, "e1")
	req.NoError(err)
	req.Len(rows, 1)
	req.Len(f.notifier.Drain(), attempts)
}

func Test_Register_InvalidatesEventRegistrations(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	seedProfiles(t, f)

	otherUser := f.registrationService(signedIn("u2"))
	_, err := otherUser.Register(ctx, "e1")
	req.NoError(err)

	service := f.registrationService(signedIn("u1"))
	before, err := service.EventRegistrations(ctx, "e1")
	req.NoError(err)
	req.Len(before, 1)

	outcome, err := service.Register(ctx, "e1")
	req.NoError(err)
	req.Equal(OutcomeFresh, outcome)

	after, err := service.EventRegistrations(ctx, "e1")
	req.NoError(err)
	req.Len(after, 2)

	// Participants resolve through the assembler.
	named := lo.CountBy(after, func(v domain.RegistrationView) bool { return v.Participant != nil })
	req.Equal(2, named)
}

func Test_Register_TransportFailureSurfaced(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	repo := mocks.NewMockIRegistrationRepository(ctrl)
	repo.EXPECT().
		Insert(gomock.Any(), domain.UserID("u1"), domain.EventID("e1")).
		Return(&gateway.Error{Kind: gateway.KindTransportFailure, Message: "store unreachable"})

	service := NewRegistrationService(repo, f.assembler, f.store, signedIn("u1"), f.notifier, f.log)

	outcome, err := service.Register(context.Background(), "e1")
	req.Equal(OutcomeFailed, outcome)
	req.ErrorContains(err, "store unreachable")

	notifications := f.notifier.Drain()
	req.Len(notifications, 1)
	req.Equal(contract.NotifyError, notifications[0].Kind)
	req.Equal("Registration Failed", notifications[0].Title)
}

func Test_Register_OtherConstraintViolationIsFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	repo := mocks.NewMockIRegistrationRepository(ctrl)
	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&gateway.Error{Kind: gateway.KindConstraintViolation, Constraint: "some_other_check"})

	service := NewRegistrationService(repo, f.assembler, f.store, signedIn("u1"), f.notifier, f.log)

	outcome, err := service.Register(context.Background(), "e1")
	req.Equal(OutcomeFailed, outcome)
	req.Error(err)
}

func Test_MyRegistrations_AnonymousIsEmpty(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	service := f.registrationService(anonymous())

	rows, err := service.MyRegistrations(context.Background())
	req.NoError(err)
	req.Empty(rows)
}

func seedProfiles(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for _, doc := range []map[string]any{
		{"id": "u1", "name": "Asha", "email": "asha@college.edu", "department": "CSE"},
		{"id": "u2", "name": "Ravi", "email": "ravi@college.edu", "department": "ECE"},
	} {
		require.NoError(t, f.gw.Insert(ctx, gateway.CollectionProfiles, doc))
	}
}

// newMockBackedRegistrations adapts a mock gateway so an accidental store
// call shows up as an unexpected gomock invocation.
func newMockBackedRegistrations(gw contract.IGateway) mockBackedRegistrations {
	return mockBackedRegistrations{gw: gw}
}

type mockBackedRegistrations struct {
	gw contract.IGateway
}

func (m mockBackedRegistrations) ByEvent(ctx context.Context, eventID domain.EventID) ([]domain.Registration, error) {
	_, err := m.gw.Query(ctx, gateway.Query{Collection: gateway.CollectionRegistrations})
	return nil, err
}

func (m mockBackedRegistrations) ByUser(ctx context.Context, userID domain.UserID) ([]domain.Registration, error) {
	_, err := m.gw.Query(ctx, gateway.Query{Collection: gateway.CollectionRegistrations})
	return nil, err
}

func (m mockBackedRegistrations) Insert(ctx context.Context, userID domain.UserID, eventID domain.EventID) error {
	return m.gw.Insert(ctx, gateway.CollectionRegistrations, nil)
}
