package projection

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/MalleshPillai/creation-2k26-nexus/domain"
)

type stubProfiles struct {
	profiles []domain.Profile
	calls    int
	lastIDs  []domain.UserID
	err      error
}

func (s *stubProfiles) ByIDs(_ context.Context, ids []domain.UserID) ([]domain.Profile, error) {
	s.calls++
	s.lastIDs = ids
	return s.profiles, s.err
}

type stubEvents struct {
	events []domain.Event
	calls  int
	err    error
}

func (s *stubEvents) ByIDs(_ context.Context, _ []domain.EventID) ([]domain.Event, error) {
	s.calls++
	return s.events, s.err
}

func newTestAssembler(profiles *stubProfiles, events *stubEvents) Assembler {
	return NewAssembler(profiles, events, slog.Default())
}

func message(id string, sender domain.UserID, eventID *domain.EventID, at time.Time) domain.Message {
	return domain.Message{
		ID:        domain.MessageID(id),
		SenderID:  sender,
		EventID:   eventID,
		Content:   "Round 1 starts at 3pm",
		Kind:      domain.KindAnnouncement,
		CreatedAt: at,
	}
}

func Test_MessageViews_EmptyInput_NoLookups(t *testing.T) {
	req := require.New(t)
	profiles := &stubProfiles{}
	events := &stubEvents{}

	views, err := newTestAssembler(profiles, events).MessageViews(context.Background(), nil)
	req.NoError(err)
	req.NotNil(views)
	req.Empty(views)
	req.Zero(profiles.calls)
	req.Zero(events.calls)
}

func Test_MessageViews_ResolvesSendersAndEvents(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC)
	e1 := domain.EventID("e1")

	// s1 has a profile, s2 was deleted upstream.
	profiles := &stubProfiles{profiles: []domain.Profile{
		{ID: "s1", Name: "Asha", Email: "asha@college.edu"},
	}}
	events := &stubEvents{events: []domain.Event{
		{ID: e1, Name: "Code Sprint", Category: domain.Technical},
	}}

	input := []domain.Message{
		message("m1", "s1", &e1, at.Add(2*time.Minute)),
		message("m2", "s2", nil, at.Add(time.Minute)),
		message("m3", "s1", &e1, at),
	}

	views, err := newTestAssembler(profiles, events).MessageViews(context.Background(), input)
	req.NoError(err)
	req.Len(views, 3)

	// Input order preserved, source fields untouched.
	for i, view := range views {
		req.Equal(input[i], view.Message)
	}

	req.NotNil(views[0].Sender)
	req.Equal("Asha", views[0].Sender.Name)
	req.NotNil(views[0].Event)
	req.Equal("Code Sprint", views[0].Event.Name)

	// A dangling sender degrades to nil, it never fails the assembly.
	req.Nil(views[1].Sender)
	req.Nil(views[1].Event)

	req.NotNil(views[2].Sender)
	req.NotNil(views[2].Event)

	// One batched lookup each, with deduplicated sender ids.
	req.Equal(1, profiles.calls)
	req.ElementsMatch([]domain.UserID{"s1", "s2"}, profiles.lastIDs)
	req.Equal(1, events.calls)
}

func Test_MessageViews_NoEventIDs_SkipsEventLookup(t *testing.T) {
	req := require.New(t)
	profiles := &stubProfiles{}
	events := &stubEvents{}

	input := []domain.Message{message("m1", "s1", nil, time.Now().UTC())}
	views, err := newTestAssembler(profiles, events).MessageViews(context.Background(), input)
	req.NoError(err)
	req.Len(views, 1)
	req.Equal(1, profiles.calls)
	req.Zero(events.calls)
}

func Test_MessageViews_DanglingEventReference(t *testing.T) {
	req := require.New(t)
	gone := domain.EventID("deleted-event")
	profiles := &stubProfiles{profiles: []domain.Profile{{ID: "s1"}}}
	events := &stubEvents{}

	views, err := newTestAssembler(profiles, events).MessageViews(
		context.Background(),
		[]domain.Message{message("m1", "s1", &gone, time.Now().UTC())},
	)
	req.NoError(err)
	req.Len(views, 1)
	req.NotNil(views[0].Sender)
	req.Nil(views[0].Event)
}

func Test_MessageViews_LookupErrorPropagates(t *testing.T) {
	req := require.New(t)
	profiles := &stubProfiles{err: fmt.Errorf("profiles unreachable")}
	events := &stubEvents{}

	_, err := newTestAssembler(profiles, events).MessageViews(
		context.Background(),
		[]domain.Message{message("m1", "s1", nil, time.Now().UTC())},
	)
	req.ErrorContains(err, "profiles unreachable")
}

func Test_RegistrationViews_AttachesParticipants(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	profiles := &stubProfiles{profiles: []domain.Profile{
		{ID: "u1", Name: "Ravi", Department: "CSE"},
	}}

	input := []domain.Registration{
		{ID: "r1", UserID: "u1", EventID: "e1", CreatedAt: at},
		{ID: "r2", UserID: "u2", EventID: "e1", CreatedAt: at.Add(time.Minute)},
	}

	views, err := newTestAssembler(profiles, &stubEvents{}).RegistrationViews(context.Background(), input)
	req.NoError(err)
	req.Len(views, 2)
	req.Equal(input, lo.Map(views, func(v domain.RegistrationView, _ int) domain.Registration {
		return v.Registration
	}))
	req.NotNil(views[0].Participant)
	req.Equal("Ravi", views[0].Participant.Name)
	req.Nil(views[1].Participant)
}

func Test_RegistrationViews_EmptyInput(t *testing.T) {
	req := require.New(t)
	profiles := &stubProfiles{}

	views, err := newTestAssembler(profiles, &stubEvents{}).RegistrationViews(context.Background(), nil)
	req.NoError(err)
	req.Empty(views)
	req.Zero(profiles.calls)
}
