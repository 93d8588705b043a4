package services

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
	"github.com/MalleshPillai/creation-2k26-nexus/mocks"
)

func seedEvents(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for _, doc := range []map[string]any{
		{"id": "e1", "name": "Code Sprint", "description": "Timed coding rounds", "category": "technical", "icon_name": "code"},
		{"id": "e2", "name": "Treasure Hunt", "description": "Campus-wide hunt", "category": "non_technical", "icon_name": "map"},
		{"id": "e3", "name": "Bug Bash", "description": "Find the planted bugs", "category": "technical", "icon_name": "bug"},
	} {
		require.NoError(t, f.gw.Insert(ctx, gateway.CollectionEvents, doc))
	}
	for _, doc := range []map[string]any{
		{"id": "ic1", "user_id": "u1", "event_id": "e1", "name": "Asha"},
		{"id": "ic2", "user_id": "u2", "event_id": "e1", "name": "Ravi"},
	} {
		require.NoError(t, f.gw.Insert(ctx, gateway.CollectionIncharges, doc))
	}
}

func Test_Events_AttachesIncharges(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	seedEvents(t, f)
	service := f.eventService(anonymous())

	details, err := service.Events(context.Background())
	req.NoError(err)
	req.Len(details, 3)

	// Technical block first, name-ordered within each block.
	names := lo.Map(details, func(d domain.EventDetail, _ int) string { return d.Name })
	req.Equal([]string{"Bug Bash", "Code Sprint", "Treasure Hunt"}, names)

	sprint, ok := lo.Find(details, func(d domain.EventDetail) bool { return d.ID == "e1" })
	req.True(ok)
	req.Len(sprint.Incharges, 2)

	hunt, ok := lo.Find(details, func(d domain.EventDetail) bool { return d.ID == "e2" })
	req.True(ok)
	req.Empty(hunt.Incharges)
}

func Test_Events_CachedUntilInvalidated(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	ctx := context.Background()

	events := mocks.NewMockIEventRepository(ctrl)
	events.EXPECT().List(gomock.Any()).Return([]domain.Event{{ID: "e1", Name: "Code Sprint"}}, nil).Times(1)
	service := NewEventService(events, f.incharges, f.store, anonymous(), f.log)

	for range lo.Range(3) {
		details, err := service.Events(ctx)
		req.NoError(err)
		req.Len(details, 1)
	}
}

func Test_EventsByCategory(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	seedEvents(t, f)
	service := f.eventService(anonymous())
	ctx := context.Background()

	technical, err := service.EventsByCategory(ctx, domain.Technical)
	req.NoError(err)
	req.Len(technical, 2)

	// An unknown category disables the fetch instead of querying the store.
	unknown, err := service.EventsByCategory(ctx, "cultural")
	req.NoError(err)
	req.Empty(unknown)
}

func Test_Event_NilAndMissing(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	seedEvents(t, f)
	service := f.eventService(anonymous())
	ctx := context.Background()

	detail, err := service.Event(ctx, nil)
	req.NoError(err)
	req.Nil(detail)

	detail, err = service.Event(ctx, lo.ToPtr(domain.EventID("nope")))
	req.NoError(err)
	req.Nil(detail)

	detail, err = service.Event(ctx, lo.ToPtr(domain.EventID("e1")))
	req.NoError(err)
	req.NotNil(detail)
	req.Equal("Code Sprint", detail.Name)
	req.Len(detail.Incharges, 2)
}

func Test_MyInchargeEvent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	seedEvents(t, f)
	ctx := context.Background()

	detail, err := f.eventService(signedIn("u1")).MyInchargeEvent(ctx)
	req.NoError(err)
	req.NotNil(detail)
	req.Equal(domain.EventID("e1"), detail.ID)

	// u3 is not assigned anywhere.
	detail, err = f.eventService(signedIn("u3")).MyInchargeEvent(ctx)
	req.NoError(err)
	req.Nil(detail)

	detail, err = f.eventService(anonymous()).MyInchargeEvent(ctx)
	req.NoError(err)
	req.Nil(detail)
}

func Test_Events_StoreFailureSurfaced(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	events := mocks.NewMockIEventRepository(ctrl)
	events.EXPECT().
		List(gomock.Any()).
		Return(nil, &gateway.Error{Kind: gateway.KindTransportFailure, Message: "store unreachable"}).
		Times(2)
	service := NewEventService(events, f.incharges, f.store, anonymous(), f.log)

	_, err := service.Events(context.Background())
	req.ErrorContains(err, "store unreachable")

	// Failures are not cached; the next call hits the repository again.
	_, err = service.Events(context.Background())
	req.ErrorContains(err, "store unreachable")
}
