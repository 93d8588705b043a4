// Package projection builds denormalized view records from flat store rows.
// It resolves foreign keys in batch, never one lookup per row, and degrades
// a dangling reference to a nil relation instead of failing the assembly.
package projection

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/MalleshPillai/creation-2k26-nexus/domain"
)

// ProfileLookup and EventLookup are the two batched joins the assembler
// needs; the repositories satisfy them.
type ProfileLookup interface {
	ByIDs(ctx context.Context, ids []domain.UserID) ([]domain.Profile, error)
}

type EventLookup interface {
	ByIDs(ctx context.Context, ids []domain.EventID) ([]domain.Event, error)
}

type Assembler struct {
	profiles ProfileLookup
	events   EventLookup
	log      *slog.Logger
}

func NewAssembler(profiles ProfileLookup, events EventLookup, log *slog.Logger) Assembler {
	return Assembler{profiles: profiles, events: events, log: log}
}

// MessageViews attaches the sender profile and, for event-scoped messages,
// the event summary to each message. Output order mirrors the input. At most
// two lookups are issued, concurrently when both are needed; an empty input
// issues none.
func (a Assembler) MessageViews(ctx context.Context, messages []domain.Message) ([]domain.MessageView, error) {
	if len(messages) == 0 {
		return []domain.MessageView{}, nil
	}

	senderIDs := lo.Uniq(lo.Map(messages, func(m domain.Message, _ int) domain.UserID {
		return m.SenderID
	}))
	eventIDs := lo.Uniq(lo.FilterMap(messages, func(m domain.Message, _ int) (domain.EventID, bool) {
		if m.EventID == nil {
			return "", false
		}
		return *m.EventID, true
	}))

	var (
		profiles []domain.Profile
		events   []domain.Event
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		profiles, err = a.profiles.ByIDs(gctx, senderIDs)
		return err
	})
	if len(eventIDs) > 0 {
		group.Go(func() error {
			var err error
			events, err = a.events.ByIDs(gctx, eventIDs)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	profilesByID := lo.KeyBy(profiles, func(p domain.Profile) domain.UserID { return p.ID })
	eventsByID := lo.KeyBy(events, func(e domain.Event) domain.EventID { return e.ID })

	views := make([]domain.MessageView, 0, len(messages))
	for _, message := range messages {
		view := domain.MessageView{Message: message}
		view.Sender = a.resolveSender(profilesByID, message.SenderID)
		if message.EventID != nil {
			if event, ok := eventsByID[*message.EventID]; ok {
				summary := event.Summary()
				view.Event = &summary
			} else {
				a.log.Debug("message references missing event", "message_id", message.ID, "event_id", *message.EventID)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// RegistrationViews attaches the participant profile to each registration,
// preserving input order.
func (a Assembler) RegistrationViews(ctx context.Context, registrations []domain.Registration) ([]domain.RegistrationView, error) {
	if len(registrations) == 0 {
		return []domain.RegistrationView{}, nil
	}

	userIDs := lo.Uniq(lo.Map(registrations, func(r domain.Registration, _ int) domain.UserID {
		return r.UserID
	}))
	profiles, err := a.profiles.ByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	profilesByID := lo.KeyBy(profiles, func(p domain.Profile) domain.UserID { return p.ID })

	views := make([]domain.RegistrationView, 0, len(registrations))
	for _, registration := range registrations {
		views = append(views, domain.RegistrationView{
			Registration: registration,
			Participant:  a.resolveSender(profilesByID, registration.UserID),
		})
	}
	return views, nil
}

func (a Assembler) resolveSender(byID map[domain.UserID]domain.Profile, id domain.UserID) *domain.Profile {
	if profile, ok := byID[id]; ok {
		return &profile
	}
	a.log.Debug("profile missing for user", "user_id", id)
	return nil
}
