package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MalleshPillai/creation-2k26-nexus/cache"
	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	apperrors "github.com/MalleshPillai/creation-2k26-nexus/errors"
	"github.com/MalleshPillai/creation-2k26-nexus/projection"
	"github.com/MalleshPillai/creation-2k26-nexus/repositories"
)

type IMessageService interface {
	Send(ctx context.Context, cmd domain.SendMessageCommand) (Outcome, error)
	EventMessages(ctx context.Context, eventID domain.EventID) ([]domain.MessageView, error)
	GlobalMessages(ctx context.Context) ([]domain.MessageView, error)
	MyFeed(ctx context.Context) ([]domain.MessageView, error)
	AllMessages(ctx context.Context) ([]domain.MessageView, error)
}

type MessageService struct {
	messages  repositories.IMessageRepository
	assembler projection.Assembler
	store     *cache.Store
	identity  contract.IIdentity
	notifier  contract.INotifier
	log       *slog.Logger
}

func NewMessageService(
	messages repositories.IMessageRepository,
	assembler projection.Assembler,
	store *cache.Store,
	identity contract.IIdentity,
	notifier contract.INotifier,
	log *slog.Logger,
) *MessageService {
	return &MessageService{
		messages:  messages,
		assembler: assembler,
		store:     store,
		identity:  identity,
		notifier:  notifier,
		log:       log,
	}
}

// Send posts a staff message. A new message can surface in several scoped
// views at once (event, global, mine, all), so success invalidates every
// cached messages entry rather than picking scopes.
func (s *MessageService) Send(ctx context.Context, cmd domain.SendMessageCommand) (Outcome, error) {
	user := s.identity.CurrentUser()
	if user == nil {
		s.notifier.Notify(contract.NotifyInfo, "Sign In Required", "Sign in to send messages.")
		return OutcomeUnauthenticated, nil
	}

	cmd.Content = strings.TrimSpace(cmd.Content)
	if cmd.Content == "" {
		// Callers should have blocked this already; reject anyway.
		s.notifier.Notify(contract.NotifyError, "Failed to send message", apperrors.ErrEmptyContent.Error())
		return OutcomeFailed, apperrors.ErrEmptyContent
	}
	if cmd.Kind == "" {
		cmd.Kind = domain.KindAnnouncement
	}
	if !cmd.Kind.Valid() {
		s.notifier.Notify(contract.NotifyError, "Failed to send message", apperrors.ErrUnknownKind.Error())
		return OutcomeFailed, apperrors.ErrUnknownKind
	}
	if err := validate.Struct(cmd); err != nil {
		s.notifier.Notify(contract.NotifyError, "Failed to send message", err.Error())
		return OutcomeFailed, err
	}

	err := s.messages.Insert(ctx, repositories.NewMessage{
		SenderID: *user,
		EventID:  cmd.EventID,
		Content:  cmd.Content,
		Kind:     cmd.Kind,
		IsGlobal: cmd.IsGlobal,
	})
	if err != nil {
		s.notifier.Notify(contract.NotifyError, "Failed to send message", err.Error())
		return OutcomeFailed, err
	}

	s.store.Invalidate(cache.NewKey("messages"))
	s.notifier.Notify(contract.NotifySuccess, "Message Sent! 📨", "Your message has been sent successfully.")
	s.log.Info("message sent", "sender_id", *user, "kind", cmd.Kind, "global", cmd.IsGlobal)
	return OutcomeFresh, nil
}

func (s *MessageService) EventMessages(ctx context.Context, eventID domain.EventID) ([]domain.MessageView, error) {
	key := cache.NewKey("messages", "event", string(eventID))
	return cache.Fetch(ctx, s.store, key, eventID != "", func(ctx context.Context) ([]domain.MessageView, error) {
		rows, err := s.messages.ByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return s.assembler.MessageViews(ctx, rows)
	})
}

func (s *MessageService) GlobalMessages(ctx context.Context) ([]domain.MessageView, error) {
	key := cache.NewKey("messages", "global")
	return cache.Fetch(ctx, s.store, key, true, func(ctx context.Context) ([]domain.MessageView, error) {
		rows, err := s.messages.Global(ctx)
		if err != nil {
			return nil, err
		}
		return s.assembler.MessageViews(ctx, rows)
	})
}

// MyFeed is the signed-in user's recent-messages page; empty for anonymous
// visitors without touching the store.
func (s *MessageService) MyFeed(ctx context.Context) ([]domain.MessageView, error) {
	user := s.identity.CurrentUser()
	var id domain.UserID
	if user != nil {
		id = *user
	}
	key := cache.NewKey("messages", "mine", string(id))
	return cache.Fetch(ctx, s.store, key, user != nil, func(ctx context.Context) ([]domain.MessageView, error) {
		rows, err := s.messages.Recent(ctx)
		if err != nil {
			return nil, err
		}
		return s.assembler.MessageViews(ctx, rows)
	})
}

func (s *MessageService) AllMessages(ctx context.Context) ([]domain.MessageView, error) {
	key := cache.NewKey("messages", "all")
	return cache.Fetch(ctx, s.store, key, true, func(ctx context.Context) ([]domain.MessageView, error) {
		rows, err := s.messages.All(ctx)
		if err != nil {
			return nil, err
		}
		return s.assembler.MessageViews(ctx, rows)
	})
}
