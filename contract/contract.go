//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
)

// IGateway is the remote data gateway. Implementations never retry; failures
// propagate verbatim as *gateway.Error values.
type IGateway interface {
	Query(ctx context.Context, q gateway.Query) ([]gateway.Record, error)
	Insert(ctx context.Context, collection string, record any) error
}

// IIdentity exposes the signed-in user, nil when anonymous. Owned by the
// account system; the portal only reads it before each mutation.
type IIdentity interface {
	CurrentUser() *domain.UserID
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyInfo    NotificationKind = "info"
	NotifyError   NotificationKind = "error"
)

// INotifier receives exactly one notification per mutation attempt.
// Delivery is fire-and-forget, never queued or retried.
type INotifier interface {
	Notify(kind NotificationKind, title, detail string)
}
