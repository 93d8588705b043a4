package repositories

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/samber/lo"

	"github.com/MalleshPillai/creation-2k26-nexus/contract"
	"github.com/MalleshPillai/creation-2k26-nexus/domain"
	"github.com/MalleshPillai/creation-2k26-nexus/gateway"
)

type IInchargeRepository interface {
	ForUser(ctx context.Context, userID domain.UserID) (*domain.StudentIncharge, error)
	ByEventIDs(ctx context.Context, eventIDs []domain.EventID) ([]domain.StudentIncharge, error)
}

type InchargeRepository struct {
	gw  contract.IGateway
	log *slog.Logger
}

func NewInchargeRepository(gw contract.IGateway, log *slog.Logger) InchargeRepository {
	return InchargeRepository{gw: gw, log: log}
}

// ForUser returns the user's in-charge assignment, nil when the user is not
// an in-charge. Uniqueness per user is enforced upstream; only the first
// match is consulted.
func (r InchargeRepository) ForUser(ctx context.Context, userID domain.UserID) (*domain.StudentIncharge, error) {
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionIncharges,
		Filters:    []gateway.Filter{gateway.Eq("user_id", string(userID))},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	incharges, err := decodeIncharges(records)
	if err != nil || len(incharges) == 0 {
		return nil, err
	}
	return &incharges[0], nil
}

func (r InchargeRepository) ByEventIDs(ctx context.Context, eventIDs []domain.EventID) ([]domain.StudentIncharge, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	values := lo.Map(eventIDs, func(id domain.EventID, _ int) any { return string(id) })
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionIncharges,
		Filters:    []gateway.Filter{gateway.In("event_id", values...)},
	})
	if err != nil {
		return nil, err
	}
	return decodeIncharges(records)
}

func decodeIncharges(records []gateway.Record) ([]domain.StudentIncharge, error) {
	incharges := make([]domain.StudentIncharge, 0, len(records))
	for _, record := range records {
		var incharge domain.StudentIncharge
		if err := json.Unmarshal(record, &incharge); err != nil {
			return nil, err
		}
		incharges = append(incharges, incharge)
	}
	return incharges, nil
}
