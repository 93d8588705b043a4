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

type IProfileRepository interface {
	ByIDs(ctx context.Context, ids []domain.UserID) ([]domain.Profile, error)
}

type ProfileRepository struct {
	gw  contract.IGateway
	log *slog.Logger
}

func NewProfileRepository(gw contract.IGateway, log *slog.Logger) ProfileRepository {
	return ProfileRepository{gw: gw, log: log}
}

// ByIDs batch-resolves profiles. IDs with no matching profile are simply
// absent from the result; callers treat those as deleted upstream.
func (r ProfileRepository) ByIDs(ctx context.Context, ids []domain.UserID) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	values := lo.Map(ids, func(id domain.UserID, _ int) any { return string(id) })
	records, err := r.gw.Query(ctx, gateway.Query{
		Collection: gateway.CollectionProfiles,
		Filters:    []gateway.Filter{gateway.In("id", values...)},
	})
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(records))
	for _, record := range records {
		var profile domain.Profile
		if err := json.Unmarshal(record, &profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
