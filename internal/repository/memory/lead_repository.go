package memory

import (
	"context"
	"sort"
	"time"

	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// LeadRepository keeps leads in process memory. Used when no database is
// configured and by tests.
type LeadRepository struct {
	cache *cache.Cache
}

func NewLeadRepository() contract.LeadRepository {
	return &LeadRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *LeadRepository) Create(_ context.Context, lead *entity.Lead) error {
	if lead.Id == uuid.Nil {
		lead.Id = uuid.New()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	stored := *lead
	r.cache.Set(lead.Id.String(), &stored, cache.NoExpiration)
	return nil
}

func (r *LeadRepository) Update(_ context.Context, lead *entity.Lead) error {
	now := time.Now()
	lead.UpdatedAt = &now
	stored := *lead
	r.cache.Set(lead.Id.String(), &stored, cache.NoExpiration)
	return nil
}

func (r *LeadRepository) FindById(_ context.Context, id uuid.UUID) (*entity.Lead, error) {
	x, found := r.cache.Get(id.String())
	if !found {
		return nil, nil
	}
	out := *x.(*entity.Lead)
	return &out, nil
}

func (r *LeadRepository) FindAll(_ context.Context, filter contract.LeadFilter) ([]*entity.Lead, error) {
	leads := r.matching(filter)
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})

	if filter.Limit <= 0 {
		return leads, nil
	}
	start := filter.Offset
	if start >= len(leads) {
		return []*entity.Lead{}, nil
	}
	end := start + filter.Limit
	if end > len(leads) {
		end = len(leads)
	}
	return leads[start:end], nil
}

func (r *LeadRepository) Count(_ context.Context, filter contract.LeadFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *LeadRepository) matching(filter contract.LeadFilter) []*entity.Lead {
	var out []*entity.Lead
	for _, item := range r.cache.Items() {
		lead := *item.Object.(*entity.Lead)
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		out = append(out, &lead)
	}
	return out
}
