package memory

import (
	"context"
	"time"

	"mortgage-connect-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// LeadDedupRepository is the single-instance fallback when Redis is not
// configured. cache.Add is the SETNX.
type LeadDedupRepository struct {
	cache *cache.Cache
}

func NewLeadDedupRepository() contract.LeadDedupRepository {
	return &LeadDedupRepository{cache: cache.New(10*time.Minute, time.Minute)}
}

func (r *LeadDedupRepository) Claim(_ context.Context, hash string, ttl time.Duration) (bool, string, error) {
	if err := r.cache.Add(hash, "", ttl); err == nil {
		return true, "", nil
	}
	existing, _ := r.cache.Get(hash)
	leadId, _ := existing.(string)
	return false, leadId, nil
}

func (r *LeadDedupRepository) Confirm(_ context.Context, hash, leadId string, ttl time.Duration) error {
	r.cache.Set(hash, leadId, ttl)
	return nil
}

func (r *LeadDedupRepository) Release(_ context.Context, hash string) error {
	r.cache.Delete(hash)
	return nil
}
