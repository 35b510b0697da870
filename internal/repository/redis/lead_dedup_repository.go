package redis

import (
	"context"
	"errors"
	"time"

	"mortgage-connect-be/internal/repository/contract"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "lead:dedup:"

// pendingMarker is stored while the first request is still talking to the CRM.
const pendingMarker = "pending"

// LeadDedupRepository shares submission claims across instances.
type LeadDedupRepository struct {
	rdb *goredis.Client
}

func NewLeadDedupRepository(rdb *goredis.Client) contract.LeadDedupRepository {
	return &LeadDedupRepository{rdb: rdb}
}

func (r *LeadDedupRepository) Claim(ctx context.Context, hash string, ttl time.Duration) (bool, string, error) {
	ok, err := r.rdb.SetNX(ctx, keyPrefix+hash, pendingMarker, ttl).Result()
	if err != nil {
		return false, "", err
	}
	if ok {
		return true, "", nil
	}

	existing, err := r.rdb.Get(ctx, keyPrefix+hash).Result()
	if errors.Is(err, goredis.Nil) {
		// expired between SETNX and GET; try once more
		ok, err = r.rdb.SetNX(ctx, keyPrefix+hash, pendingMarker, ttl).Result()
		return ok, "", err
	}
	if err != nil {
		return false, "", err
	}
	if existing == pendingMarker {
		existing = ""
	}
	return false, existing, nil
}

func (r *LeadDedupRepository) Confirm(ctx context.Context, hash, leadId string, ttl time.Duration) error {
	return r.rdb.Set(ctx, keyPrefix+hash, leadId, ttl).Err()
}

func (r *LeadDedupRepository) Release(ctx context.Context, hash string) error {
	return r.rdb.Del(ctx, keyPrefix+hash).Err()
}
