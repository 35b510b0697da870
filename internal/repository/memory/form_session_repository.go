package memory

import (
	"context"
	"time"

	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type FormSessionRepository struct {
	cache *cache.Cache
}

// NewFormSessionRepository expires idle sessions after ttl and purges
// expired items every 10 minutes.
func NewFormSessionRepository(ttl time.Duration) contract.FormSessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &FormSessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *FormSessionRepository) Save(_ context.Context, session *entity.FormSession) error {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
	return nil
}

// FindById returns nil, nil when the session is unknown or expired.
func (r *FormSessionRepository) FindById(_ context.Context, id uuid.UUID) (*entity.FormSession, error) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.FormSession), nil
	}
	return nil, nil
}

func (r *FormSessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}

func (r *FormSessionRepository) Count(_ context.Context) int {
	return r.cache.ItemCount()
}
