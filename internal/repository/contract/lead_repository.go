package contract

import (
	"context"

	"mortgage-connect-be/internal/entity"

	"github.com/google/uuid"
)

type LeadFilter struct {
	Status entity.LeadStatus
	Limit  int
	Offset int
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, lead *entity.Lead) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	// FindAll returns leads newest first.
	FindAll(ctx context.Context, filter LeadFilter) ([]*entity.Lead, error)
	Count(ctx context.Context, filter LeadFilter) (int64, error)
}
