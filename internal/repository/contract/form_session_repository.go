package contract

import (
	"context"

	"mortgage-connect-be/internal/entity"

	"github.com/google/uuid"
)

// FormSessionRepository keeps in-progress sessions. Nothing survives a restart.
type FormSessionRepository interface {
	Save(ctx context.Context, session *entity.FormSession) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.FormSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) int
}
