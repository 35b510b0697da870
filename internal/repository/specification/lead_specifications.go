package specification

import (
	"mortgage-connect-be/internal/entity"

	"gorm.io/gorm"
)

type ByLeadStatus struct {
	Status entity.LeadStatus
}

func (s ByLeadStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}
