package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lead struct {
	Id            uuid.UUID                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FormType      string                                `gorm:"type:varchar(20);not null;index"`
	FirstName     string                                `gorm:"type:varchar(120);not null"`
	LastName      string                                `gorm:"type:varchar(120);not null"`
	Email         string                                `gorm:"type:varchar(255);not null;index"`
	Phone         string                                `gorm:"type:varchar(40);not null"`
	Answers       datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`
	PayloadHash   string                                `gorm:"type:char(64);index"`
	Status        string                                `gorm:"type:varchar(20);not null;index"`
	ContactId     *string                               `gorm:"type:varchar(64)"`
	OpportunityId *string                               `gorm:"type:varchar(64)"`
	CrmError      *string                               `gorm:"type:text"`
	Attempts      int                                   `gorm:"not null;default:0"`
	CreatedAt     time.Time                             `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time                             `gorm:"autoUpdateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
