package mapper

import (
	"time"

	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/model"

	"gorm.io/datatypes"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func (m *LeadMapper) ToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	answers := l.Answers.Data()
	if answers == nil {
		answers = map[string]string{}
	}

	return &entity.Lead{
		Id:            l.Id,
		FormType:      l.FormType,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		Email:         l.Email,
		Phone:         l.Phone,
		Answers:       answers,
		PayloadHash:   l.PayloadHash,
		Status:        entity.LeadStatus(l.Status),
		ContactId:     deref(l.ContactId),
		OpportunityId: deref(l.OpportunityId),
		CrmError:      deref(l.CrmError),
		Attempts:      l.Attempts,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *LeadMapper) ToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	return &model.Lead{
		Id:            l.Id,
		FormType:      l.FormType,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		Email:         l.Email,
		Phone:         l.Phone,
		Answers:       datatypes.NewJSONType(l.Answers),
		PayloadHash:   l.PayloadHash,
		Status:        string(l.Status),
		ContactId:     ptr(l.ContactId),
		OpportunityId: ptr(l.OpportunityId),
		CrmError:      ptr(l.CrmError),
		Attempts:      l.Attempts,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *LeadMapper) ToEntities(models []*model.Lead) []*entity.Lead {
	out := make([]*entity.Lead, len(models))
	for i, l := range models {
		out[i] = m.ToEntity(l)
	}
	return out
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
