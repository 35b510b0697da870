package mapper

import (
	"testing"
	"time"

	"mortgage-connect-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadMapperKeepsCrmFieldsOptional(t *testing.T) {
	m := NewLeadMapper()
	lead := &entity.Lead{
		Id:        uuid.New(),
		FormType:  "buy",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "5205550100",
		Answers:   map[string]string{"zipCode": "85712"},
		Status:    entity.LeadCrmSkipped,
		CreatedAt: time.Now(),
	}

	row := m.ToModel(lead)
	assert.Nil(t, row.ContactId)
	assert.Nil(t, row.CrmError)
	assert.Equal(t, "crm_skipped", row.Status)
	assert.Equal(t, "85712", row.Answers.Data()["zipCode"])

	lead.ContactId = "c-1"
	back := m.ToEntity(m.ToModel(lead))
	require.NotNil(t, back)
	assert.Equal(t, "c-1", back.ContactId)
	assert.Equal(t, lead.Answers, back.Answers)
	assert.Nil(t, back.UpdatedAt)
}

func TestLeadMapperNil(t *testing.T) {
	m := NewLeadMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
