package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/contract"
	"mortgage-connect-be/internal/repository/memory"
	"mortgage-connect-be/pkg/formflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leadFixture struct {
	svc       ILeadService
	leads     contract.LeadRepository
	crm       *fakeCrm
	publisher *fakePublisher
}

func newLeadFixture(crm *fakeCrm) *leadFixture {
	f := &leadFixture{
		leads:     memory.NewLeadRepository(),
		crm:       crm,
		publisher: &fakePublisher{},
	}
	f.svc = NewLeadService(f.leads, memory.NewLeadDedupRepository(), crm, f.publisher, config.DefaultBrand(), 10*time.Minute, logger.NewNopLogger())
	return f
}

func leadPayload() dto.SubmitLeadRequest {
	return dto.SubmitLeadRequest{
		"formType":      "buy",
		"firstName":     "Jane",
		"lastName":      "Doe",
		"email":         "jane@example.com",
		"phone":         "5205550100",
		"zipCode":       "85712",
		"purchasePrice": "201k-500k",
	}
}

func TestLeadSubmitDeliversToCrm(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true})

	resp, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.GhlSubmitted)
	assert.Equal(t, "contact-1", resp.ContactId)
	assert.Equal(t, "Lead submitted successfully", resp.Message)

	id, err := uuid.Parse(resp.LeadId)
	require.NoError(t, err)
	lead, err := f.leads.FindById(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, entity.LeadCrmSubmitted, lead.Status)
	assert.Equal(t, "opp-1", lead.OpportunityId)
	assert.Equal(t, 1, lead.Attempts)
	assert.NotEmpty(t, lead.PayloadHash)

	require.Equal(t, 1, f.publisher.count())
	var msg dto.LeadReceivedMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &msg))
	assert.Equal(t, lead.Id, msg.LeadId)
	assert.Equal(t, "Jane Doe", msg.Name)
	assert.Equal(t, string(entity.LeadCrmSubmitted), msg.CrmStatus)
}

func TestLeadSubmitRequiresContactFields(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true})
	p := leadPayload()
	p["phone"] = "  "

	_, err := f.svc.Submit(context.Background(), p)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "phone", missing.Field)
	assert.Equal(t, "Missing required field: phone", err.Error())
	assert.Zero(t, f.crm.contactCount())
}

func TestLeadSubmitWithoutCrmIsSkipped(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: false})

	resp, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.GhlSubmitted)
	assert.Equal(t, "Lead received (CRM integration pending)", resp.Message)

	leads, total, err := f.svc.List(context.Background(), contract.LeadFilter{Status: entity.LeadCrmSkipped})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, leads, 1)
}

func TestLeadSubmitCrmFailureStillSucceeds(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true, contactErr: errCrmDown})

	resp, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.GhlSubmitted)

	leads, _, err := f.svc.List(context.Background(), contract.LeadFilter{Status: entity.LeadCrmFailed})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, errCrmDown.Error(), leads[0].CrmError)
}

func TestLeadSubmitOpportunityFailureKeepsContact(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true, oppErr: errCrmDown})

	resp, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)
	assert.True(t, resp.GhlSubmitted)
	assert.Equal(t, "contact-1", resp.ContactId)
}

func TestLeadSubmitDeduplicatesIdenticalPayload(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true})

	first, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)
	second, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.LeadId, second.LeadId)
	assert.Equal(t, 1, f.crm.contactCount())
	assert.Equal(t, 1, f.publisher.count())

	changed := leadPayload()
	changed["zipCode"] = "85701"
	third, err := f.svc.Submit(context.Background(), changed)
	require.NoError(t, err)
	assert.False(t, third.Duplicate)
	assert.Equal(t, 2, f.crm.contactCount())
}

func TestLeadSubmitStoreFailureReleasesClaim(t *testing.T) {
	crm := &fakeCrm{configured: true}
	svc := NewLeadService(failingLeadRepository{}, memory.NewLeadDedupRepository(), crm, &fakePublisher{}, config.DefaultBrand(), time.Minute, logger.NewNopLogger())

	_, err := svc.Submit(context.Background(), leadPayload())
	require.Error(t, err)

	// the claim was released, so a retry goes through delivery again
	_, err = svc.Submit(context.Background(), leadPayload())
	require.Error(t, err)
	assert.Equal(t, 2, crm.contactCount())
}

func TestLeadSubmitApplicationUsesVariantAsFormType(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true})
	answers := formflow.AnswersFrom(map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"phone":     "5206455533",
	})

	receipt, err := f.svc.SubmitApplication(context.Background(), formflow.Application{Variant: "refinance", Answers: answers})
	require.NoError(t, err)
	assert.True(t, receipt.Accepted)
	require.NotEmpty(t, receipt.Reference)

	id := uuid.MustParse(receipt.Reference)
	lead, err := f.leads.FindById(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "refinance", lead.FormType)
}

func TestLeadRedeliver(t *testing.T) {
	f := newLeadFixture(&fakeCrm{configured: true, contactErr: errCrmDown})
	resp, err := f.svc.Submit(context.Background(), leadPayload())
	require.NoError(t, err)
	id := uuid.MustParse(resp.LeadId)

	f.crm.mu.Lock()
	f.crm.contactErr = nil
	f.crm.mu.Unlock()

	lead, err := f.svc.Redeliver(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadCrmSubmitted, lead.Status)
	assert.Equal(t, 2, lead.Attempts)
	assert.Empty(t, lead.CrmError)

	_, err = f.svc.Redeliver(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestPayloadHashIgnoresKeyOrderAndPadding(t *testing.T) {
	a := map[string]string{"firstName": "Jane", "email": "jane@example.com"}
	b := map[string]string{"email": " jane@example.com ", "firstName": "Jane"}
	assert.Equal(t, payloadHash(a), payloadHash(b))

	b["firstName"] = "June"
	assert.NotEqual(t, payloadHash(a), payloadHash(b))
}
