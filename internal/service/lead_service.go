package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/contract"
	"mortgage-connect-be/pkg/crm/gohighlevel"
	"mortgage-connect-be/pkg/formflow"

	"github.com/google/uuid"
)

var requiredLeadFields = []string{"firstName", "lastName", "email", "phone"}

// CrmClient is the part of the GoHighLevel client the lead service needs.
type CrmClient interface {
	Configured() bool
	CreateContact(ctx context.Context, contact gohighlevel.Contact) (string, error)
	CreateOpportunity(ctx context.Context, opp gohighlevel.Opportunity) (string, error)
}

// ILeadService accepts finished applications. CRM trouble never fails a
// submission: the lead is stored with its CRM status for manual follow-up.
type ILeadService interface {
	formflow.Submitter
	Submit(ctx context.Context, payload dto.SubmitLeadRequest) (*dto.SubmitLeadResponse, error)
	Redeliver(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	List(ctx context.Context, filter contract.LeadFilter) ([]*entity.Lead, int64, error)
}

type leadService struct {
	leads       contract.LeadRepository
	dedup       contract.LeadDedupRepository
	crm         CrmClient
	publisher   IPublisherService
	brand       *config.Brand
	dedupWindow time.Duration
	logger      logger.ILogger
}

func NewLeadService(
	leads contract.LeadRepository,
	dedup contract.LeadDedupRepository,
	crm CrmClient,
	publisher IPublisherService,
	brand *config.Brand,
	dedupWindow time.Duration,
	log logger.ILogger,
) ILeadService {
	return &leadService{
		leads:       leads,
		dedup:       dedup,
		crm:         crm,
		publisher:   publisher,
		brand:       brand,
		dedupWindow: dedupWindow,
		logger:      log,
	}
}

// SubmitApplication is the in-process path used by both form adapters.
func (s *leadService) SubmitApplication(ctx context.Context, app formflow.Application) (formflow.Receipt, error) {
	resp, err := s.Submit(ctx, app.Payload())
	if err != nil {
		return formflow.Receipt{}, err
	}
	return formflow.Receipt{Accepted: resp.Success, Reference: resp.LeadId, Message: resp.Message}, nil
}

func (s *leadService) Submit(ctx context.Context, payload dto.SubmitLeadRequest) (*dto.SubmitLeadResponse, error) {
	for _, field := range requiredLeadFields {
		if strings.TrimSpace(payload[field]) == "" {
			return nil, &MissingFieldError{Field: field}
		}
	}

	hash := payloadHash(payload)
	claimed, existing, err := s.dedup.Claim(ctx, hash, s.dedupWindow)
	if err != nil {
		s.logger.Warn("LeadService", "Dedup store unavailable, accepting lead without dedup", map[string]interface{}{"error": err.Error()})
		claimed = true
	}
	if !claimed {
		s.logger.Info("LeadService", "Duplicate lead submission ignored", map[string]interface{}{"lead_id": existing, "email": payload["email"]})
		return &dto.SubmitLeadResponse{
			Success:   true,
			Message:   "Lead already received",
			LeadId:    existing,
			Duplicate: true,
		}, nil
	}

	answers := make(map[string]string, len(payload))
	for k, v := range payload {
		answers[k] = v
	}
	lead := &entity.Lead{
		Id:          uuid.New(),
		FormType:    payload["formType"],
		FirstName:   payload["firstName"],
		LastName:    payload["lastName"],
		Email:       payload["email"],
		Phone:       payload["phone"],
		Answers:     answers,
		PayloadHash: hash,
		CreatedAt:   time.Now(),
	}

	s.deliver(ctx, lead)

	if err := s.leads.Create(ctx, lead); err != nil {
		if relErr := s.dedup.Release(ctx, hash); relErr != nil {
			s.logger.Warn("LeadService", "Failed to release dedup claim", map[string]interface{}{"error": relErr.Error()})
		}
		s.logger.Error("LeadService", "Failed to store lead", map[string]interface{}{
			"error":      err.Error(),
			"email":      lead.Email,
			"contact_id": lead.ContactId,
		})
		return nil, err
	}

	if err := s.dedup.Confirm(ctx, hash, lead.Id.String(), s.dedupWindow); err != nil {
		s.logger.Warn("LeadService", "Failed to confirm dedup claim", map[string]interface{}{"error": err.Error()})
	}

	s.announce(ctx, lead)

	return &dto.SubmitLeadResponse{
		Success:      true,
		Message:      submitMessage(lead.Status),
		LeadId:       lead.Id.String(),
		ContactId:    lead.ContactId,
		GhlSubmitted: lead.Status == entity.LeadCrmSubmitted,
	}, nil
}

func (s *leadService) Redeliver(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := s.leads.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	if lead.Status == entity.LeadCrmSubmitted {
		return lead, nil
	}

	s.deliver(ctx, lead)
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	s.logger.Info("LeadService", "Lead redelivered", map[string]interface{}{
		"lead_id":  lead.Id.String(),
		"status":   string(lead.Status),
		"attempts": lead.Attempts,
	})
	return lead, nil
}

func (s *leadService) List(ctx context.Context, filter contract.LeadFilter) ([]*entity.Lead, int64, error) {
	leads, err := s.leads.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leads.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// deliver sends the lead to the CRM and records the outcome on it. The
// opportunity is best effort once the contact exists.
func (s *leadService) deliver(ctx context.Context, lead *entity.Lead) {
	lead.Attempts++

	if !s.crm.Configured() {
		lead.Status = entity.LeadCrmSkipped
		s.logger.Warn("LeadService", "CRM not configured, lead logged for manual review", map[string]interface{}{
			"lead_id":   lead.Id.String(),
			"form_type": lead.FormType,
			"email":     lead.Email,
		})
		return
	}

	contactId, err := s.crm.CreateContact(ctx, gohighlevel.ContactFromLead(lead.Answers, s.brand.LeadSource))
	if err != nil {
		lead.Status = entity.LeadCrmFailed
		lead.CrmError = err.Error()
		details := map[string]interface{}{"lead_id": lead.Id.String(), "email": lead.Email, "error": err.Error()}
		var apiErr *gohighlevel.APIError
		if errors.As(err, &apiErr) {
			details["status_code"] = apiErr.StatusCode
		}
		s.logger.Error("LeadService", "CRM contact creation failed, lead logged for manual review", details)
		return
	}

	lead.Status = entity.LeadCrmSubmitted
	lead.ContactId = contactId
	lead.CrmError = ""

	if contactId == "" {
		return
	}
	oppId, err := s.crm.CreateOpportunity(ctx, gohighlevel.OpportunityFromLead(contactId, lead.Answers))
	if err != nil {
		s.logger.Warn("LeadService", "Opportunity creation failed, contact was created", map[string]interface{}{
			"lead_id":    lead.Id.String(),
			"contact_id": contactId,
			"error":      err.Error(),
		})
		return
	}
	lead.OpportunityId = oppId
}

func (s *leadService) announce(ctx context.Context, lead *entity.Lead) {
	msg, err := json.Marshal(dto.LeadReceivedMessage{
		LeadId:    lead.Id,
		FormType:  lead.FormType,
		Name:      lead.FullName(),
		Email:     lead.Email,
		Phone:     lead.Phone,
		CrmStatus: string(lead.Status),
		Answers:   lead.Answers,
	})
	if err != nil {
		s.logger.Error("LeadService", "Failed to encode lead.received", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Error("LeadService", "Failed to publish lead.received", map[string]interface{}{"lead_id": lead.Id.String(), "error": err.Error()})
	}
}

func submitMessage(status entity.LeadStatus) string {
	if status == entity.LeadCrmSkipped {
		return "Lead received (CRM integration pending)"
	}
	return "Lead submitted successfully"
}

// payloadHash is order independent: the same answers always hash the same.
func payloadHash(payload map[string]string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(strings.TrimSpace(payload[k])))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
