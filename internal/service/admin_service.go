package service

import (
	"context"

	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/contract"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListLeads(ctx context.Context, req dto.LeadListRequest) (*dto.LeadListResponse, error)
	RetryLead(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error)
	GetLogs(req dto.LogListRequest) ([]logger.LogEntry, error)
}

type adminService struct {
	leads  ILeadService
	logger logger.ILogger
}

func NewAdminService(leads ILeadService, log logger.ILogger) IAdminService {
	return &adminService{leads: leads, logger: log}
}

func (s *adminService) ListLeads(ctx context.Context, req dto.LeadListRequest) (*dto.LeadListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	leads, total, err := s.leads.List(ctx, contract.LeadFilter{
		Status: entity.LeadStatus(req.Status),
		Limit:  limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, err
	}

	res := make([]dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		res = append(res, toLeadResponse(l))
	}
	return &dto.LeadListResponse{Leads: res, Total: total}, nil
}

// RetryLead pushes a lead that missed the CRM through delivery again.
func (s *adminService) RetryLead(ctx context.Context, id uuid.UUID) (*dto.LeadResponse, error) {
	lead, err := s.leads.Redeliver(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toLeadResponse(lead)
	return &res, nil
}

func (s *adminService) GetLogs(req dto.LogListRequest) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(logger.LogFilter{
		Level:  req.Level,
		Module: req.Module,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

func toLeadResponse(l *entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		Id:            l.Id,
		FormType:      l.FormType,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		Email:         l.Email,
		Phone:         l.Phone,
		Status:        string(l.Status),
		ContactId:     l.ContactId,
		OpportunityId: l.OpportunityId,
		CrmError:      l.CrmError,
		Attempts:      l.Attempts,
		Answers:       l.Answers,
		CreatedAt:     l.CreatedAt,
	}
}
