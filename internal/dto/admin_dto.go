package dto

type LeadListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=crm_submitted crm_failed crm_skipped"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int64          `json:"total"`
}

type LogListRequest struct {
	Level  string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Module string `query:"module"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}
