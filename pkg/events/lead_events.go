package events

import "time"

const (
	TypeLeadSubmitted = "LEAD_SUBMITTED"
	TypeLeadCrmFailed = "LEAD_CRM_FAILED"
)

// LeadSubmitted announces a stored lead. Data carries lead_id, form_type,
// name, email, phone and crm_status.
func LeadSubmitted(data map[string]interface{}) Event {
	return BaseEvent{Type: TypeLeadSubmitted, Data: data, OccurredAt: time.Now()}
}

// LeadCrmFailed is raised when a lead could not be delivered to the CRM and
// needs manual follow-up.
func LeadCrmFailed(data map[string]interface{}) Event {
	return BaseEvent{Type: TypeLeadCrmFailed, Data: data, OccurredAt: time.Now()}
}

// StringField reads a string value from an event payload.
func StringField(e Event, key string) string {
	v, _ := e.Payload()[key].(string)
	return v
}
