package mailer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func sampleNotification() LeadNotification {
	return LeadNotification{
		LeadId:    "lead-1",
		FormType:  "buy",
		Name:      "Jane <Doe>",
		Email:     "jane@example.com",
		Phone:     "5205550100",
		CrmStatus: "crm_failed",
		Answers:   map[string]string{"zipCode": "85712", "creditScore": "720-759"},
	}
}

func TestSendLeadNotification(t *testing.T) {
	var to []string
	var raw bytes.Buffer
	svc := newEmailServiceWithSender(gomail.SendFunc(func(from string, rcpt []string, msg io.WriterTo) error {
		to = rcpt
		_, err := msg.WriteTo(&raw)
		return err
	}), "leads@mortgageconnect.com", "Mortgage Connect")

	require.NoError(t, svc.SendLeadNotification("inbox@mortgageconnect.com", sampleNotification()))
	assert.Equal(t, []string{"inbox@mortgageconnect.com"}, to)

	body := raw.String()
	assert.Contains(t, body, "Reply-To: jane@example.com")
	assert.Contains(t, body, "follow up manually")
	assert.Contains(t, body, "<strong>Jane &lt;Doe&gt;</strong>")
}

func TestLeadBodyOmitsFollowUpWhenDelivered(t *testing.T) {
	n := sampleNotification()
	n.CrmStatus = "crm_submitted"
	body := leadBody(n)
	assert.NotContains(t, body, "follow up manually")
	assert.Contains(t, body, "Jane &lt;Doe&gt;")
	assert.Less(t, bytes.Index([]byte(body), []byte("creditScore")), bytes.Index([]byte(body), []byte("zipCode")))
}

func TestSendLeadNotificationWrapsError(t *testing.T) {
	svc := newEmailServiceWithSender(gomail.SendFunc(func(string, []string, io.WriterTo) error {
		return errors.New("smtp down")
	}), "leads@mortgageconnect.com", "Mortgage Connect")

	err := svc.SendLeadNotification("inbox@mortgageconnect.com", sampleNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}
