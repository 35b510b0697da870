// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"gopkg.in/gomail.v2"
)

// LeadNotification is what the brand inbox sees for one new lead.
type LeadNotification struct {
	LeadId    string
	FormType  string
	Name      string
	Email     string
	Phone     string
	CrmStatus string
	Answers   map[string]string
}

type IEmailService interface {
	SendLeadNotification(toEmail string, n LeadNotification) error
}

type emailService struct {
	sender      gomail.Sender
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

// newEmailServiceWithSender skips SMTP; tests pass a gomail.SendFunc.
func newEmailServiceWithSender(sender gomail.Sender, senderEmail, senderName string) *emailService {
	return &emailService{sender: sender, senderEmail: senderEmail, senderName: senderName}
}

func (s *emailService) SendLeadNotification(toEmail string, n LeadNotification) error {
	m := s.buildLeadMessage(toEmail, n)

	var err error
	if s.sender != nil {
		err = gomail.Send(s.sender, m)
	} else {
		err = s.dialer.DialAndSend(m)
	}
	if err != nil {
		return fmt.Errorf("send lead notification to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) buildLeadMessage(toEmail string, n LeadNotification) *gomail.Message {
	m := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	if n.Email != "" {
		m.SetHeader("Reply-To", n.Email)
	}
	m.SetHeader("Subject", fmt.Sprintf("New %s lead: %s", formLabel(n.FormType), n.Name))
	m.SetBody("text/html", leadBody(n))
	return m
}

func formLabel(formType string) string {
	if formType == "buy" {
		return "Home Purchase"
	}
	return "Refinance"
}

func leadBody(n LeadNotification) string {
	keys := make([]string, 0, len(n.Answers))
	for k := range n.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&rows, `<tr><td style="padding: 4px 12px 4px 0; color: #656B6D;">%s</td><td>%s</td></tr>`,
			html.EscapeString(k), html.EscapeString(n.Answers[k]))
	}

	crmNote := ""
	if n.CrmStatus != "crm_submitted" {
		crmNote = `<p style="color: #f44336;">This lead was not delivered to the CRM. Please follow up manually.</p>`
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New %s lead</h2>
			<p><strong>%s</strong><br>%s<br>%s</p>
			%s
			<table>%s</table>
			<p style="font-size: 12px; color: #999;">Lead %s</p>
		</div>
	`, formLabel(n.FormType), html.EscapeString(n.Name), html.EscapeString(n.Email),
		html.EscapeString(n.Phone), crmNote, rows.String(), html.EscapeString(n.LeadId))
}
