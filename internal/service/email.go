package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

// mailSender is the delivery transport underneath the email service. SMTP
// and SendGrid implementations exist; the message bodies are shared.
type mailSender interface {
	send(to, subject, body string) error
}

type emailService struct {
	sender mailSender
}

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailService builds the SMTP-backed email service.
func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{sender: &smtpSender{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}}
}

func (s *smtpSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}

	return nil
}

func (s *emailService) send(to, subject, body string) error {
	return s.sender.send(to, subject, body)
}

func (s *emailService) SendTerminationRequestNotification(ctx context.Context, landlordEmail, tenantName, propertyLabel, moveOutDate string) error {
	subject := fmt.Sprintf("Termination Request - %s", propertyLabel)
	body := fmt.Sprintf("Hello,\n\n%s has requested to terminate the lease for %s, moving out on %s.\n\nPlease review and confirm or reject the request in the Leasehold app.\n\nBest regards,\nThe Leasehold Team", tenantName, propertyLabel, moveOutDate)
	return s.send(landlordEmail, subject, body)
}

func (s *emailService) SendTerminationInitiatedNotification(ctx context.Context, tenantEmail, propertyLabel, moveOutDate, reason string) error {
	subject := fmt.Sprintf("Lease Termination Notice - %s", propertyLabel)
	body := fmt.Sprintf("Hello,\n\nYour landlord has given notice to terminate the lease for %s. The requested move-out date is %s.", propertyLabel, moveOutDate)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe Leasehold Team"
	return s.send(tenantEmail, subject, body)
}

func (s *emailService) SendTerminationConfirmedNotification(ctx context.Context, tenantEmail, propertyLabel, moveOutDate string, finalReturnCents int64) error {
	subject := fmt.Sprintf("Termination Confirmed - %s", propertyLabel)
	body := fmt.Sprintf("Hello,\n\nYour termination request for %s was confirmed. The lease ends on %s.\n\nBased on the current settlement, %s of your deposit will be returned.\n\nBest regards,\nThe Leasehold Team",
		propertyLabel, moveOutDate, formatEuros(finalReturnCents))
	return s.send(tenantEmail, subject, body)
}

func (s *emailService) SendTerminationRejectedNotification(ctx context.Context, tenantEmail, propertyLabel string) error {
	subject := fmt.Sprintf("Termination Request Rejected - %s", propertyLabel)
	body := fmt.Sprintf("Hello,\n\nYour termination request for %s was rejected by the landlord. The lease continues unchanged.\n\nBest regards,\nThe Leasehold Team", propertyLabel)
	return s.send(tenantEmail, subject, body)
}

func (s *emailService) SendTerminationCompletedNotification(ctx context.Context, tenantEmail, propertyLabel string, finalReturnCents int64) error {
	subject := fmt.Sprintf("Lease Ended - %s", propertyLabel)
	body := fmt.Sprintf("Hello,\n\nThe lease for %s has ended. A deposit return of %s has been settled.\n\nThank you for renting with us.\n\nBest regards,\nThe Leasehold Team",
		propertyLabel, formatEuros(finalReturnCents))
	return s.send(tenantEmail, subject, body)
}

func (s *emailService) SendRenewalNoticeNotification(ctx context.Context, tenantEmail, tenantName, propertyLabel, contractEnd string) error {
	subject := fmt.Sprintf("Renewal Decision Needed - %s", propertyLabel)
	body := fmt.Sprintf("Hello %s,\n\nYour lease for %s ends on %s. Please let us know in the Leasehold app whether you would like to renew.\n\nIf we do not hear from you, the lease will be extended automatically.\n\nBest regards,\nThe Leasehold Team",
		tenantName, propertyLabel, contractEnd)
	return s.send(tenantEmail, subject, body)
}

func (s *emailService) SendAutoRenewalNotification(ctx context.Context, tenantEmail, propertyLabel, newContractEnd string) error {
	subject := fmt.Sprintf("Lease Extended - %s", propertyLabel)
	body := fmt.Sprintf("Hello,\n\nYour lease for %s has been extended. The new contract end date is %s.\n\nBest regards,\nThe Leasehold Team",
		propertyLabel, newContractEnd)
	return s.send(tenantEmail, subject, body)
}

func formatEuros(cents int64) string {
	return fmt.Sprintf("EUR %.2f", float64(cents)/100.0)
}
