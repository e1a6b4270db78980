package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/config"
)

// Mailer sends the transactional emails of the platform
type Mailer interface {
	SendInvitationEmail(data InvitationEmailData) error
	SendWelcomeEmail(data WelcomeEmailData) error
}

type InvitationEmailData struct {
	Email         string
	FirstName     string
	LastName      string
	InvitedByName string
	InviteURL     string
}

type WelcomeEmailData struct {
	Email     string
	FirstName string
	LastName  string
}

type sendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(cfg *config.Config) Mailer {
	return &sendGridMailer{
		client:    sendgrid.NewSendClient(cfg.SendGrid.APIKey),
		fromEmail: cfg.SendGrid.FromEmail,
		fromName:  cfg.SendGrid.FromName,
	}
}

func (m *sendGridMailer) SendInvitationEmail(data InvitationEmailData) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(fmt.Sprintf("%s %s", data.FirstName, data.LastName), data.Email)

	subject := fmt.Sprintf("%s invited you to join SalesUp", data.InvitedByName)

	plainText := fmt.Sprintf(
		"Hi %s,\n\n%s invited you to join their sales team on SalesUp.\n\n"+
			"Accept the invitation and create your account here:\n%s\n\n"+
			"The link expires in 7 days.\n\nThe SalesUp team",
		data.FirstName, data.InvitedByName, data.InviteURL,
	)

	htmlContent := fmt.Sprintf(
		`<p>Hi %s,</p>
		<p><strong>%s</strong> invited you to join their sales team on SalesUp.</p>
		<p><a href="%s">Accept the invitation</a> and create your account. The link expires in 7 days.</p>
		<p>The SalesUp team</p>`,
		data.FirstName, data.InvitedByName, data.InviteURL,
	)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending invitation email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	logrus.WithField("email", data.Email).Info("mailer: invitation email sent")
	return nil
}

func (m *sendGridMailer) SendWelcomeEmail(data WelcomeEmailData) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(fmt.Sprintf("%s %s", data.FirstName, data.LastName), data.Email)

	subject := "Welcome to SalesUp!"

	plainText := fmt.Sprintf(
		"Hi %s,\n\nYour SalesUp account is ready. Log your daily sales, follow your "+
			"performance score and let the coaching insights guide your next move.\n\nThe SalesUp team",
		data.FirstName,
	)

	htmlContent := fmt.Sprintf(
		`<p>Hi %s,</p>
		<p>Your SalesUp account is ready. Log your daily sales, follow your performance
		score and let the coaching insights guide your next move.</p>
		<p>The SalesUp team</p>`,
		data.FirstName,
	)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending welcome email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	logrus.WithField("email", data.Email).Info("mailer: welcome email sent")
	return nil
}
