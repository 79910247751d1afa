package core

import "net/mail"

type (
	// EmailMessage is a plain-text outbound email. Callers set BodyStr;
	// Render resolves it into TextContent before sending.
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Subject string
		BodyStr string

		TextContent string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently.
		SendMessages(messages ...*EmailMessage)
	}
)

// Render resolves TextContent from BodyStr.
func (m *EmailMessage) Render() error {
	m.TextContent = m.BodyStr
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }
