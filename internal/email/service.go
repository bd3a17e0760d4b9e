package email

import (
	"context"
	"embed"
	"fmt"
	"strings"

	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
)

//go:embed templates/*.html
var templates embed.FS

// Email renders and sends application emails
type Email struct {
	client Sender
	logger *logger.Logger
}

func NewEmail(client Sender, logger *logger.Logger) *Email {
	return &Email{
		client: client,
		logger: logger,
	}
}

// IsEnabled reports whether messages can be delivered
func (s *Email) IsEnabled() bool {
	return s.client.IsEnabled()
}

// SendEmail sends a plain text email
func (s *Email) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	messageID, err := s.client.Send(ctx, &Message{
		From:        req.FromAddress,
		To:          req.ToAddress,
		Subject:     req.Subject,
		Text:        req.Text,
		Attachments: req.Attachments,
	})
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return &SendEmailResponse{Success: false, Error: err.Error()}, err
	}

	s.logger.Infow("email sent successfully",
		"message_id", messageID,
		"to", req.ToAddress,
		"subject", req.Subject,
		"attachments", len(req.Attachments),
	)

	return &SendEmailResponse{MessageID: messageID, Success: true}, nil
}

// SendEmailWithTemplate sends an email using an embedded HTML template
func (s *Email) SendEmailWithTemplate(ctx context.Context, req SendEmailWithTemplateRequest) (*SendEmailResponse, error) {
	content, err := templates.ReadFile("templates/" + req.TemplatePath)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("email template %s not found", req.TemplatePath).
			Mark(ierr.ErrSystem)
	}

	html := replacePlaceholders(string(content), req.Data)

	messageID, err := s.client.Send(ctx, &Message{
		From:    req.FromAddress,
		To:      req.ToAddress,
		Subject: req.Subject,
		HTML:    html,
	})
	if err != nil {
		s.logger.Errorw("failed to send templated email",
			"error", err,
			"to", req.ToAddress,
			"template", req.TemplatePath,
		)
		return &SendEmailResponse{Success: false, Error: err.Error()}, err
	}

	s.logger.Infow("templated email sent successfully",
		"message_id", messageID,
		"to", req.ToAddress,
		"template", req.TemplatePath,
	)

	return &SendEmailResponse{MessageID: messageID, Success: true}, nil
}

// replacePlaceholders replaces placeholders in the template with actual data
func replacePlaceholders(template string, data map[string]interface{}) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{%s}}", key), fmt.Sprintf("%v", value))
	}
	return result
}

// ExtractNameFromEmail extracts the name part from an email address
// e.g., "john.doe@example.com" -> "john.doe"
func ExtractNameFromEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "there"
}
