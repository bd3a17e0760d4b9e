package email

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/resend/resend-go/v2"
)

// Sender delivers a single message
type Sender interface {
	IsEnabled() bool
	GetFromAddress() string
	Send(ctx context.Context, msg *Message) (string, error)
}

// Message is a transport independent email
type Message struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Attachment is a file sent with a message
type Attachment struct {
	Filename string
	Content  []byte
}

// EmailClient represents an email client wrapper
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
	maxRetries  uint64
	logger      *logger.Logger
}

// NewEmailClient creates a new email client. It is disabled when email is
// turned off or no api key is configured.
func NewEmailClient(cfg *config.Configuration, logger *logger.Logger) Sender {
	c := &EmailClient{
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
		maxRetries:  cfg.Email.MaxRetries,
		logger:      logger,
	}
	if !cfg.Email.Enabled || cfg.Email.APIKey == "" {
		return c
	}

	c.client = resend.NewClient(cfg.Email.APIKey)
	c.enabled = true
	return c
}

// IsEnabled returns whether the email client is enabled
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the default from address
func (c *EmailClient) GetFromAddress() string {
	return c.fromAddress
}

// Send delivers msg with exponential backoff and returns the provider message id
func (c *EmailClient) Send(ctx context.Context, msg *Message) (string, error) {
	if !c.enabled {
		return "", ierr.NewError("email client is disabled").
			WithHint("Email delivery is not configured").
			Mark(ierr.ErrEmailDelivery)
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if params.From == "" {
		params.From = c.fromAddress
	}
	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}
	for _, a := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	var messageID string
	attempt := 0
	operation := func() error {
		attempt++
		sent, err := c.client.Emails.SendWithContext(ctx, params)
		if err != nil {
			c.logger.Warnw("email send attempt failed", "attempt", attempt, "to", msg.To, "error", err)
			return err
		}
		messageID = sent.Id
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to send the email").
			WithReportableDetails(map[string]any{"attempts": attempt}).
			Mark(ierr.ErrEmailDelivery)
	}

	return messageID, nil
}
