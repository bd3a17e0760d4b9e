package email

// SendEmailRequest represents a request to send a plain text email
type SendEmailRequest struct {
	FromAddress string       `json:"from_address" validate:"omitempty,email"`
	ToAddress   string       `json:"to_address" validate:"required,email"`
	Subject     string       `json:"subject" validate:"required"`
	Text        string       `json:"text" validate:"required"`
	Attachments []Attachment `json:"-"`
}

// SendEmailResponse represents the response from sending an email
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}

// SendEmailWithTemplateRequest represents a request to send an email with one
// of the embedded templates. Placeholders are written as {{key}}.
type SendEmailWithTemplateRequest struct {
	FromAddress  string                 `json:"from_address" validate:"omitempty,email"`
	ToAddress    string                 `json:"to_address" validate:"required,email"`
	Subject      string                 `json:"subject" validate:"required"`
	TemplatePath string                 `json:"template_path" validate:"required"`
	Data         map[string]interface{} `json:"data" validate:"omitempty"`
}

const (
	TemplateVerifyEmail   = "verify-email.html"
	TemplateResetPassword = "reset-password.html"
)
