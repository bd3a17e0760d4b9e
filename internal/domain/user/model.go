package user

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paperstack/paperstack/internal/types"
)

type User struct {
	ID                    string                `db:"id" json:"id"`
	Email                 string                `db:"email" json:"email"`
	PasswordHash          string                `db:"password_hash" json:"-"`
	IsVerified            bool                  `db:"is_verified" json:"isVerified"`
	VerificationToken     *string               `db:"verification_token" json:"-"`
	ResetPasswordToken    *string               `db:"reset_password_token" json:"-"`
	ResetPasswordExpires  *time.Time            `db:"reset_password_expires" json:"-"`
	BusinessInfo          BusinessInfo          `db:"business_info" json:"businessInfo"`
	DocumentCustomization DocumentCustomization `db:"document_customization" json:"documentCustomization"`
	types.BaseModel
}

// BusinessInfo is the sender identity printed on documents
type BusinessInfo struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

// DocumentCustomization holds branding applied when rendering
type DocumentCustomization struct {
	PrimaryColor       string `json:"primaryColor"`
	AccentColor        string `json:"accentColor"`
	Font               string `json:"font"`
	TermsAndConditions string `json:"termsAndConditions,omitempty"`
	Footer             string `json:"footer,omitempty"`
}

// DefaultDocumentCustomization is applied to new accounts
func DefaultDocumentCustomization() DocumentCustomization {
	return DocumentCustomization{
		PrimaryColor: "#3498db",
		AccentColor:  "#2ecc71",
		Font:         "Helvetica",
	}
}

func NewUser(ctx context.Context, email, passwordHash string) *User {
	return &User{
		ID:                    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:                 types.NormalizeEmail(email),
		PasswordHash:          passwordHash,
		DocumentCustomization: DefaultDocumentCustomization(),
		BaseModel:             types.GetDefaultBaseModel(ctx),
	}
}

// Profile is the read model returned by the settings endpoints
type Profile struct {
	ID                    string                `json:"id"`
	Email                 string                `json:"email"`
	IsVerified            bool                  `json:"isVerified"`
	BusinessInfo          BusinessInfo          `json:"businessInfo"`
	DocumentCustomization DocumentCustomization `json:"documentCustomization"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:                    u.ID,
		Email:                 u.Email,
		IsVerified:            u.IsVerified,
		BusinessInfo:          u.BusinessInfo,
		DocumentCustomization: u.DocumentCustomization,
	}
}

// Scan implements the sql.Scanner interface for BusinessInfo
func (b *BusinessInfo) Scan(value interface{}) error {
	return scanJSON(value, b)
}

// Value implements the driver.Valuer interface for BusinessInfo
func (b BusinessInfo) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface for DocumentCustomization
func (c *DocumentCustomization) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// Value implements the driver.Valuer interface for DocumentCustomization
func (c DocumentCustomization) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
}
