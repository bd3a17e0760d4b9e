package dto

import (
	"github.com/paperstack/paperstack/internal/domain/user"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

// UpdateBusinessInfoRequest changes only the provided fields
type UpdateBusinessInfoRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
	TaxID   *string `json:"taxId,omitempty"`
	Logo    *string `json:"logo,omitempty"`
}

func (r *UpdateBusinessInfoRequest) Validate() error {
	if r.Email != nil && *r.Email != "" && !types.IsValidEmail(*r.Email) {
		return ierr.NewErrorf("invalid business email %q", *r.Email).
			WithHint("Please provide a valid business email").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateBusinessInfoRequest) Apply(info *user.BusinessInfo) {
	apply(&info.Name, r.Name)
	apply(&info.Address, r.Address)
	apply(&info.Phone, r.Phone)
	apply(&info.Email, r.Email)
	apply(&info.Website, r.Website)
	apply(&info.TaxID, r.TaxID)
	apply(&info.Logo, r.Logo)
}

// UpdateDocumentCustomizationRequest changes only the provided fields
type UpdateDocumentCustomizationRequest struct {
	PrimaryColor       *string `json:"primaryColor,omitempty"`
	AccentColor        *string `json:"accentColor,omitempty"`
	Font               *string `json:"font,omitempty"`
	TermsAndConditions *string `json:"termsAndConditions,omitempty"`
	Footer             *string `json:"footer,omitempty"`
}

func (r *UpdateDocumentCustomizationRequest) Validate() error {
	if r.PrimaryColor != nil && *r.PrimaryColor != "" && !isHexColor(*r.PrimaryColor) {
		return ierr.NewError("invalid primary color").
			WithHint("Colors must be hex values such as #3498db").
			Mark(ierr.ErrValidation)
	}
	if r.AccentColor != nil && *r.AccentColor != "" && !isHexColor(*r.AccentColor) {
		return ierr.NewError("invalid accent color").
			WithHint("Colors must be hex values such as #3498db").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateDocumentCustomizationRequest) Apply(c *user.DocumentCustomization) {
	apply(&c.PrimaryColor, r.PrimaryColor)
	apply(&c.AccentColor, r.AccentColor)
	apply(&c.Font, r.Font)
	apply(&c.TermsAndConditions, r.TermsAndConditions)
	apply(&c.Footer, r.Footer)
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
