package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/paperstack/paperstack/internal/domain/document"
	domain "github.com/paperstack/paperstack/internal/domain/pdf"
	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	FallbackBusinessName    = "Your Business Name"
	FallbackBusinessAddress = "Your Business Address"
	FallbackBusinessPhone   = "Phone"
	FallbackBusinessEmail   = "Email"

	dateLayout = "Jan 02, 2006"
)

// BuildDocumentData normalizes a document and the owner's profile into the
// render model. profile may be nil for guest and offline documents.
func BuildDocumentData(doc *document.Document, profile *user.Profile) *domain.DocumentData {
	info := user.BusinessInfo{}
	custom := user.DefaultDocumentCustomization()
	if profile != nil {
		info = profile.BusinessInfo
		custom = mergeCustomization(custom, profile.DocumentCustomization)
	}

	symbol := types.GetCurrencySymbol(doc.Currency)
	money := func(v decimal.Decimal) string { return formatMoney(symbol, v) }

	data := &domain.DocumentData{
		ID:       doc.ID,
		Type:     string(doc.Type),
		Title:    doc.Type.Label(),
		Number:   doc.Number,
		Date:     renderDate(doc.Date).Format(dateLayout),
		Currency: lo.Ternary(doc.Currency != "", doc.Currency, types.DefaultCurrency),
		Sender: domain.SenderInfo{
			Name:    firstNonEmpty(info.Name, doc.CompanyName, FallbackBusinessName),
			Address: firstNonEmpty(info.Address, doc.FromInfo, FallbackBusinessAddress),
			Phone:   firstNonEmpty(info.Phone, FallbackBusinessPhone),
			Email:   firstNonEmpty(info.Email, FallbackBusinessEmail),
			Website: info.Website,
			TaxID:   info.TaxID,
		},
		Recipient: domain.ClientInfo{
			Name:    doc.Client.Name,
			Email:   doc.Client.Email,
			Phone:   doc.Client.Phone,
			Address: doc.Client.Address,
		},
		Notes:  doc.Notes,
		Terms:  firstNonEmpty(doc.Terms, custom.TermsAndConditions),
		Footer: firstNonEmpty(doc.Footer, custom.Footer),
		Branding: domain.Branding{
			PrimaryColor: custom.PrimaryColor,
			AccentColor:  custom.AccentColor,
			Font:         custom.Font,
		},
		LogoBase64: info.Logo,
	}

	if doc.DueDate != nil {
		data.DueDate = doc.DueDate.Format(dateLayout)
	}

	data.Items = lo.Map(doc.Items, func(item document.Item, _ int) domain.ItemRow {
		return domain.ItemRow{
			Name:     item.DisplayName(),
			Quantity: item.Quantity.String(),
			Price:    money(item.Price),
			Tax:      item.Tax.String() + "%",
			Subtotal: money(item.Subtotal),
		}
	})

	data.Totals = []domain.TotalLine{{Label: "Subtotal", Amount: money(doc.Subtotal)}}
	if !doc.TaxAmount.IsZero() {
		data.Totals = append(data.Totals, domain.TotalLine{
			Label:  fmt.Sprintf("Tax (%s%%)", doc.Tax.String()),
			Amount: money(doc.TaxAmount),
		})
	}
	if !doc.Discount.IsZero() {
		data.Totals = append(data.Totals, domain.TotalLine{Label: "Discount", Amount: "-" + money(doc.Discount)})
	}
	if !doc.Shipping.IsZero() {
		data.Totals = append(data.Totals, domain.TotalLine{Label: "Shipping", Amount: money(doc.Shipping)})
	}
	if !doc.AmountPaid.IsZero() {
		data.Totals = append(data.Totals, domain.TotalLine{Label: "Amount Paid", Amount: money(doc.AmountPaid)})
	}
	if !doc.BalanceDue.IsZero() {
		data.Totals = append(data.Totals, domain.TotalLine{Label: "Balance Due", Amount: money(doc.BalanceDue)})
	}
	data.Total = domain.TotalLine{Label: "Total", Amount: money(doc.Total)}

	return data
}

func formatMoney(symbol string, v decimal.Decimal) string {
	if v.IsNegative() {
		return "-" + symbol + v.Abs().StringFixed(2)
	}
	return symbol + v.StringFixed(2)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func mergeCustomization(base, override user.DocumentCustomization) user.DocumentCustomization {
	base.PrimaryColor = firstNonEmpty(override.PrimaryColor, base.PrimaryColor)
	base.AccentColor = firstNonEmpty(override.AccentColor, base.AccentColor)
	base.Font = firstNonEmpty(override.Font, base.Font)
	base.TermsAndConditions = override.TermsAndConditions
	base.Footer = override.Footer
	return base
}

// renderDate is used when a document was stored without a date
func renderDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
