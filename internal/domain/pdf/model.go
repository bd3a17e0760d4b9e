package pdf

// DocumentData is the normalized render model consumed by the pdf templates.
// Every amount is preformatted so the server and offline paths print the same text.
type DocumentData struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Title      string      `json:"title"`
	Number     string      `json:"number"`
	Date       string      `json:"date"`
	DueDate    string      `json:"due_date,omitempty"`
	Currency   string      `json:"currency"`
	Sender     SenderInfo  `json:"sender"`
	Recipient  ClientInfo  `json:"recipient"`
	Items      []ItemRow   `json:"items"`
	Totals     []TotalLine `json:"totals"`
	Total      TotalLine   `json:"total"`
	Notes      string      `json:"notes,omitempty"`
	Terms      string      `json:"terms,omitempty"`
	Footer     string      `json:"footer,omitempty"`
	Branding   Branding    `json:"branding"`
	LogoPath   string      `json:"logo_path,omitempty"`
	LogoBase64 string      `json:"-"`
}

// SenderInfo is the business identity shown in the header
type SenderInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// ClientInfo is the bill-to block
type ClientInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ItemRow is one row of the item table
type ItemRow struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Tax      string `json:"tax"`
	Subtotal string `json:"subtotal"`
}

// TotalLine is one label/amount pair in the totals block
type TotalLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type Branding struct {
	PrimaryColor string `json:"primary_color"`
	AccentColor  string `json:"accent_color"`
	Font         string `json:"font"`
}
