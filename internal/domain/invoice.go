package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProformaCurrency is used when a proforma invoice is created without one.
const DefaultProformaCurrency = "JMD"

// Client is the customer an invoice or follow-up profile belongs to.
type Client struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem is one itemized labour/parts row of a general invoice.
type LineItem struct {
	ID          int64
	InvoiceID   int64
	Description string
	LabourCost  decimal.Decimal
	PartsCost   decimal.Decimal
}

// ProformaDetails carries the vehicle-offer fields of a proforma invoice.
type ProformaDetails struct {
	Make     string
	Model    string
	Year     *int
	Colour   string
	CCRating string
	Price    *decimal.Decimal
	Currency string
}

// Invoice is a vehicle-service invoice. Totals are never stored; they are
// derived from Items on every read.
type Invoice struct {
	ID        int64
	ClientID  int64
	Client    *Client
	Type      InvoiceType
	Date      time.Time
	Vehicle   string
	LicNo     string
	ChassisNo string
	EngineNo  string
	Proforma  ProformaDetails
	Items     []LineItem
	Document  Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filename returns the deterministic document filename for an invoice.
// Other components rely on this exact shape.
func Filename(id int64, t InvoiceType) string {
	return fmt.Sprintf("invoice-%d-%s.pdf", id, t.Slug())
}

// Filename returns the document filename of this invoice.
func (inv *Invoice) Filename() string {
	return Filename(inv.ID, inv.Type)
}

// ValidateForRender checks the fields a document cannot be produced without.
// Proforma invoices require make, model and price.
func (inv *Invoice) ValidateForRender() error {
	var errs []FieldError

	if !inv.Type.IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: fmt.Sprintf("unknown invoice type %q", inv.Type)})
	}

	if inv.Type == InvoiceTypeProforma {
		if strings.TrimSpace(inv.Proforma.Make) == "" {
			errs = append(errs, FieldError{Field: "proforma_make", Message: "Make is required for proforma invoices."})
		}
		if strings.TrimSpace(inv.Proforma.Model) == "" {
			errs = append(errs, FieldError{Field: "proforma_model", Message: "Model is required for proforma invoices."})
		}
		if inv.Proforma.Price == nil {
			errs = append(errs, FieldError{Field: "proforma_price", Message: "Price is required for proforma invoices."})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// InvoiceFilter narrows invoice listings. Results are keyset-paged by id
// ascending; a zero Limit means the store default.
type InvoiceFilter struct {
	AfterID  int64
	Limit    int
	Type     *InvoiceType
	ClientID *int64
}
