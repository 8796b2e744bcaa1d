package document

import (
	"fmt"
	"strings"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// GenerateOptions controls whether a freshly rendered document is kept.
type GenerateOptions struct {
	StoreLocal bool
	Overwrite  bool
}

// EmailInput holds the parameters for mailing an invoice document.
// Empty To falls back to the client's email; empty Subject and Body get
// the standard wording.
type EmailInput struct {
	InvoiceID int64
	To        string
	Subject   string
	Body      string
}

// Validate checks all fields and collects all errors.
func (i EmailInput) Validate() error {
	var errs []domain.FieldError

	if i.InvoiceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "invoice_id", Message: "required"})
	}
	if to := strings.TrimSpace(i.To); to != "" && !strings.Contains(to, "@") {
		errs = append(errs, domain.FieldError{Field: "to", Message: "invalid email address"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i EmailInput) subject() string {
	if s := strings.TrimSpace(i.Subject); s != "" {
		return s
	}
	return fmt.Sprintf("Invoice #%d", i.InvoiceID)
}

func (i EmailInput) body() string {
	if strings.TrimSpace(i.Body) != "" {
		return i.Body
	}
	return fmt.Sprintf("Please find attached invoice #%d.", i.InvoiceID)
}

// RegenerateOptions configures a batch regeneration sweep.
type RegenerateOptions struct {
	DryRun   bool
	PageSize int // defaults to 100
}
