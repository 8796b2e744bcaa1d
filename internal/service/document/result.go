package document

import "github.com/liamdatt/invoicegen/internal/domain"

// Download is the canonical document of an invoice.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
	Source      domain.DocumentKind // NONE when rendered on the fly
}

// RegenerateAction is the outcome of one invoice in a sweep.
type RegenerateAction string

const (
	ActionWouldRegenerate RegenerateAction = "would_regenerate"
	ActionRegenerated     RegenerateAction = "regenerated"
	ActionFailed          RegenerateAction = "failed"
)

// RegenerateResult records what happened to one invoice.
type RegenerateResult struct {
	InvoiceID int64
	Type      domain.InvoiceType
	Action    RegenerateAction
	Err       error
}

// RegenerateReport summarizes a sweep. Processed counts invoices visited,
// Regenerated counts invoices actually re-rendered and stored.
type RegenerateReport struct {
	Found       int
	Processed   int
	Regenerated int
	Failed      int
	DryRun      bool
	Results     []RegenerateResult
}
