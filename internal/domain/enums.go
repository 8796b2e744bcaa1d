package domain

// InvoiceType distinguishes itemized invoices from quote-style proformas.
type InvoiceType string

const (
	InvoiceTypeGeneral  InvoiceType = "GENERAL"
	InvoiceTypeProforma InvoiceType = "PROFORMA"
)

func (t InvoiceType) String() string { return string(t) }

func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeGeneral, InvoiceTypeProforma:
		return true
	}
	return false
}

// Slug returns the lower-case form used in filenames.
func (t InvoiceType) Slug() string {
	if t == InvoiceTypeProforma {
		return "proforma"
	}
	return "general"
}

// DocumentKind is the active arm of the Document union.
type DocumentKind string

const (
	DocumentKindNone   DocumentKind = "NONE"
	DocumentKindLocal  DocumentKind = "LOCAL"
	DocumentKindRemote DocumentKind = "REMOTE"
)

func (k DocumentKind) String() string { return string(k) }

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindNone, DocumentKindLocal, DocumentKindRemote:
		return true
	}
	return false
}

// MessageStatus is the outcome of one outreach attempt.
type MessageStatus string

const (
	MessageStatusSent   MessageStatus = "SENT"
	MessageStatusFailed MessageStatus = "FAILED"
)

func (s MessageStatus) String() string { return string(s) }

func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageStatusSent, MessageStatusFailed:
		return true
	}
	return false
}

// MessageTrigger records what started an outreach attempt.
type MessageTrigger string

const (
	MessageTriggerManual    MessageTrigger = "MANUAL"
	MessageTriggerScheduled MessageTrigger = "SCHEDULED"
)

func (t MessageTrigger) String() string { return string(t) }

func (t MessageTrigger) IsValid() bool {
	switch t {
	case MessageTriggerManual, MessageTriggerScheduled:
		return true
	}
	return false
}
