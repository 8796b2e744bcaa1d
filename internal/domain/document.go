package domain

import (
	"fmt"
	"strings"
	"time"
)

// RemoteFile describes a copy held by the remote document store.
type RemoteFile struct {
	ID           string
	Name         string
	ViewLink     string
	DownloadLink string
	SyncedAt     time.Time
}

// Document is the canonical rendered file of an invoice. At most one arm is
// populated; the zero value is NoDocument. Values are built only through the
// constructors below, which enforce the arm's own invariants.
type Document struct {
	kind   DocumentKind
	local  string
	remote RemoteFile
}

// NoDocument returns the empty union.
func NoDocument() Document {
	return Document{kind: DocumentKindNone}
}

// NewLocalDocument returns a Local document pointing at a blob reference.
func NewLocalDocument(ref string) (Document, error) {
	if strings.TrimSpace(ref) == "" {
		return Document{}, fmt.Errorf("local document: %w", NewValidationError("blob_ref", "required"))
	}
	return Document{kind: DocumentKindLocal, local: ref}, nil
}

// NewRemoteDocument returns a Remote document. The remote id and sync time
// are mandatory.
func NewRemoteDocument(f RemoteFile) (Document, error) {
	var errs []FieldError
	if strings.TrimSpace(f.ID) == "" {
		errs = append(errs, FieldError{Field: "remote_file_id", Message: "required"})
	}
	if f.SyncedAt.IsZero() {
		errs = append(errs, FieldError{Field: "synced_at", Message: "required"})
	}
	if len(errs) > 0 {
		return Document{}, fmt.Errorf("remote document: %w", NewValidationErrors(errs))
	}
	return Document{kind: DocumentKindRemote, remote: f}, nil
}

// Kind reports the active arm.
func (d Document) Kind() DocumentKind {
	if d.kind == "" {
		return DocumentKindNone
	}
	return d.kind
}

// IsNone reports whether no document is stored.
func (d Document) IsNone() bool { return d.Kind() == DocumentKindNone }

// Local returns the blob reference when the Local arm is active.
func (d Document) Local() (string, bool) {
	if d.kind != DocumentKindLocal {
		return "", false
	}
	return d.local, true
}

// Remote returns the remote descriptor when the Remote arm is active.
func (d Document) Remote() (RemoteFile, bool) {
	if d.kind != DocumentKindRemote {
		return RemoteFile{}, false
	}
	return d.remote, true
}

func (d Document) String() string {
	switch d.Kind() {
	case DocumentKindLocal:
		return "local:" + d.local
	case DocumentKindRemote:
		return "remote:" + d.remote.ID
	default:
		return "none"
	}
}

// RemoteFolder is a folder in the remote document store that uploads can
// be placed into.
type RemoteFolder struct {
	ID   string
	Name string
}

// Attachment is a file attached to an outgoing mail.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
