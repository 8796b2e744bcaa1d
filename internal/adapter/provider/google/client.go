// Package google implements the remote document store on Google Drive and
// the invoice mail transport on Gmail, sharing one OAuth token.
package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/liamdatt/invoicegen/internal/config"
	"github.com/liamdatt/invoicegen/internal/domain"
)

const (
	folderQuery = "mimeType='application/vnd.google-apps.folder' and trashed=false"
	fileFields  = "id, name, webViewLink, webContentLink"
	pdfMIME     = "application/pdf"
)

// Scopes requested when the token is issued.
var Scopes = []string{drive.DriveFileScope, drive.DriveMetadataReadonlyScope, gmail.GmailSendScope}

// TokenSaver persists refreshed OAuth tokens.
type TokenSaver interface {
	SaveToken(ctx context.Context, email string, token []byte) error
}

// Client talks to Drive and Gmail on behalf of the connected account.
type Client struct {
	drive *drive.Service
	gmail *gmail.Service
	from  string
	log   *slog.Logger
}

// NewClient builds a client from the stored account token.
// Returns an error wrapping domain.ErrConfigurationMissing when the OAuth
// client credentials are not configured or no token has been stored.
func NewClient(ctx context.Context, cfg config.GoogleConfig, account *domain.GoogleAccount, saver TokenSaver, logger *slog.Logger) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, domain.NewMissingConfigError("GOOGLE_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		return nil, domain.NewMissingConfigError("GOOGLE_CLIENT_SECRET")
	}
	if account == nil || !account.HasToken() {
		return nil, domain.NewMissingConfigError("google account token")
	}

	var tok oauth2.Token
	if err := json.Unmarshal(account.Token, &tok); err != nil {
		return nil, fmt.Errorf("google: decode stored token: %w", err)
	}

	log := logger.With("adapter", "google")

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
		Scopes:       Scopes,
	}

	// Token refreshes run on a context detached from the caller so a
	// cancelled request does not poison the cached source.
	bg := context.WithoutCancel(ctx)
	src := &persistingSource{
		base: oc.TokenSource(bg, &tok),
		last: tok.AccessToken,
		save: func(t *oauth2.Token) {
			raw, err := json.Marshal(t)
			if err != nil {
				log.Error("encode refreshed token", slog.String("error", err.Error()))
				return
			}
			if err := saver.SaveToken(bg, "", raw); err != nil {
				log.Error("persist refreshed token", slog.String("error", err.Error()))
			}
		},
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &oauth2.Transport{Source: src, Base: http.DefaultTransport},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.APIEndpoint))
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: drive service: %w", err)
	}
	gmailSvc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: gmail service: %w", err)
	}

	return &Client{drive: driveSvc, gmail: gmailSvc, from: account.Email, log: log}, nil
}

// ListFolders returns every non-trashed Drive folder ordered by name.
func (c *Client) ListFolders(ctx context.Context) ([]domain.RemoteFolder, error) {
	var folders []domain.RemoteFolder
	err := c.drive.Files.List().
		Q(folderQuery).
		OrderBy("name").
		PageSize(100).
		Fields("nextPageToken, files(id, name)").
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				folders = append(folders, domain.RemoteFolder{ID: f.Id, Name: f.Name})
			}
			return nil
		})
	if err != nil {
		return nil, remoteErr("list folders", err)
	}
	return folders, nil
}

// Upload stores content as a PDF named filename. When existingID is set the
// object is updated in place, otherwise it is created inside parentID (or
// the Drive root when parentID is empty). SyncedAt is left for the caller.
func (c *Client) Upload(ctx context.Context, content []byte, filename, existingID, parentID string) (domain.RemoteFile, error) {
	media := bytes.NewReader(content)

	var (
		f   *drive.File
		err error
	)
	if existingID != "" {
		f, err = c.drive.Files.Update(existingID, &drive.File{Name: filename}).
			Media(media, googleapi.ContentType(pdfMIME)).
			Fields(fileFields).
			Context(ctx).
			Do()
	} else {
		meta := &drive.File{Name: filename, MimeType: pdfMIME}
		if parentID != "" {
			meta.Parents = []string{parentID}
		}
		f, err = c.drive.Files.Create(meta).
			Media(media, googleapi.ContentType(pdfMIME)).
			Fields(fileFields).
			Context(ctx).
			Do()
	}
	if err != nil {
		return domain.RemoteFile{}, remoteErr("upload "+filename, err)
	}

	c.log.InfoContext(ctx, "uploaded file",
		slog.String("file_id", f.Id),
		slog.String("name", f.Name),
		slog.Bool("updated", existingID != ""),
	)

	return domain.RemoteFile{
		ID:           f.Id,
		Name:         f.Name,
		ViewLink:     f.WebViewLink,
		DownloadLink: f.WebContentLink,
	}, nil
}

// Download returns the media of a stored object.
func (c *Client) Download(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.drive.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, remoteErr("download "+id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteErr("read "+id, err)
	}
	return data, nil
}

// SendMessage mails body with the attachment through Gmail and returns the
// Gmail message ID.
func (c *Client) SendMessage(ctx context.Context, to, subject, body string, attachment domain.Attachment) (string, error) {
	raw, err := buildMessage(c.from, to, subject, body, attachment)
	if err != nil {
		return "", fmt.Errorf("google: build message: %w", err)
	}

	msg, err := c.gmail.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return "", remoteErr("send mail", err)
	}

	c.log.InfoContext(ctx, "sent mail", slog.String("message_id", msg.Id), slog.String("to", to))
	return msg.Id, nil
}

func remoteErr(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("google: %s: %w: %d %s", op, domain.ErrRemoteSyncFailed, gerr.Code, strings.TrimSpace(gerr.Message))
	}
	return fmt.Errorf("google: %s: %w: %v", op, domain.ErrRemoteSyncFailed, err)
}

// persistingSource hands out tokens from base and reports every token whose
// access value differs from the last one seen.
type persistingSource struct {
	mu   sync.Mutex
	base oauth2.TokenSource
	last string
	save func(*oauth2.Token)
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	changed := tok.AccessToken != s.last
	s.last = tok.AccessToken
	s.mu.Unlock()

	if changed {
		s.save(tok)
	}
	return tok, nil
}
