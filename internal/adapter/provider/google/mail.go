package google

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// buildMessage assembles an RFC 822 multipart/mixed message with a plain
// text body and one base64 attachment.
func buildMessage(from, to, subject, body string, att domain.Attachment) ([]byte, error) {
	var parts bytes.Buffer
	mw := multipart.NewWriter(&parts)

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textHeader.Set("Content-Transfer-Encoding", "quoted-printable")
	tw, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	qw := quotedprintable.NewWriter(tw)
	if _, err := qw.Write([]byte(body)); err != nil {
		return nil, err
	}
	if err := qw.Close(); err != nil {
		return nil, err
	}

	if len(att.Data) > 0 {
		ct := att.ContentType
		if ct == "" {
			ct = pdfMIME
		}
		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", mime.FormatMediaType(ct, map[string]string{"name": att.Filename}))
		attHeader.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": att.Filename}))
		attHeader.Set("Content-Transfer-Encoding", "base64")
		aw, err := mw.CreatePart(attHeader)
		if err != nil {
			return nil, err
		}
		if _, err := aw.Write(wrapBase64(att.Data)); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	if from != "" {
		fmt.Fprintf(&msg, "From: %s\r\n", from)
	}
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())
	msg.Write(parts.Bytes())
	return msg.Bytes(), nil
}

// wrapBase64 encodes data in 76 character lines.
func wrapBase64(data []byte) []byte {
	enc := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	for len(enc) > 76 {
		out.WriteString(enc[:76])
		out.WriteString("\r\n")
		enc = enc[76:]
	}
	out.WriteString(enc)
	out.WriteString("\r\n")
	return out.Bytes()
}
