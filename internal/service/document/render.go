package document

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/internal/money"
)

const dateLayout = "January 02, 2006"

//go:embed templates/*.html
var templateFS embed.FS

var layouts = template.Must(template.New("invoice").ParseFS(templateFS, "templates/*.html"))

type clientView struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type itemView struct {
	Description string
	Labour      string
	Parts       string
}

type proformaView struct {
	Make     string
	Model    string
	Year     string
	Colour   string
	CCRating string
	Price    string
}

// invoiceView is the fully formatted input of the invoice layouts. All
// amounts are pre-formatted so the templates carry no arithmetic.
type invoiceView struct {
	Number    int64
	Title     string
	Date      string
	Client    clientView
	Vehicle   string
	LicNo     string
	ChassisNo string
	EngineNo  string

	Items          []itemView
	PartsSubtotal  string
	LabourSubtotal string
	TaxRate        string
	Tax            string
	Total          string

	Proforma proformaView

	LogoSrc      template.URL
	SignatureSrc template.URL
}

// Render produces the PDF of an invoice without storing it.
func (s *Service) Render(ctx context.Context, invoiceID int64) ([]byte, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", invoiceID, err)
	}
	return s.render(ctx, inv)
}

func (s *Service) render(ctx context.Context, inv *domain.Invoice) ([]byte, error) {
	html, err := s.renderHTML(inv)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", inv.ID, err)
	}

	s.log.DebugContext(ctx, "invoice rendered",
		slog.Int64("invoice_id", inv.ID),
		slog.String("type", string(inv.Type)),
		slog.Int("bytes", len(pdf)),
	)
	return pdf, nil
}

// renderHTML validates the invoice and executes the layout for its type.
func (s *Service) renderHTML(inv *domain.Invoice) (string, error) {
	if err := inv.ValidateForRender(); err != nil {
		return "", err
	}

	view := s.buildView(inv)

	var buf bytes.Buffer
	if err := layouts.ExecuteTemplate(&buf, inv.Type.Slug()+".html", view); err != nil {
		return "", fmt.Errorf("execute %s layout: %w", inv.Type.Slug(), err)
	}
	return buf.String(), nil
}

func (s *Service) buildView(inv *domain.Invoice) invoiceView {
	v := invoiceView{
		Number:    inv.ID,
		Date:      inv.Date.Format(dateLayout),
		Vehicle:   inv.Vehicle,
		LicNo:     inv.LicNo,
		ChassisNo: inv.ChassisNo,
		EngineNo:  inv.EngineNo,
	}
	if inv.Client != nil {
		v.Client = clientView{
			Name:    inv.Client.Name,
			Email:   inv.Client.Email,
			Phone:   inv.Client.Phone,
			Address: inv.Client.Address,
		}
	}

	if src, ok := s.assets.DataURL(s.names.Logo...); ok {
		v.LogoSrc = template.URL(src)
	}
	if src, ok := s.assets.DataURL(s.names.Signature...); ok {
		v.SignatureSrc = template.URL(src)
	}

	switch inv.Type {
	case domain.InvoiceTypeProforma:
		v.Title = "Proforma Invoice"
		p := inv.Proforma
		v.Proforma = proformaView{
			Make:     p.Make,
			Model:    p.Model,
			Colour:   p.Colour,
			CCRating: p.CCRating,
			Price:    money.FormatPrice(p.Price, p.Currency),
		}
		if p.Year != nil {
			v.Proforma.Year = strconv.Itoa(*p.Year)
		}
	default:
		v.Title = "Invoice"
		totals := s.money.ComputeInvoice(inv.Items)
		for _, it := range inv.Items {
			v.Items = append(v.Items, itemView{
				Description: it.Description,
				Labour:      money.FormatTotal(it.LabourCost),
				Parts:       money.FormatTotal(it.PartsCost),
			})
		}
		v.PartsSubtotal = money.FormatTotal(totals.PartsSubtotal)
		v.LabourSubtotal = money.FormatTotal(totals.LabourSubtotal)
		v.Tax = money.FormatTotal(totals.Tax)
		v.Total = money.FormatTotal(totals.Total)
		v.TaxRate = s.money.TaxRate().Mul(decimal.NewFromInt(100)).String() + "%"
	}
	return v
}
