package followup

import (
	"regexp"
	"strconv"
	"time"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// DefaultTemplate is used when no message template is configured.
const DefaultTemplate = "Hi {client_name}, just checking in from {business_name}! " +
	"It's been {days_since_service} days since we last serviced you on {last_service_date}. " +
	"Let us know if you need anything."

const (
	messageDateLayout   = "January 02, 2006"
	defaultBusinessName = "our team"
)

// placeholder matches {name}; doubled braces are literal.
var placeholder = regexp.MustCompile(`\{\{|\}\}|\{([A-Za-z0-9_]*)\}`)

// MessageContext returns the values available to message templates.
func MessageContext(p *domain.FollowUpProfile, s domain.FollowUpSettings, today time.Time) map[string]string {
	ctx := map[string]string{
		"business_name":  defaultBusinessName,
		"follow_up_days": strconv.Itoa(EffectiveInterval(p, s)),
	}
	if s.BusinessDisplayName != "" {
		ctx["business_name"] = s.BusinessDisplayName
	}
	if p.Client != nil {
		ctx["client_name"] = p.Client.Name
		ctx["client_email"] = p.Client.Email
		ctx["client_phone"] = p.Client.Phone
	}
	if p.LastServiceDate != nil {
		ctx["last_service_date"] = p.LastServiceDate.Format(messageDateLayout)
		ctx["days_since_service"] = strconv.Itoa(daysBetween(*p.LastServiceDate, today))
	}
	if p.NextFollowUpDate != nil {
		ctx["next_follow_up_date"] = p.NextFollowUpDate.Format(messageDateLayout)
	}
	return ctx
}

// RenderMessage fills the {name} placeholders of template. Unknown or
// unavailable placeholders render as empty strings; it never fails.
func RenderMessage(template string, p *domain.FollowUpProfile, s domain.FollowUpSettings, today time.Time) string {
	values := MessageContext(p, s, today)
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		switch m {
		case "{{":
			return "{"
		case "}}":
			return "}"
		}
		return values[m[1:len(m)-1]]
	})
}
