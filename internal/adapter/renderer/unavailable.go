package renderer

import (
	"context"
	"fmt"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// Unavailable stands in for Chromium when no browser could be located, so
// operations that never render keep working.
type Unavailable struct {
	Err error
}

// RenderHTMLToPDF always fails with domain.ErrRenderingUnavailable.
func (u Unavailable) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	if u.Err != nil {
		return nil, u.Err
	}
	return nil, fmt.Errorf("renderer: %w", domain.ErrRenderingUnavailable)
}
