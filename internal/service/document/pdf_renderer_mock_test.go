package document

import (
	"context"
	"sync"
)

var _ pdfRenderer = &pdfRendererMock{}

type pdfRendererMock struct {
	RenderHTMLToPDFFunc func(ctx context.Context, html string) ([]byte, error)

	calls struct {
		RenderHTMLToPDF []struct {
			Ctx context.Context
			Html string
		}
	}
	lockRenderHTMLToPDF sync.RWMutex
}

func (mock *pdfRendererMock) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if mock.RenderHTMLToPDFFunc == nil {
		panic("pdfRendererMock.RenderHTMLToPDFFunc: method is nil but pdfRenderer.RenderHTMLToPDF was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Html string
	}{
		Ctx: ctx,
		Html: html,
	}
	mock.lockRenderHTMLToPDF.Lock()
	mock.calls.RenderHTMLToPDF = append(mock.calls.RenderHTMLToPDF, callInfo)
	mock.lockRenderHTMLToPDF.Unlock()
	return mock.RenderHTMLToPDFFunc(ctx, html)
}

func (mock *pdfRendererMock) RenderHTMLToPDFCalls() []struct {
	Ctx context.Context
	Html string
} {
	var calls []struct {
		Ctx context.Context
		Html string
	}
	mock.lockRenderHTMLToPDF.RLock()
	calls = mock.calls.RenderHTMLToPDF
	mock.lockRenderHTMLToPDF.RUnlock()
	return calls
}
