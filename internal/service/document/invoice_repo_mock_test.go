package document

import (
	"context"
	"github.com/liamdatt/invoicegen/internal/domain"
	"sync"
)

var _ invoiceRepo = &invoiceRepoMock{}

type invoiceRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Invoice, error)
	GetForUpdateFunc func(ctx context.Context, id int64) (*domain.Invoice, error)
	ListFunc         func(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error)
	SetDocumentFunc  func(ctx context.Context, id int64, doc domain.Document) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id int64
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id int64
		}
		List []struct {
			Ctx context.Context
			F domain.InvoiceFilter
		}
		SetDocument []struct {
			Ctx context.Context
			Id int64
			Doc domain.Document
		}
	}
	lockGetByID sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockList sync.RWMutex
	lockSetDocument sync.RWMutex
}

func (mock *invoiceRepoMock) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	if mock.GetByIDFunc == nil {
		panic("invoiceRepoMock.GetByIDFunc: method is nil but invoiceRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id int64
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *invoiceRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id int64
} {
	var calls []struct {
		Ctx context.Context
		Id int64
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *invoiceRepoMock) GetForUpdate(ctx context.Context, id int64) (*domain.Invoice, error) {
	if mock.GetForUpdateFunc == nil {
		panic("invoiceRepoMock.GetForUpdateFunc: method is nil but invoiceRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id int64
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *invoiceRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id int64
} {
	var calls []struct {
		Ctx context.Context
		Id int64
	}
	mock.lockGetForUpdate.RLock()
	calls = mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *invoiceRepoMock) List(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error) {
	if mock.ListFunc == nil {
		panic("invoiceRepoMock.ListFunc: method is nil but invoiceRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F domain.InvoiceFilter
	}{
		Ctx: ctx,
		F: f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *invoiceRepoMock) ListCalls() []struct {
	Ctx context.Context
	F domain.InvoiceFilter
} {
	var calls []struct {
		Ctx context.Context
		F domain.InvoiceFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *invoiceRepoMock) SetDocument(ctx context.Context, id int64, doc domain.Document) error {
	if mock.SetDocumentFunc == nil {
		panic("invoiceRepoMock.SetDocumentFunc: method is nil but invoiceRepo.SetDocument was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id int64
		Doc domain.Document
	}{
		Ctx: ctx,
		Id: id,
		Doc: doc,
	}
	mock.lockSetDocument.Lock()
	mock.calls.SetDocument = append(mock.calls.SetDocument, callInfo)
	mock.lockSetDocument.Unlock()
	return mock.SetDocumentFunc(ctx, id, doc)
}

func (mock *invoiceRepoMock) SetDocumentCalls() []struct {
	Ctx context.Context
	Id int64
	Doc domain.Document
} {
	var calls []struct {
		Ctx context.Context
		Id int64
		Doc domain.Document
	}
	mock.lockSetDocument.RLock()
	calls = mock.calls.SetDocument
	mock.lockSetDocument.RUnlock()
	return calls
}
