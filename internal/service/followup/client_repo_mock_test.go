package followup

import (
	"context"
	"github.com/liamdatt/invoicegen/internal/domain"
	"sync"
)

var _ clientRepo = &clientRepoMock{}

type clientRepoMock struct {
	GetByIDFunc                   func(ctx context.Context, id int64) (*domain.Client, error)
	ListWithoutActiveFollowUpFunc func(ctx context.Context, limit int) ([]domain.Client, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id int64
		}
		ListWithoutActiveFollowUp []struct {
			Ctx context.Context
			Limit int
		}
	}
	lockGetByID sync.RWMutex
	lockListWithoutActiveFollowUp sync.RWMutex
}

func (mock *clientRepoMock) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	if mock.GetByIDFunc == nil {
		panic("clientRepoMock.GetByIDFunc: method is nil but clientRepo.GetByID was just called")
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

func (mock *clientRepoMock) GetByIDCalls() []struct {
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

func (mock *clientRepoMock) ListWithoutActiveFollowUp(ctx context.Context, limit int) ([]domain.Client, error) {
	if mock.ListWithoutActiveFollowUpFunc == nil {
		panic("clientRepoMock.ListWithoutActiveFollowUpFunc: method is nil but clientRepo.ListWithoutActiveFollowUp was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Limit int
	}{
		Ctx: ctx,
		Limit: limit,
	}
	mock.lockListWithoutActiveFollowUp.Lock()
	mock.calls.ListWithoutActiveFollowUp = append(mock.calls.ListWithoutActiveFollowUp, callInfo)
	mock.lockListWithoutActiveFollowUp.Unlock()
	return mock.ListWithoutActiveFollowUpFunc(ctx, limit)
}

func (mock *clientRepoMock) ListWithoutActiveFollowUpCalls() []struct {
	Ctx context.Context
	Limit int
} {
	var calls []struct {
		Ctx context.Context
		Limit int
	}
	mock.lockListWithoutActiveFollowUp.RLock()
	calls = mock.calls.ListWithoutActiveFollowUp
	mock.lockListWithoutActiveFollowUp.RUnlock()
	return calls
}
