package document

import (
	"context"
	"github.com/liamdatt/invoicegen/internal/domain"
	"sync"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	GetFunc func(ctx context.Context) (*domain.GoogleAccount, error)

	calls struct {
		Get []struct {
			Ctx context.Context
		}
	}
	lockGet sync.RWMutex
}

func (mock *accountRepoMock) Get(ctx context.Context) (*domain.GoogleAccount, error) {
	if mock.GetFunc == nil {
		panic("accountRepoMock.GetFunc: method is nil but accountRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx)
}

func (mock *accountRepoMock) GetCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
