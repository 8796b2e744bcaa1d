package followup

import (
	"context"
	"sync"
)

var _ Messenger = &MessengerMock{}

type MessengerMock struct {
	SendFunc func(ctx context.Context, phone string, body string) (string, error)

	calls struct {
		Send []struct {
			Ctx context.Context
			Phone string
			Body string
		}
	}
	lockSend sync.RWMutex
}

func (mock *MessengerMock) Send(ctx context.Context, phone string, body string) (string, error) {
	if mock.SendFunc == nil {
		panic("MessengerMock.SendFunc: method is nil but Messenger.Send was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Phone string
		Body string
	}{
		Ctx: ctx,
		Phone: phone,
		Body: body,
	}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, phone, body)
}

func (mock *MessengerMock) SendCalls() []struct {
	Ctx context.Context
	Phone string
	Body string
} {
	var calls []struct {
		Ctx context.Context
		Phone string
		Body string
	}
	mock.lockSend.RLock()
	calls = mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
