package document

import (
	"sync"
)

var _ assetLocator = &assetLocatorMock{}

type assetLocatorMock struct {
	DataURLFunc func(candidates ...string) (string, bool)

	calls struct {
		DataURL []struct {
			Candidates []string
		}
	}
	lockDataURL sync.RWMutex
}

func (mock *assetLocatorMock) DataURL(candidates ...string) (string, bool) {
	if mock.DataURLFunc == nil {
		panic("assetLocatorMock.DataURLFunc: method is nil but assetLocator.DataURL was just called")
	}
	callInfo := struct {
		Candidates []string
	}{
		Candidates: candidates,
	}
	mock.lockDataURL.Lock()
	mock.calls.DataURL = append(mock.calls.DataURL, callInfo)
	mock.lockDataURL.Unlock()
	return mock.DataURLFunc(candidates...)
}

func (mock *assetLocatorMock) DataURLCalls() []struct {
	Candidates []string
} {
	var calls []struct {
		Candidates []string
	}
	mock.lockDataURL.RLock()
	calls = mock.calls.DataURL
	mock.lockDataURL.RUnlock()
	return calls
}
