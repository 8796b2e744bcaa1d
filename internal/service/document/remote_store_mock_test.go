package document

import (
	"context"
	"github.com/liamdatt/invoicegen/internal/domain"
	"sync"
)

var _ RemoteStore = &RemoteStoreMock{}

type RemoteStoreMock struct {
	UploadFunc      func(ctx context.Context, content []byte, filename string, existingID string, parentID string) (domain.RemoteFile, error)
	DownloadFunc    func(ctx context.Context, id string) ([]byte, error)
	SendMessageFunc func(ctx context.Context, to string, subject string, body string, attachment domain.Attachment) (string, error)

	calls struct {
		Upload []struct {
			Ctx context.Context
			Content []byte
			Filename string
			ExistingID string
			ParentID string
		}
		Download []struct {
			Ctx context.Context
			Id string
		}
		SendMessage []struct {
			Ctx context.Context
			To string
			Subject string
			Body string
			Attachment domain.Attachment
		}
	}
	lockUpload sync.RWMutex
	lockDownload sync.RWMutex
	lockSendMessage sync.RWMutex
}

func (mock *RemoteStoreMock) Upload(ctx context.Context, content []byte, filename string, existingID string, parentID string) (domain.RemoteFile, error) {
	if mock.UploadFunc == nil {
		panic("RemoteStoreMock.UploadFunc: method is nil but RemoteStore.Upload was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Content []byte
		Filename string
		ExistingID string
		ParentID string
	}{
		Ctx: ctx,
		Content: content,
		Filename: filename,
		ExistingID: existingID,
		ParentID: parentID,
	}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, content, filename, existingID, parentID)
}

func (mock *RemoteStoreMock) UploadCalls() []struct {
	Ctx context.Context
	Content []byte
	Filename string
	ExistingID string
	ParentID string
} {
	var calls []struct {
		Ctx context.Context
		Content []byte
		Filename string
		ExistingID string
		ParentID string
	}
	mock.lockUpload.RLock()
	calls = mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}

func (mock *RemoteStoreMock) Download(ctx context.Context, id string) ([]byte, error) {
	if mock.DownloadFunc == nil {
		panic("RemoteStoreMock.DownloadFunc: method is nil but RemoteStore.Download was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id string
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockDownload.Lock()
	mock.calls.Download = append(mock.calls.Download, callInfo)
	mock.lockDownload.Unlock()
	return mock.DownloadFunc(ctx, id)
}

func (mock *RemoteStoreMock) DownloadCalls() []struct {
	Ctx context.Context
	Id string
} {
	var calls []struct {
		Ctx context.Context
		Id string
	}
	mock.lockDownload.RLock()
	calls = mock.calls.Download
	mock.lockDownload.RUnlock()
	return calls
}

func (mock *RemoteStoreMock) SendMessage(ctx context.Context, to string, subject string, body string, attachment domain.Attachment) (string, error) {
	if mock.SendMessageFunc == nil {
		panic("RemoteStoreMock.SendMessageFunc: method is nil but RemoteStore.SendMessage was just called")
	}
	callInfo := struct {
		Ctx context.Context
		To string
		Subject string
		Body string
		Attachment domain.Attachment
	}{
		Ctx: ctx,
		To: to,
		Subject: subject,
		Body: body,
		Attachment: attachment,
	}
	mock.lockSendMessage.Lock()
	mock.calls.SendMessage = append(mock.calls.SendMessage, callInfo)
	mock.lockSendMessage.Unlock()
	return mock.SendMessageFunc(ctx, to, subject, body, attachment)
}

func (mock *RemoteStoreMock) SendMessageCalls() []struct {
	Ctx context.Context
	To string
	Subject string
	Body string
	Attachment domain.Attachment
} {
	var calls []struct {
		Ctx context.Context
		To string
		Subject string
		Body string
		Attachment domain.Attachment
	}
	mock.lockSendMessage.RLock()
	calls = mock.calls.SendMessage
	mock.lockSendMessage.RUnlock()
	return calls
}
