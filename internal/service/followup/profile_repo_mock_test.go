package followup

import (
	"context"
	"github.com/liamdatt/invoicegen/internal/domain"
	"sync"
	"time"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetOrCreateSettingsFunc func(ctx context.Context) (*domain.FollowUpSettings, error)
	SaveSettingsFunc        func(ctx context.Context, s domain.FollowUpSettings) (*domain.FollowUpSettings, error)
	UpsertProfileFunc       func(ctx context.Context, clientID int64, lastService *time.Time, override *int) (*domain.FollowUpProfile, error)
	GetProfileFunc          func(ctx context.Context, id int64) (*domain.FollowUpProfile, error)
	GetProfileForUpdateFunc func(ctx context.Context, id int64) (*domain.FollowUpProfile, error)
	ListProfilesFunc        func(ctx context.Context, f domain.ProfileFilter) ([]domain.FollowUpProfile, error)
	SaveProfileFunc         func(ctx context.Context, p *domain.FollowUpProfile) error
	AppendMessageFunc       func(ctx context.Context, e domain.MessageLogEntry) (*domain.MessageLogEntry, error)
	ListMessagesFunc        func(ctx context.Context, profileID int64, limit int) ([]domain.MessageLogEntry, error)

	calls struct {
		GetOrCreateSettings []struct {
			Ctx context.Context
		}
		SaveSettings []struct {
			Ctx context.Context
			S domain.FollowUpSettings
		}
		UpsertProfile []struct {
			Ctx context.Context
			ClientID int64
			LastService *time.Time
			Override *int
		}
		GetProfile []struct {
			Ctx context.Context
			Id int64
		}
		GetProfileForUpdate []struct {
			Ctx context.Context
			Id int64
		}
		ListProfiles []struct {
			Ctx context.Context
			F domain.ProfileFilter
		}
		SaveProfile []struct {
			Ctx context.Context
			P *domain.FollowUpProfile
		}
		AppendMessage []struct {
			Ctx context.Context
			E domain.MessageLogEntry
		}
		ListMessages []struct {
			Ctx context.Context
			ProfileID int64
			Limit int
		}
	}
	lockGetOrCreateSettings sync.RWMutex
	lockSaveSettings sync.RWMutex
	lockUpsertProfile sync.RWMutex
	lockGetProfile sync.RWMutex
	lockGetProfileForUpdate sync.RWMutex
	lockListProfiles sync.RWMutex
	lockSaveProfile sync.RWMutex
	lockAppendMessage sync.RWMutex
	lockListMessages sync.RWMutex
}

func (mock *profileRepoMock) GetOrCreateSettings(ctx context.Context) (*domain.FollowUpSettings, error) {
	if mock.GetOrCreateSettingsFunc == nil {
		panic("profileRepoMock.GetOrCreateSettingsFunc: method is nil but profileRepo.GetOrCreateSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockGetOrCreateSettings.Lock()
	mock.calls.GetOrCreateSettings = append(mock.calls.GetOrCreateSettings, callInfo)
	mock.lockGetOrCreateSettings.Unlock()
	return mock.GetOrCreateSettingsFunc(ctx)
}

func (mock *profileRepoMock) GetOrCreateSettingsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockGetOrCreateSettings.RLock()
	calls = mock.calls.GetOrCreateSettings
	mock.lockGetOrCreateSettings.RUnlock()
	return calls
}

func (mock *profileRepoMock) SaveSettings(ctx context.Context, s domain.FollowUpSettings) (*domain.FollowUpSettings, error) {
	if mock.SaveSettingsFunc == nil {
		panic("profileRepoMock.SaveSettingsFunc: method is nil but profileRepo.SaveSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S domain.FollowUpSettings
	}{
		Ctx: ctx,
		S: s,
	}
	mock.lockSaveSettings.Lock()
	mock.calls.SaveSettings = append(mock.calls.SaveSettings, callInfo)
	mock.lockSaveSettings.Unlock()
	return mock.SaveSettingsFunc(ctx, s)
}

func (mock *profileRepoMock) SaveSettingsCalls() []struct {
	Ctx context.Context
	S domain.FollowUpSettings
} {
	var calls []struct {
		Ctx context.Context
		S domain.FollowUpSettings
	}
	mock.lockSaveSettings.RLock()
	calls = mock.calls.SaveSettings
	mock.lockSaveSettings.RUnlock()
	return calls
}

func (mock *profileRepoMock) UpsertProfile(ctx context.Context, clientID int64, lastService *time.Time, override *int) (*domain.FollowUpProfile, error) {
	if mock.UpsertProfileFunc == nil {
		panic("profileRepoMock.UpsertProfileFunc: method is nil but profileRepo.UpsertProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ClientID int64
		LastService *time.Time
		Override *int
	}{
		Ctx: ctx,
		ClientID: clientID,
		LastService: lastService,
		Override: override,
	}
	mock.lockUpsertProfile.Lock()
	mock.calls.UpsertProfile = append(mock.calls.UpsertProfile, callInfo)
	mock.lockUpsertProfile.Unlock()
	return mock.UpsertProfileFunc(ctx, clientID, lastService, override)
}

func (mock *profileRepoMock) UpsertProfileCalls() []struct {
	Ctx context.Context
	ClientID int64
	LastService *time.Time
	Override *int
} {
	var calls []struct {
		Ctx context.Context
		ClientID int64
		LastService *time.Time
		Override *int
	}
	mock.lockUpsertProfile.RLock()
	calls = mock.calls.UpsertProfile
	mock.lockUpsertProfile.RUnlock()
	return calls
}

func (mock *profileRepoMock) GetProfile(ctx context.Context, id int64) (*domain.FollowUpProfile, error) {
	if mock.GetProfileFunc == nil {
		panic("profileRepoMock.GetProfileFunc: method is nil but profileRepo.GetProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id int64
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx, id)
}

func (mock *profileRepoMock) GetProfileCalls() []struct {
	Ctx context.Context
	Id int64
} {
	var calls []struct {
		Ctx context.Context
		Id int64
	}
	mock.lockGetProfile.RLock()
	calls = mock.calls.GetProfile
	mock.lockGetProfile.RUnlock()
	return calls
}

func (mock *profileRepoMock) GetProfileForUpdate(ctx context.Context, id int64) (*domain.FollowUpProfile, error) {
	if mock.GetProfileForUpdateFunc == nil {
		panic("profileRepoMock.GetProfileForUpdateFunc: method is nil but profileRepo.GetProfileForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id int64
	}{
		Ctx: ctx,
		Id: id,
	}
	mock.lockGetProfileForUpdate.Lock()
	mock.calls.GetProfileForUpdate = append(mock.calls.GetProfileForUpdate, callInfo)
	mock.lockGetProfileForUpdate.Unlock()
	return mock.GetProfileForUpdateFunc(ctx, id)
}

func (mock *profileRepoMock) GetProfileForUpdateCalls() []struct {
	Ctx context.Context
	Id int64
} {
	var calls []struct {
		Ctx context.Context
		Id int64
	}
	mock.lockGetProfileForUpdate.RLock()
	calls = mock.calls.GetProfileForUpdate
	mock.lockGetProfileForUpdate.RUnlock()
	return calls
}

func (mock *profileRepoMock) ListProfiles(ctx context.Context, f domain.ProfileFilter) ([]domain.FollowUpProfile, error) {
	if mock.ListProfilesFunc == nil {
		panic("profileRepoMock.ListProfilesFunc: method is nil but profileRepo.ListProfiles was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F domain.ProfileFilter
	}{
		Ctx: ctx,
		F: f,
	}
	mock.lockListProfiles.Lock()
	mock.calls.ListProfiles = append(mock.calls.ListProfiles, callInfo)
	mock.lockListProfiles.Unlock()
	return mock.ListProfilesFunc(ctx, f)
}

func (mock *profileRepoMock) ListProfilesCalls() []struct {
	Ctx context.Context
	F domain.ProfileFilter
} {
	var calls []struct {
		Ctx context.Context
		F domain.ProfileFilter
	}
	mock.lockListProfiles.RLock()
	calls = mock.calls.ListProfiles
	mock.lockListProfiles.RUnlock()
	return calls
}

func (mock *profileRepoMock) SaveProfile(ctx context.Context, p *domain.FollowUpProfile) error {
	if mock.SaveProfileFunc == nil {
		panic("profileRepoMock.SaveProfileFunc: method is nil but profileRepo.SaveProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P *domain.FollowUpProfile
	}{
		Ctx: ctx,
		P: p,
	}
	mock.lockSaveProfile.Lock()
	mock.calls.SaveProfile = append(mock.calls.SaveProfile, callInfo)
	mock.lockSaveProfile.Unlock()
	return mock.SaveProfileFunc(ctx, p)
}

func (mock *profileRepoMock) SaveProfileCalls() []struct {
	Ctx context.Context
	P *domain.FollowUpProfile
} {
	var calls []struct {
		Ctx context.Context
		P *domain.FollowUpProfile
	}
	mock.lockSaveProfile.RLock()
	calls = mock.calls.SaveProfile
	mock.lockSaveProfile.RUnlock()
	return calls
}

func (mock *profileRepoMock) AppendMessage(ctx context.Context, e domain.MessageLogEntry) (*domain.MessageLogEntry, error) {
	if mock.AppendMessageFunc == nil {
		panic("profileRepoMock.AppendMessageFunc: method is nil but profileRepo.AppendMessage was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E domain.MessageLogEntry
	}{
		Ctx: ctx,
		E: e,
	}
	mock.lockAppendMessage.Lock()
	mock.calls.AppendMessage = append(mock.calls.AppendMessage, callInfo)
	mock.lockAppendMessage.Unlock()
	return mock.AppendMessageFunc(ctx, e)
}

func (mock *profileRepoMock) AppendMessageCalls() []struct {
	Ctx context.Context
	E domain.MessageLogEntry
} {
	var calls []struct {
		Ctx context.Context
		E domain.MessageLogEntry
	}
	mock.lockAppendMessage.RLock()
	calls = mock.calls.AppendMessage
	mock.lockAppendMessage.RUnlock()
	return calls
}

func (mock *profileRepoMock) ListMessages(ctx context.Context, profileID int64, limit int) ([]domain.MessageLogEntry, error) {
	if mock.ListMessagesFunc == nil {
		panic("profileRepoMock.ListMessagesFunc: method is nil but profileRepo.ListMessages was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ProfileID int64
		Limit int
	}{
		Ctx: ctx,
		ProfileID: profileID,
		Limit: limit,
	}
	mock.lockListMessages.Lock()
	mock.calls.ListMessages = append(mock.calls.ListMessages, callInfo)
	mock.lockListMessages.Unlock()
	return mock.ListMessagesFunc(ctx, profileID, limit)
}

func (mock *profileRepoMock) ListMessagesCalls() []struct {
	Ctx context.Context
	ProfileID int64
	Limit int
} {
	var calls []struct {
		Ctx context.Context
		ProfileID int64
		Limit int
	}
	mock.lockListMessages.RLock()
	calls = mock.calls.ListMessages
	mock.lockListMessages.RUnlock()
	return calls
}
