package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/adapter/postgres/record"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	GetByIDFunc                      func(ctx context.Context, id uuid.UUID) (*domain.PotholeRecord, error)
	ListBySubmissionFunc             func(ctx context.Context, submissionID uuid.UUID) ([]domain.PotholeRecord, error)
	CountBySubmissionFunc            func(ctx context.Context, submissionID uuid.UUID) (int, error)
	CreateFunc                       func(ctx context.Context, rec domain.PotholeRecord) error
	UpdateDimensionsFunc             func(ctx context.Context, id uuid.UUID, dims domain.Dimensions) error
	UpdateIdentifierFunc             func(ctx context.Context, id uuid.UUID, identifier string) error
	UpdatePhotoLinksBySubmissionFunc func(ctx context.Context, submissionID uuid.UUID, links []string) (int64, error)
	DeleteFunc                       func(ctx context.Context, id uuid.UUID) error
	DeleteBySubmissionFunc           func(ctx context.Context, submissionID uuid.UUID) (int64, error)
	ListFunc                         func(ctx context.Context, filter record.Filter) ([]domain.PotholeRecord, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rec domain.PotholeRecord
		}
		UpdateDimensions []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Dims domain.Dimensions
		}
		UpdateIdentifier []struct {
			Ctx        context.Context
			ID         uuid.UUID
			Identifier string
		}
		UpdatePhotoLinksBySubmission []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
			Links        []string
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		DeleteBySubmission []struct {
			Ctx          context.Context
			SubmissionID uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter record.Filter
		}
	}
	mu sync.RWMutex
}

func (mock *recordRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.PotholeRecord, error) {
	if mock.GetByIDFunc == nil {
		panic("recordRepoMock.GetByIDFunc: method is nil but recordRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *recordRepoMock) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.PotholeRecord, error) {
	if mock.ListBySubmissionFunc == nil {
		panic("recordRepoMock.ListBySubmissionFunc: method is nil but recordRepo.ListBySubmission was just called")
	}
	return mock.ListBySubmissionFunc(ctx, submissionID)
}

func (mock *recordRepoMock) CountBySubmission(ctx context.Context, submissionID uuid.UUID) (int, error) {
	if mock.CountBySubmissionFunc == nil {
		panic("recordRepoMock.CountBySubmissionFunc: method is nil but recordRepo.CountBySubmission was just called")
	}
	return mock.CountBySubmissionFunc(ctx, submissionID)
}

func (mock *recordRepoMock) Create(ctx context.Context, rec domain.PotholeRecord) error {
	if mock.CreateFunc == nil {
		panic("recordRepoMock.CreateFunc: method is nil but recordRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.PotholeRecord
	}{Ctx: ctx, Rec: rec}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *recordRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec domain.PotholeRecord
} {
	mock.mu.RLock()
	calls := mock.calls.Create
	mock.mu.RUnlock()
	return calls
}

func (mock *recordRepoMock) UpdateDimensions(ctx context.Context, id uuid.UUID, dims domain.Dimensions) error {
	if mock.UpdateDimensionsFunc == nil {
		panic("recordRepoMock.UpdateDimensionsFunc: method is nil but recordRepo.UpdateDimensions was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Dims domain.Dimensions
	}{Ctx: ctx, ID: id, Dims: dims}
	mock.mu.Lock()
	mock.calls.UpdateDimensions = append(mock.calls.UpdateDimensions, callInfo)
	mock.mu.Unlock()
	return mock.UpdateDimensionsFunc(ctx, id, dims)
}

func (mock *recordRepoMock) UpdateDimensionsCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Dims domain.Dimensions
} {
	mock.mu.RLock()
	calls := mock.calls.UpdateDimensions
	mock.mu.RUnlock()
	return calls
}

func (mock *recordRepoMock) UpdateIdentifier(ctx context.Context, id uuid.UUID, identifier string) error {
	if mock.UpdateIdentifierFunc == nil {
		panic("recordRepoMock.UpdateIdentifierFunc: method is nil but recordRepo.UpdateIdentifier was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ID         uuid.UUID
		Identifier string
	}{Ctx: ctx, ID: id, Identifier: identifier}
	mock.mu.Lock()
	mock.calls.UpdateIdentifier = append(mock.calls.UpdateIdentifier, callInfo)
	mock.mu.Unlock()
	return mock.UpdateIdentifierFunc(ctx, id, identifier)
}

func (mock *recordRepoMock) UpdateIdentifierCalls() []struct {
	Ctx        context.Context
	ID         uuid.UUID
	Identifier string
} {
	mock.mu.RLock()
	calls := mock.calls.UpdateIdentifier
	mock.mu.RUnlock()
	return calls
}

func (mock *recordRepoMock) UpdatePhotoLinksBySubmission(ctx context.Context, submissionID uuid.UUID, links []string) (int64, error) {
	if mock.UpdatePhotoLinksBySubmissionFunc == nil {
		panic("recordRepoMock.UpdatePhotoLinksBySubmissionFunc: method is nil but recordRepo.UpdatePhotoLinksBySubmission was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SubmissionID uuid.UUID
		Links        []string
	}{Ctx: ctx, SubmissionID: submissionID, Links: links}
	mock.mu.Lock()
	mock.calls.UpdatePhotoLinksBySubmission = append(mock.calls.UpdatePhotoLinksBySubmission, callInfo)
	mock.mu.Unlock()
	return mock.UpdatePhotoLinksBySubmissionFunc(ctx, submissionID, links)
}

func (mock *recordRepoMock) UpdatePhotoLinksBySubmissionCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
	Links        []string
} {
	mock.mu.RLock()
	calls := mock.calls.UpdatePhotoLinksBySubmission
	mock.mu.RUnlock()
	return calls
}

func (mock *recordRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("recordRepoMock.DeleteFunc: method is nil but recordRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.mu.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.mu.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *recordRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.mu.RLock()
	calls := mock.calls.Delete
	mock.mu.RUnlock()
	return calls
}

func (mock *recordRepoMock) DeleteBySubmission(ctx context.Context, submissionID uuid.UUID) (int64, error) {
	if mock.DeleteBySubmissionFunc == nil {
		panic("recordRepoMock.DeleteBySubmissionFunc: method is nil but recordRepo.DeleteBySubmission was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		SubmissionID uuid.UUID
	}{Ctx: ctx, SubmissionID: submissionID}
	mock.mu.Lock()
	mock.calls.DeleteBySubmission = append(mock.calls.DeleteBySubmission, callInfo)
	mock.mu.Unlock()
	return mock.DeleteBySubmissionFunc(ctx, submissionID)
}

func (mock *recordRepoMock) DeleteBySubmissionCalls() []struct {
	Ctx          context.Context
	SubmissionID uuid.UUID
} {
	mock.mu.RLock()
	calls := mock.calls.DeleteBySubmission
	mock.mu.RUnlock()
	return calls
}

func (mock *recordRepoMock) List(ctx context.Context, filter record.Filter) ([]domain.PotholeRecord, error) {
	if mock.ListFunc == nil {
		panic("recordRepoMock.ListFunc: method is nil but recordRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter record.Filter
	}{Ctx: ctx, Filter: filter}
	mock.mu.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.mu.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *recordRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter record.Filter
} {
	mock.mu.RLock()
	calls := mock.calls.List
	mock.mu.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}

// passthroughTx runs the function directly, standing in for a real transaction.
func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

var _ photoStore = &photoStoreMock{}

type photoStoreMock struct {
	UploadFunc func(ctx context.Context, street string, day time.Time, files []gcs.File) ([]string, error)

	calls struct {
		Upload []struct {
			Ctx    context.Context
			Street string
			Day    time.Time
			Files  []gcs.File
		}
	}
	lockUpload sync.RWMutex
}

func (mock *photoStoreMock) Upload(ctx context.Context, street string, day time.Time, files []gcs.File) ([]string, error) {
	if mock.UploadFunc == nil {
		panic("photoStoreMock.UploadFunc: method is nil but photoStore.Upload was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Street string
		Day    time.Time
		Files  []gcs.File
	}{Ctx: ctx, Street: street, Day: day, Files: files}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, street, day, files)
}

func (mock *photoStoreMock) UploadCalls() []struct {
	Ctx    context.Context
	Street string
	Day    time.Time
	Files  []gcs.File
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}
