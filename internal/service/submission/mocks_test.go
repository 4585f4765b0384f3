package submission

import (
	"context"
	"sync"
	"time"

	"github.com/viamunicipal/potholes-backend/internal/adapter/gcs"
	"github.com/viamunicipal/potholes-backend/internal/domain"
)

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	CreateBatchFunc func(ctx context.Context, records []domain.PotholeRecord) error

	calls struct {
		CreateBatch []struct {
			Ctx     context.Context
			Records []domain.PotholeRecord
		}
	}
	lockCreateBatch sync.RWMutex
}

func (mock *recordRepoMock) CreateBatch(ctx context.Context, records []domain.PotholeRecord) error {
	if mock.CreateBatchFunc == nil {
		panic("recordRepoMock.CreateBatchFunc: method is nil but recordRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Records []domain.PotholeRecord
	}{Ctx: ctx, Records: records}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, records)
}

func (mock *recordRepoMock) CreateBatchCalls() []struct {
	Ctx     context.Context
	Records []domain.PotholeRecord
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
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
