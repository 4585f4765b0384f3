package refcatalog

import (
	"context"
	"sync"
)

var _ catalogSource = &catalogSourceMock{}

type catalogSourceMock struct {
	FetchStreetsFunc       func(ctx context.Context) ([]string, error)
	FetchNeighborhoodsFunc func(ctx context.Context) ([]string, error)

	calls struct {
		FetchStreets []struct {
			Ctx context.Context
		}
		FetchNeighborhoods []struct {
			Ctx context.Context
		}
	}
	lockFetchStreets       sync.RWMutex
	lockFetchNeighborhoods sync.RWMutex
}

func (mock *catalogSourceMock) FetchStreets(ctx context.Context) ([]string, error) {
	if mock.FetchStreetsFunc == nil {
		panic("catalogSourceMock.FetchStreetsFunc: method is nil but catalogSource.FetchStreets was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockFetchStreets.Lock()
	mock.calls.FetchStreets = append(mock.calls.FetchStreets, callInfo)
	mock.lockFetchStreets.Unlock()
	return mock.FetchStreetsFunc(ctx)
}

func (mock *catalogSourceMock) FetchStreetsCalls() []struct {
	Ctx context.Context
} {
	mock.lockFetchStreets.RLock()
	calls := mock.calls.FetchStreets
	mock.lockFetchStreets.RUnlock()
	return calls
}

func (mock *catalogSourceMock) FetchNeighborhoods(ctx context.Context) ([]string, error) {
	if mock.FetchNeighborhoodsFunc == nil {
		panic("catalogSourceMock.FetchNeighborhoodsFunc: method is nil but catalogSource.FetchNeighborhoods was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockFetchNeighborhoods.Lock()
	mock.calls.FetchNeighborhoods = append(mock.calls.FetchNeighborhoods, callInfo)
	mock.lockFetchNeighborhoods.Unlock()
	return mock.FetchNeighborhoodsFunc(ctx)
}

func (mock *catalogSourceMock) FetchNeighborhoodsCalls() []struct {
	Ctx context.Context
} {
	mock.lockFetchNeighborhoods.RLock()
	calls := mock.calls.FetchNeighborhoods
	mock.lockFetchNeighborhoods.RUnlock()
	return calls
}
