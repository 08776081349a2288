package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a QuotationAPI whose responses are scripted per test.
type fakeAPI struct {
	mu         sync.Mutex
	listCalls  int
	updateKeys []string

	listFn   func(ctx context.Context, call int) ([]Quotation, error)
	updateFn func(ctx context.Context, key string, q Quotation) (Quotation, error)
}

func (f *fakeAPI) List(ctx context.Context) ([]Quotation, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return []Quotation{}, nil
	}
	return fn(ctx, call)
}

func (f *fakeAPI) Update(ctx context.Context, key string, q Quotation) (Quotation, error) {
	f.mu.Lock()
	f.updateKeys = append(f.updateKeys, key)
	fn := f.updateFn
	f.mu.Unlock()
	if fn == nil {
		return q, nil
	}
	return fn(ctx, key, q)
}

func (f *fakeAPI) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeAPI) UpdateKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.updateKeys...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_FreshCacheSkipsNetwork(t *testing.T) {
	api := &fakeAPI{}
	cache := NewQuotationCache(newFakeClock())
	cache.Set([]Quotation{{ID: "cached"}})
	f := NewFetcher(api, cache, discardLogger())

	data, err := f.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, api.ListCalls())
	require.Len(t, data, 1)
	assert.Equal(t, "cached", data[0].ID)
}

func TestFetcher_ForceAndStaleGoToNetwork(t *testing.T) {
	api := &fakeAPI{listFn: func(ctx context.Context, call int) ([]Quotation, error) {
		return []Quotation{{ID: "fresh"}}, nil
	}}
	clock := newFakeClock()
	cache := NewQuotationCache(clock)
	cache.Set([]Quotation{{ID: "cached"}})
	f := NewFetcher(api, cache, discardLogger())

	data, err := f.Load(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, api.ListCalls())
	assert.Equal(t, "fresh", data[0].ID)

	clock.Advance(CacheTTL)
	_, err = f.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, api.ListCalls(), "stale cache should refetch")
}

func TestFetcher_SupersededResultIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var firstCtxErr error

	api := &fakeAPI{listFn: func(ctx context.Context, call int) ([]Quotation, error) {
		if call == 1 {
			close(started)
			<-release
			firstCtxErr = ctx.Err()
			// The transport ignored the cancel and answered anyway.
			return []Quotation{{ID: "from-A"}}, nil
		}
		return []Quotation{{ID: "from-B"}}, nil
	}}
	cache := NewQuotationCache(newFakeClock())
	f := NewFetcher(api, cache, discardLogger())

	type result struct {
		data []Quotation
		err  error
	}
	aDone := make(chan result, 1)
	go func() {
		data, err := f.Load(context.Background(), true)
		aDone <- result{data, err}
	}()
	<-started

	bData, err := f.Load(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, bData, 1)
	assert.Equal(t, "from-B", bData[0].ID)

	close(release)
	a := <-aDone

	assert.ErrorIs(t, a.err, ErrFetchCancelled)
	assert.ErrorIs(t, firstCtxErr, context.Canceled, "superseded request should be cancelled")

	cached, ok := cache.Get()
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "from-B", cached[0].ID, "A's late result must not reach the cache")
}

func TestFetcher_FailureFallsBackToCache(t *testing.T) {
	apiErr := &APIError{StatusCode: 503, Message: "maintenance"}
	api := &fakeAPI{listFn: func(ctx context.Context, call int) ([]Quotation, error) {
		return nil, apiErr
	}}
	clock := newFakeClock()
	cache := NewQuotationCache(clock)
	cache.Set([]Quotation{{ID: "old"}})
	clock.Advance(time.Minute)
	f := NewFetcher(api, cache, discardLogger())

	data, err := f.Load(context.Background(), false)

	var transient *TransientFetchError
	require.ErrorAs(t, err, &transient)
	var gotAPIErr *APIError
	require.ErrorAs(t, err, &gotAPIErr)
	assert.Equal(t, 503, gotAPIErr.StatusCode)
	require.Len(t, data, 1)
	assert.Equal(t, "old", data[0].ID)
}

func TestFetcher_FailureWithoutCacheReturnsEmpty(t *testing.T) {
	api := &fakeAPI{listFn: func(ctx context.Context, call int) ([]Quotation, error) {
		return nil, errors.New("connection refused")
	}}
	f := NewFetcher(api, NewQuotationCache(newFakeClock()), discardLogger())

	data, err := f.Load(context.Background(), true)
	require.Error(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestFetcher_StopDiscardsInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{listFn: func(ctx context.Context, call int) ([]Quotation, error) {
		close(started)
		<-release
		return []Quotation{{ID: "late"}}, nil
	}}
	cache := NewQuotationCache(newFakeClock())
	f := NewFetcher(api, cache, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := f.Load(context.Background(), true)
		done <- err
	}()
	<-started
	f.Stop()
	close(release)

	assert.ErrorIs(t, <-done, ErrFetchCancelled)
	_, ok := cache.Get()
	assert.False(t, ok, "result arriving after Stop must not be stored")

	_, err := f.Load(context.Background(), true)
	assert.ErrorIs(t, err, ErrFetchCancelled)
	assert.Equal(t, 1, api.ListCalls(), "no request after Stop")
}

func TestFetcher_SaveRetriesWithStorageID(t *testing.T) {
	api := &fakeAPI{updateFn: func(ctx context.Context, key string, q Quotation) (Quotation, error) {
		if key == "QT-202506-0001" {
			return Quotation{}, &APIError{StatusCode: 404, Message: "Quotation not found"}
		}
		return q, nil
	}}
	cache := NewQuotationCache(newFakeClock())
	cache.Set([]Quotation{{ID: "QT-202506-0001"}})
	f := NewFetcher(api, cache, discardLogger())

	q := Quotation{ID: "QT-202506-0001", StorageID: "66a1f0c2", Remarks: "updated"}
	saved, err := f.Save(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "updated", saved.Remarks.String())
	assert.Equal(t, []string{"QT-202506-0001", "66a1f0c2"}, api.UpdateKeys())
	assert.False(t, cache.IsFresh(), "save must invalidate the cache")
}

func TestFetcher_SaveConflict(t *testing.T) {
	api := &fakeAPI{updateFn: func(ctx context.Context, key string, q Quotation) (Quotation, error) {
		return Quotation{}, &APIError{StatusCode: 409, Message: "Quotation is locked"}
	}}
	cache := NewQuotationCache(newFakeClock())
	cache.Set([]Quotation{{ID: "Q1"}})
	f := NewFetcher(api, cache, discardLogger())

	_, err := f.Save(context.Background(), Quotation{ID: "Q1", StorageID: "abc"})

	var conflict *SaveConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Q1", conflict.ID)
	assert.Equal(t, "Quotation is locked", conflict.Message)
	assert.Equal(t, []string{"Q1", "abc"}, api.UpdateKeys())
	assert.True(t, cache.IsFresh(), "a failed save leaves the cache alone")
}

func TestFetcher_SaveSingleAttemptWhenKeysMatch(t *testing.T) {
	api := &fakeAPI{updateFn: func(ctx context.Context, key string, q Quotation) (Quotation, error) {
		return Quotation{}, errors.New("boom")
	}}
	f := NewFetcher(api, NewQuotationCache(newFakeClock()), discardLogger())

	_, err := f.Save(context.Background(), Quotation{ID: "Q1", StorageID: "Q1"})
	require.Error(t, err)
	assert.Equal(t, []string{"Q1"}, api.UpdateKeys())
}

func TestFetcher_SaveSupersedesInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{listFn: func(ctx context.Context, call int) ([]Quotation, error) {
		close(started)
		<-release
		return []Quotation{{ID: "Q1", Remarks: "before save"}}, nil
	}}
	cache := NewQuotationCache(newFakeClock())
	f := NewFetcher(api, cache, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := f.Load(context.Background(), true)
		done <- err
	}()
	<-started

	_, err := f.Save(context.Background(), Quotation{ID: "Q1", Remarks: "after save"})
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-done, ErrFetchCancelled)
	_, ok := cache.Get()
	assert.False(t, ok, "pre-save list must not repopulate the cache")
}
