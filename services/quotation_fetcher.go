package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Fetcher loads the quotation list through a cache and applies updates.
// At most one list request is in flight: starting a load cancels the
// previous one, and a result is only stored when its generation is still
// the latest issued.
type Fetcher struct {
	api    QuotationAPI
	cache  *QuotationCache
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	storedGen  uint64
	cancel     context.CancelFunc
	stopped    bool
}

// NewFetcher returns a fetcher reading from api and storing into cache.
// A nil logger means slog.Default().
func NewFetcher(api QuotationAPI, cache *QuotationCache, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		api:    api,
		cache:  cache,
		logger: logger.With(slog.String("component", "quotation_fetcher")),
	}
}

// Load returns the quotation list. Without force a fresh cache is served
// with no network call. On failure it still returns the best data
// available (the cached list, else an empty one) together with a
// *TransientFetchError, or ErrFetchCancelled when the load was superseded.
func (f *Fetcher) Load(ctx context.Context, force bool) ([]Quotation, error) {
	data, _, err := f.load(ctx, force)
	return data, err
}

func (f *Fetcher) load(ctx context.Context, force bool) ([]Quotation, uint64, error) {
	if !force && f.cache.IsFresh() {
		if data, ok := f.cache.Get(); ok {
			f.mu.Lock()
			gen := f.storedGen
			f.mu.Unlock()
			return data, gen, nil
		}
	}

	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return f.fallback(), 0, ErrFetchCancelled
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.generation++
	gen := f.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	start := time.Now()
	data, err := f.api.List(fetchCtx)

	f.mu.Lock()
	current := !f.stopped && gen == f.generation
	if current {
		f.cancel = nil
		if err == nil {
			f.cache.Set(data)
			f.storedGen = gen
		}
	}
	f.mu.Unlock()

	if !current {
		f.logger.Debug("discarded superseded quotation fetch", slog.Uint64("generation", gen))
		return f.fallback(), gen, ErrFetchCancelled
	}
	if err != nil {
		if ctx.Err() != nil {
			return f.fallback(), gen, fmt.Errorf("%w: %w", ErrFetchCancelled, ctx.Err())
		}
		terr := &TransientFetchError{Err: err}
		logWarn(f.logger, "quotation fetch failed, serving cached data", terr,
			slog.Uint64("generation", gen))
		return f.fallback(), gen, terr
	}

	logOperation(f.logger, "quotations_fetched",
		slog.Int("count", len(data)),
		slog.Uint64("generation", gen),
		slog.Duration("duration", time.Since(start)))
	if data == nil {
		data = []Quotation{}
	}
	return data, gen, nil
}

// Save replaces a quotation on the server. The first attempt uses the
// quotation id; if it fails and the storage id differs, it is retried once
// under the storage id. On success the cache is invalidated and any list
// fetch still in flight is superseded so it cannot store pre-save data.
func (f *Fetcher) Save(ctx context.Context, q Quotation) (Quotation, error) {
	saved, _, err := f.save(ctx, q)
	return saved, err
}

func (f *Fetcher) save(ctx context.Context, q Quotation) (Quotation, uint64, error) {
	primary, fallback := q.UpdateKey()
	if primary == "" {
		return Quotation{}, 0, &SaveConflictError{Message: "quotation has no id"}
	}

	saved, err := f.api.Update(ctx, primary, q)
	if err != nil && fallback != "" {
		f.logger.Debug("retrying quotation update with storage id",
			slog.String("id", primary), slog.String("storage_id", fallback))
		saved, err = f.api.Update(ctx, fallback, q)
	}
	if err != nil {
		msg := err.Error()
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		conflict := &SaveConflictError{ID: q.ID, Message: msg, Err: err}
		logError(f.logger, "quotation save failed", conflict, slog.String("id", q.ID))
		return Quotation{}, 0, conflict
	}
	if saved.ID == "" {
		saved.ID = q.ID
	}

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.generation++
	gen := f.generation
	f.cache.Invalidate()
	f.mu.Unlock()

	logOperation(f.logger, "quotation_saved", slog.String("id", saved.ID))
	return saved, gen, nil
}

// Stop cancels the in-flight fetch. Every load that completes afterwards
// is discarded and later loads return ErrFetchCancelled.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Fetcher) fallback() []Quotation {
	if data, ok := f.cache.Get(); ok {
		return data
	}
	return []Quotation{}
}
