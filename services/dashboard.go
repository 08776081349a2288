package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// RefreshInterval is how often a mounted dashboard reloads the list.
const RefreshInterval = 30 * time.Second

// DashboardConfig configures a Dashboard. Only API is required.
type DashboardConfig struct {
	API             QuotationAPI
	Cache           *QuotationCache
	Clock           Clock
	Logger          *slog.Logger
	RefreshInterval time.Duration
}

// Dashboard is the quotation list shown to users. It renders whatever is
// cached at once, then keeps the list current with a periodic refresh
// while mounted. After Unmount nothing changes its state.
type Dashboard struct {
	fetcher  *Fetcher
	cache    *QuotationCache
	clock    Clock
	logger   *slog.Logger
	interval time.Duration

	mu            sync.RWMutex
	quotations    []Quotation
	appliedGen    uint64
	lastRefreshed time.Time
	lastErr       error
	closed        bool

	cancel      context.CancelFunc
	mountOnce   sync.Once
	unmountOnce sync.Once
	wg          sync.WaitGroup
}

// NewDashboard wires a fetcher and cache for cfg.API.
func NewDashboard(cfg DashboardConfig) *Dashboard {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.Cache == nil {
		cfg.Cache = NewQuotationCache(cfg.Clock)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = RefreshInterval
	}
	return &Dashboard{
		fetcher:  NewFetcher(cfg.API, cfg.Cache, cfg.Logger),
		cache:    cfg.Cache,
		clock:    cfg.Clock,
		logger:   cfg.Logger.With(slog.String("component", "dashboard")),
		interval: cfg.RefreshInterval,
	}
}

// Mount shows cached data immediately, then loads the list in the
// background and refreshes it every interval until Unmount.
func (d *Dashboard) Mount() {
	d.mountOnce.Do(func() {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return
		}
		if data, ok := d.cache.Get(); ok && d.quotations == nil {
			d.quotations = data
			d.lastRefreshed = d.cache.FetchedAt()
		}
		ctx, cancel := context.WithCancel(context.Background())
		d.cancel = cancel
		d.wg.Add(1)
		d.mu.Unlock()

		go d.run(ctx)
		logOperation(d.logger, "dashboard_mounted", slog.Duration("interval", d.interval))
	})
}

func (d *Dashboard) run(ctx context.Context) {
	defer d.wg.Done()

	d.reload(ctx, false)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.reload(ctx, true)
		}
	}
}

// Unmount stops the refresh loop and cancels any fetch in flight. It
// waits for the loop to exit; results arriving afterwards are dropped.
func (d *Dashboard) Unmount() {
	d.unmountOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		cancel := d.cancel
		d.mu.Unlock()

		d.fetcher.Stop()
		if cancel != nil {
			cancel()
		}
		d.wg.Wait()
		logOperation(d.logger, "dashboard_unmounted")
	})
}

// Refresh forces a reload from the API and returns the best available list.
func (d *Dashboard) Refresh(ctx context.Context) ([]Quotation, error) {
	err := d.reload(ctx, true)
	return d.Snapshot(), err
}

// Quotations returns the current list, loading it first if nothing has
// been loaded yet.
func (d *Dashboard) Quotations(ctx context.Context) ([]Quotation, error) {
	d.mu.RLock()
	loaded := d.quotations != nil
	d.mu.RUnlock()

	var err error
	if !loaded {
		err = d.reload(ctx, false)
	}
	return d.Snapshot(), err
}

// Find returns the quotation with the given id or storage id.
func (d *Dashboard) Find(ctx context.Context, id string) (Quotation, error) {
	list, _ := d.Quotations(ctx)
	for _, q := range list {
		if q.ID == id || (q.StorageID != "" && q.StorageID == id) {
			return q.Clone(), nil
		}
	}
	return Quotation{}, ErrQuotationNotFound
}

// Save submits an edited quotation. On success the cache is invalidated
// and the in-memory list is patched with the server's copy.
func (d *Dashboard) Save(ctx context.Context, q Quotation) (Quotation, error) {
	saved, gen, err := d.fetcher.save(ctx, q)
	if err != nil {
		return Quotation{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return saved, nil
	}
	for i := range d.quotations {
		if d.quotations[i].ID == q.ID || d.quotations[i].ID == saved.ID {
			d.quotations[i] = saved
			break
		}
	}
	if gen > d.appliedGen {
		d.appliedGen = gen
	}
	return saved, nil
}

// Snapshot returns a copy of the list as currently shown.
func (d *Dashboard) Snapshot() []Quotation {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Quotation{}, d.quotations...)
}

// LastRefreshed returns when the shown list was last loaded from the API.
func (d *Dashboard) LastRefreshed() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastRefreshed
}

// LastError returns the error of the last failed refresh, nil once a
// refresh succeeds again.
func (d *Dashboard) LastError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr
}

// Now returns the dashboard clock's time.
func (d *Dashboard) Now() time.Time {
	return d.clock.Now()
}

func (d *Dashboard) reload(ctx context.Context, force bool) error {
	data, gen, err := d.fetcher.load(ctx, force)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrFetchCancelled
	}
	if errors.Is(err, ErrFetchCancelled) {
		return err
	}
	if err != nil {
		d.lastErr = err
		if d.quotations == nil {
			d.quotations = data
		}
		return err
	}
	if gen < d.appliedGen {
		return nil
	}
	d.quotations = data
	d.appliedGen = gen
	d.lastRefreshed = d.cache.FetchedAt()
	d.lastErr = nil
	return nil
}
