// Package memory keeps batch reports in process memory. It is the
// default store for a single instance deployment.
package memory

import (
	"sync"
	"time"

	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db"
)

func init() {
	db.Register(config.StoreMemory, func(cfg *config.Config) (db.Repository, error) {
		return NewRepository(cfg.ReportTTL), nil
	})
}

type entry struct {
	report  batch.Report
	expires time.Time
}

// Repository is a db.Repository safe for concurrent use
type Repository struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	reports map[string]entry
}

// NewRepository returns an empty repository whose reports expire after
// ttl. A zero ttl keeps reports until they are deleted.
func NewRepository(ttl time.Duration) *Repository {
	return &Repository{
		ttl:     ttl,
		now:     time.Now,
		reports: make(map[string]entry),
	}
}

func (r *Repository) SaveReport(report *batch.Report) error {
	if report.ID == "" {
		return db.ErrMissingID
	}
	e := entry{report: clone(report)}
	if r.ttl > 0 {
		e.expires = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.reports[report.ID] = e
	return nil
}

func (r *Repository) GetReport(id string) (*batch.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.reports[id]
	if !ok || r.expired(e) {
		return nil, db.ErrReportNotFound
	}
	report := clone(&e.report)
	return &report, nil
}

func (r *Repository) DeleteReport(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.reports[id]
	if !ok || r.expired(e) {
		return db.ErrReportNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *Repository) Healthcheck() error { return nil }

// Len is the number of unexpired reports
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	return len(r.reports)
}

func (r *Repository) expired(e entry) bool {
	return !e.expires.IsZero() && !r.now().Before(e.expires)
}

// sweep drops expired reports. The caller holds r.mu.
func (r *Repository) sweep() {
	for id, e := range r.reports {
		if r.expired(e) {
			delete(r.reports, id)
		}
	}
}

func clone(r *batch.Report) batch.Report {
	c := *r
	c.Lines = append([]batch.Line(nil), r.Lines...)
	return c
}
