// Package redis keeps batch reports on Redis with an expiry.
package redis

import (
	"time"

	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db"
	"github.com/cbsinteractive/footage-timecode/db/redis/storage"
	"github.com/pkg/errors"
)

func init() {
	db.Register(config.StoreRedis, func(cfg *config.Config) (db.Repository, error) {
		if cfg.Redis == nil {
			return nil, errors.New("redis is not configured")
		}
		return NewRepository(cfg.Redis, cfg.ReportTTL)
	})
}

type redisRepository struct {
	storage *storage.Storage
	ttl     time.Duration
}

// NewRepository creates a db.Repository backed by Redis. Reports expire
// after ttl.
func NewRepository(cfg *storage.Config, ttl time.Duration) (db.Repository, error) {
	s, err := storage.NewStorage(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "initializing redis storage")
	}
	return &redisRepository{storage: s, ttl: ttl}, nil
}

func (r *redisRepository) SaveReport(report *batch.Report) error {
	if report.ID == "" {
		return db.ErrMissingID
	}
	return errors.Wrapf(r.storage.Save(r.reportKey(report.ID), report, r.ttl), "saving report %s", report.ID)
}

func (r *redisRepository) GetReport(id string) (*batch.Report, error) {
	var report batch.Report
	err := r.storage.Load(r.reportKey(id), &report)
	if err == storage.ErrNotFound {
		return nil, db.ErrReportNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading report %s", id)
	}
	return &report, nil
}

func (r *redisRepository) DeleteReport(id string) error {
	err := r.storage.Delete(r.reportKey(id))
	if err == storage.ErrNotFound {
		return db.ErrReportNotFound
	}
	return errors.Wrapf(err, "deleting report %s", id)
}

func (r *redisRepository) Healthcheck() error {
	return errors.Wrap(r.storage.Ping(), "redis unavailable")
}

func (r *redisRepository) reportKey(id string) string {
	return "report:" + id
}
