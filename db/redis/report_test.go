package redis

import (
	"testing"
	"time"

	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db"
	"github.com/cbsinteractive/footage-timecode/db/redis/storage"
)

func TestRegistered(t *testing.T) {
	repo, err := db.Open(&config.Config{
		ReportStore: config.StoreRedis,
		ReportTTL:   time.Minute,
		Redis:       &storage.Config{RedisAddr: "127.0.0.1:6379"},
	})
	if err != nil {
		t.Fatal(err)
	}
	r, ok := repo.(*redisRepository)
	if !ok {
		t.Fatalf("Open() = %T, want *redisRepository", repo)
	}
	if r.ttl != time.Minute {
		t.Errorf("ttl = %s, want 1m", r.ttl)
	}
	if key := r.reportKey("abc"); key != "report:abc" {
		t.Errorf("reportKey() = %q", key)
	}

	if _, err := db.Open(&config.Config{ReportStore: config.StoreRedis}); err == nil {
		t.Error("opened redis without redis configuration")
	}
}

func TestSaveReportMissingID(t *testing.T) {
	repo, err := NewRepository(nil, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveReport(&batch.Report{}); err != db.ErrMissingID {
		t.Errorf("SaveReport() error = %v, want %v", err, db.ErrMissingID)
	}
}
