package memory

import (
	"testing"
	"time"

	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db"
	"github.com/cbsinteractive/footage-timecode/footage"
	"github.com/google/go-cmp/cmp"
)

var _ db.Repository = (*Repository)(nil)

func report(t *testing.T, id string) *batch.Report {
	t.Helper()
	r, err := batch.Run("100+05\nbad", batch.FootageToTimecode, footage.FPS24, 1)
	if err != nil {
		t.Fatal(err)
	}
	r.ID = id
	return r
}

func TestSaveGetDelete(t *testing.T) {
	repo := NewRepository(time.Hour)
	want := report(t, "abc")
	if err := repo.SaveReport(want); err != nil {
		t.Fatal(err)
	}
	have, err := repo.GetReport("abc")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("report mismatch (-want +have):\n%s", diff)
	}

	// stored reports do not alias the caller's
	have.Lines[0].Output = "changed"
	again, _ := repo.GetReport("abc")
	if again.Lines[0].Output != "01:01:06:21" {
		t.Fatalf("stored report was modified: %q", again.Lines[0].Output)
	}

	if err := repo.DeleteReport("abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetReport("abc"); err != db.ErrReportNotFound {
		t.Fatalf("have %v, want %v", err, db.ErrReportNotFound)
	}
	if err := repo.DeleteReport("abc"); err != db.ErrReportNotFound {
		t.Fatalf("have %v, want %v", err, db.ErrReportNotFound)
	}
}

func TestExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewRepository(time.Minute)
	repo.now = func() time.Time { return now }

	if err := repo.SaveReport(report(t, "a")); err != nil {
		t.Fatal(err)
	}
	now = now.Add(30 * time.Second)
	if err := repo.SaveReport(report(t, "b")); err != nil {
		t.Fatal(err)
	}
	if n := repo.Len(); n != 2 {
		t.Fatalf("have %d reports, want 2", n)
	}

	now = now.Add(30 * time.Second)
	if _, err := repo.GetReport("a"); err != db.ErrReportNotFound {
		t.Fatalf("expired report: have %v, want %v", err, db.ErrReportNotFound)
	}
	if _, err := repo.GetReport("b"); err != nil {
		t.Fatalf("live report: %v", err)
	}
	if n := repo.Len(); n != 1 {
		t.Fatalf("have %d reports, want 1", n)
	}
}

func TestSaveWithoutID(t *testing.T) {
	if err := NewRepository(0).SaveReport(report(t, "")); err != db.ErrMissingID {
		t.Fatalf("have %v, want %v", err, db.ErrMissingID)
	}
}

func TestRegistered(t *testing.T) {
	repo, err := db.Open(&config.Config{ReportStore: config.StoreMemory, ReportTTL: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	r, ok := repo.(*Repository)
	if !ok {
		t.Fatalf("Open() = %T, want *Repository", repo)
	}
	if r.ttl != time.Minute {
		t.Errorf("ttl = %s, want 1m", r.ttl)
	}
}
