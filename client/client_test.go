package client

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db/memory"
	"github.com/cbsinteractive/footage-timecode/footage"
	"github.com/cbsinteractive/footage-timecode/service"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func newClient(t *testing.T) Client {
	t.Helper()
	logger := logrus.New()
	logger.Out = ioutil.Discard
	srv, err := service.New(&config.Config{DefaultFPS: "24"}, memory.NewRepository(time.Minute), logger, nil)
	if err != nil {
		t.Fatal(err)
	}
	backend := httptest.NewServer(srv.Handler())
	t.Cleanup(backend.Close)
	return &DefaultClient{Base: urlMust(url.Parse(backend.URL))}
}

func TestClientConvert(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	have, err := c.Convert(ctx, service.ConvertRequest{Mode: "ftc", Feet: "250", Frames: "12", Reel: "0", FPS: "25"})
	if err != nil {
		t.Fatal(err)
	}
	want := service.ConvertResponse{
		Mode: batch.FootageToTimecode, FPS: footage.FPS25, Reel: 0,
		Input: "250+12", Output: "00:02:40:12", ValueOnly: "00024012", RunningTime: "2m40.48s",
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("Convert(): mismatch (-want +have):\n%s", diff)
	}

	if _, err = c.Convert(ctx, service.ConvertRequest{Mode: "ctf", Reel: "1"}); !errors.Is(err, footage.ErrNoInput) {
		t.Errorf("Convert() of empty timecode: error = %v, want ErrNoInput", err)
	}

	_, err = c.Convert(ctx, service.ConvertRequest{Mode: "ctf", Timecode: "00:30:00:00", Reel: "1"})
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != "reel_mismatch" || perr.Status != 422 {
		t.Errorf("Convert() before reel start: error = %v", err)
	}
}

func TestClientBatch(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	if err := c.Healthcheck(ctx); err != nil {
		t.Fatal(err)
	}

	report, err := c.Batch(ctx, service.BatchRequest{Mode: "ctf", FPS: "25", Reel: "0", Input: "00:05:30:00\n00:00:00:25"})
	if err != nil {
		t.Fatal(err)
	}
	if report.ID == "" || report.Success != 1 || report.Errors != 1 {
		t.Fatalf("Batch() = %+v", report)
	}

	stored, err := c.Report(ctx, report.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(report.Lines, stored.Lines); diff != "" {
		t.Errorf("Report(): mismatch (-want +have):\n%s", diff)
	}

	text, err := c.Export(ctx, report.ID, "tsv")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text, "#\tInput\tOutput\tStatus\n1\t00:05:30:00\t515+10\t") {
		t.Errorf("Export() =\n%s", text)
	}

	if err = c.DeleteReport(ctx, report.ID); err != nil {
		t.Fatal(err)
	}
	var perr *Error
	if _, err = c.Report(ctx, report.ID); !errors.As(err, &perr) || perr.Status != 404 {
		t.Errorf("Report() after delete: error = %v", err)
	}
}
