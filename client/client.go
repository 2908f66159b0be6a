// Package client talks to the footage-timecode service over http.
package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/footage"
	"github.com/cbsinteractive/footage-timecode/service"
)

// Client holds footage-timecode service configuration and exposes
// methods for interacting with it
type Client interface {
	// Conversions
	Convert(ctx context.Context, req service.ConvertRequest) (service.ConvertResponse, error)

	// Batches
	Batch(ctx context.Context, req service.BatchRequest) (*batch.Report, error)
	Report(ctx context.Context, id string) (*batch.Report, error)
	Export(ctx context.Context, id, format string) (string, error)
	DeleteReport(ctx context.Context, id string) error

	Healthcheck(ctx context.Context) error
}

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "http://localhost:8080"
)

type DefaultClient struct {
	Base   *url.URL
	Client *http.Client
}

// Convert runs a single conversion. An empty timecode yields an error
// matching footage.ErrNoInput.
func (c *DefaultClient) Convert(ctx context.Context, req service.ConvertRequest) (service.ConvertResponse, error) {
	c.ensure()

	var resp service.ConvertResponse
	code, err := c.do(ctx, http.MethodPost, "/convert", req, &resp)
	if err != nil {
		return service.ConvertResponse{}, err
	}
	if code == http.StatusNoContent {
		return service.ConvertResponse{}, footage.ErrNoInput
	}
	return resp, nil
}

// Batch converts every line of the request and returns the stored report
func (c *DefaultClient) Batch(ctx context.Context, req service.BatchRequest) (*batch.Report, error) {
	c.ensure()

	report := &batch.Report{}
	if _, err := c.do(ctx, http.MethodPost, "/batch", req, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Report returns a stored batch report
func (c *DefaultClient) Report(ctx context.Context, id string) (*batch.Report, error) {
	c.ensure()

	report := &batch.Report{}
	if _, err := c.do(ctx, http.MethodGet, "/batch/"+url.PathEscape(id), nil, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Export returns a stored report rendered as "txt" or "tsv"
func (c *DefaultClient) Export(ctx context.Context, id, format string) (string, error) {
	c.ensure()

	path := "/batch/" + url.PathEscape(id) + "/export"
	if format != "" {
		path += "?format=" + url.QueryEscape(format)
	}
	var text string
	if _, err := c.do(ctx, http.MethodGet, path, nil, &text); err != nil {
		return "", err
	}
	return text, nil
}

// DeleteReport removes a stored report
func (c *DefaultClient) DeleteReport(ctx context.Context, id string) error {
	c.ensure()

	_, err := c.do(ctx, http.MethodDelete, "/batch/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *DefaultClient) Healthcheck(ctx context.Context) error {
	c.ensure()

	_, err := c.do(ctx, http.MethodGet, "/healthcheck", nil, nil)
	return err
}

func (c *DefaultClient) ensure() {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}

	if c.Base == nil {
		c.Base = urlMust(url.Parse(defaultBaseURL))
	}
}

func urlMust(u *url.URL, _ error) *url.URL { return u }
