// Package db defines where batch reports are kept between the request
// that creates them and later export or copy requests. Reports are
// short lived: every implementation expires them.
package db

import (
	"errors"

	"github.com/cbsinteractive/footage-timecode/batch"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrMissingID      = errors.New("report id missing")
)

// Repository stores batch reports by ID
type Repository interface {
	SaveReport(r *batch.Report) error
	GetReport(id string) (*batch.Report, error)
	DeleteReport(id string) error

	// Healthcheck returns nil if the repository can serve requests
	Healthcheck() error
}
