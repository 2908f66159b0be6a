package exceptions

import (
	"time"

	"github.com/getsentry/sentry-go"
)

const defaultFlushTimeout = time.Second * 5

// Reporter sends exceptions to an external source
type Reporter interface {
	ReportException(err error, tags map[string]string)
}

// New returns a SentryReporter, or a NoopReporter when dsn is empty.
func New(dsn, env string) (Reporter, error) {
	if dsn == "" {
		return &NoopReporter{}, nil
	}
	return NewSentryReporter(dsn, env)
}

// NoopReporter is a no-op exception reporter
type NoopReporter struct{}

// ReportException does nothing
func (r *NoopReporter) ReportException(error, map[string]string) {}

// SentryReporter is an ErrorReporter that sends error information to Sentry
type SentryReporter struct {
	flushTimeout time.Duration
}

// NewSentryReporter creates and returns an instance of SentryReporter
func NewSentryReporter(dsn, env string) (*SentryReporter, error) {
	err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: env})
	if err != nil {
		return nil, err
	}

	return &SentryReporter{flushTimeout: defaultFlushTimeout}, nil
}

// ReportException will send errors to Sentry, tagged with the request
// that produced them
func (r *SentryReporter) ReportException(err error, tags map[string]string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
	sentry.Flush(r.flushTimeout)
}
