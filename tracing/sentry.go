package tracing

import (
	"context"
	"time"

	"github.com/ncobase/annofetch/config"

	"github.com/getsentry/sentry-go"
)

// ReportFunc sends err to the error tracker and waits for delivery
type ReportFunc func(ctx context.Context, err error)

// NewSentry initializes the sentry client. With no DSN nothing is
// initialized and the returned report does nothing.
func NewSentry(cfg *config.Sentry, svc Service) (ReportFunc, error) {
	if !cfg.Enabled() {
		return func(context.Context, error) {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		AttachStacktrace: true,
		SampleRate:       cfg.SampleRate,
		ServerName:       svc.Name,
		Release:          svc.Name + "@" + svc.Version,
		Environment:      cfg.Environment,
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, err error) {
		if err == nil {
			return
		}
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			if id := GetTraceID(ctx); id != "" {
				scope.SetTag(TraceIDKey, id)
			}
			scope.SetTag("revision", svc.Revision)
		})
		hub.CaptureException(err)
		hub.Flush(2 * time.Second)
	}, nil
}
