package monitoring

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures Sentry error reporting. Reporting is active only in
// production with a DSN configured; everywhere else it is a no-op so
// local stack traces stay local.
func Init(dsn, environment, release string) bool {
	if dsn == "" || environment != "production" {
		log.Printf("Sentry disabled (environment: %s)", environment)
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		TracesSampleRate: 0.1,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			// Never ship credentials with an error report.
			if event.Request != nil {
				delete(event.Request.Headers, "Authorization")
				delete(event.Request.Headers, "Cookie")
			}
			return event
		},
	})
	if err != nil {
		log.Printf("Sentry init error: %v", err)
		return false
	}

	log.Println("Sentry error reporting enabled")
	return true
}

// CaptureError reports an error when Sentry is active.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}

// Flush drains pending events during shutdown.
func Flush() {
	sentry.Flush(2 * time.Second)
}
