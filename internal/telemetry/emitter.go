// Package telemetry records structured realm events for later analysis.
//
// The emitter is nil-safe so call sites never need to branch on whether
// telemetry is configured. Persistence failures are logged, not returned,
// because telemetry must never interrupt gameplay.
package telemetry

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/idlerealm/internal/storage"
)

// Emitter appends telemetry events to a store, stamping each one with the
// current UTC time.
type Emitter struct {
	store storage.TelemetryStore
	log   *logrus.Logger
	now   func() time.Time
}

// New creates an emitter backed by the given store. A nil store yields a
// no-op emitter.
func New(store storage.TelemetryStore, log *logrus.Logger) *Emitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Emitter{store: store, log: log, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (e *Emitter) WithClock(now func() time.Time) *Emitter {
	if e == nil || now == nil {
		return e
	}
	e.now = now
	return e
}

// Emit records a single event. Safe to call on a nil emitter or one with no
// backing store.
func (e *Emitter) Emit(ctx context.Context, severity storage.Severity, event, playerID, detail string) {
	if e == nil || e.store == nil {
		return
	}
	evt := storage.TelemetryEvent{
		Timestamp: e.now().UTC(),
		Severity:  severity,
		Event:     event,
		PlayerID:  playerID,
		Detail:    detail,
	}
	if err := e.store.AppendTelemetryEvent(ctx, evt); err != nil {
		e.log.WithError(err).WithField("event", event).Warn("telemetry append failed")
	}
}

// Info records an informational event.
func (e *Emitter) Info(ctx context.Context, event, playerID, detail string) {
	e.Emit(ctx, storage.SeverityInfo, event, playerID, detail)
}

// Warn records a warning event.
func (e *Emitter) Warn(ctx context.Context, event, playerID, detail string) {
	e.Emit(ctx, storage.SeverityWarn, event, playerID, detail)
}

// Error records an error event.
func (e *Emitter) Error(ctx context.Context, event, playerID, detail string) {
	e.Emit(ctx, storage.SeverityError, event, playerID, detail)
}
