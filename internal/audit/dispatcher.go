// Package audit records the workspace activity trail.
package audit

import (
	"context"

	"github.com/rs/zerolog"
)

type Event struct {
	WorkspaceID uint
	UserID      *uint
	Action      string
	Entity      string
	EntityID    *uint
	Metadata    any
}

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes events inline with the request. A failed write is
// logged and never fails the caller. A nil *Dispatcher drops everything.
type Dispatcher struct {
	sink Sink
}

func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{sink: sink}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if d == nil || d.sink == nil {
		return
	}
	if err := d.sink.Log(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("action", ev.Action).
			Uint("workspace_id", ev.WorkspaceID).
			Msg("activity log write failed")
	}
}
