package world

import (
	"context"
	"time"
)

func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingEvents []EventEnvelope
	var pendingJoins []JoinRequest
	var pendingLeaves []string
	var pendingAdmin []AdminRequest

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			pendingJoins = append(pendingJoins, req)
		case id := <-w.leave:
			pendingLeaves = append(pendingLeaves, id)
		case req := <-w.admin:
			pendingAdmin = append(pendingAdmin, req)
		case env := <-w.inbox:
			pendingEvents = append(pendingEvents, env)
		case <-ticker.C:
			w.stepInternal(pendingJoins, pendingLeaves, pendingEvents)
			w.handleAdminRequests(pendingAdmin)
			pendingJoins = pendingJoins[:0]
			pendingLeaves = pendingLeaves[:0]
			pendingEvents = pendingEvents[:0]
			pendingAdmin = pendingAdmin[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// StepOnce advances the world by a single tick with the same ordering
// semantics as the server loop. Intended for deterministic tests.
func (w *World) StepOnce(joins []JoinRequest, leaves []string, events []EventEnvelope) uint64 {
	tick := w.tick.Load()
	w.stepInternal(joins, leaves, events)
	return tick
}
