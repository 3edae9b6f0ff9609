package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"room-service/internal/observability"
	"room-service/internal/repositories"
	"room-service/internal/telemetry"
)

// Sweeper removes rooms whose validity window has passed. Cascade deletion
// in the store removes their messages. Sweeps are idempotent and safe to
// run concurrently with request traffic and with each other.
type Sweeper struct {
	roomRepo repositories.RoomRepository
	audit    *telemetry.AuditEmitter
}

// New constructs a Sweeper. The audit emitter may be nil.
func New(roomRepo repositories.RoomRepository, audit *telemetry.AuditEmitter) *Sweeper {
	return &Sweeper{roomRepo: roomRepo, audit: audit}
}

// Sweep deletes every room expired as of now and returns how many were
// removed. A failed sweep needs no recovery; the next invocation
// re-evaluates the same filter.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	count, err := s.roomRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		observability.IncSweep("error")
		return 0, err
	}

	observability.IncSweep("ok")
	if count > 0 {
		observability.AddRoomsSwept(count)
		log.Printf("sweeper removed %d expired room(s)", count)
		s.audit.Emit(ctx, "INFO", fmt.Sprintf("removed %d expired room(s)", count), "", "")
	}
	return count, nil
}

// Run sweeps on a fixed interval until the context is cancelled. The
// service self-sweeps even when no external scheduler calls the cleanup
// endpoint.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				log.Printf("scheduled sweep failed: %v", err)
			}
		}
	}
}
