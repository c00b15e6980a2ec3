package appointment

import (
	"context"

	"github.com/pranamithra/scheduler/internal/domain/slot"
)

// AvailabilityCache holds advisory availability results. Implementations
// must treat every failure as a miss.
//
// Every Invalidate bumps the key's version. A reader takes Version before it
// loads from the store and hands it to Set, which discards the write when
// the version has moved on, so a slow read never re-caches a list from
// before a booking or cancellation.
type AvailabilityCache interface {
	Get(ctx context.Context, doctorID uint, date string) (slot.Labels, bool)
	Version(ctx context.Context, doctorID uint, date string) int64
	Set(ctx context.Context, doctorID uint, date string, version int64, labels slot.Labels)
	Invalidate(ctx context.Context, doctorID uint, date string)
}
