package appointment

import (
	"context"
	"sort"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/dto"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/timezone"
)

type Dashboard struct {
	repo domain.Repository
}

func NewDashboard(repo domain.Repository) *Dashboard {
	return &Dashboard{repo: repo}
}

// Execute summarises one day for a doctor. A day without a schedule is an
// empty dashboard, not an error.
func (uc *Dashboard) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
) (*dto.DashboardDTO, error) {

	d, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date")
	}

	out := &dto.DashboardDTO{
		Date:      d,
		Booked:    []dto.BookedSlotDTO{},
		Available: []string{},
	}

	sched, err := uc.repo.GetSchedule(ctx, doctorID, d)
	if err != nil {
		if httperr.IsBusiness(err, "schedule_not_found") {
			return out, nil
		}
		return nil, err
	}

	apps, err := uc.repo.ListBookedForDay(ctx, doctorID, d)
	if err != nil {
		return nil, err
	}

	// 12-hour labels do not sort as strings ("01:00 pm" < "09:00 am").
	sort.SliceStable(apps, func(i, j int) bool {
		return slot.StartKey(apps[i].SlotLabel) < slot.StartKey(apps[j].SlotLabel)
	})

	taken := make([]string, 0, len(apps))
	for _, ap := range apps {
		taken = append(taken, ap.SlotLabel)
		out.Booked = append(out.Booked, dto.BookedSlotDTO{
			AppointmentID: ap.ID,
			SlotLabel:     ap.SlotLabel,
			Status:        ap.Status,
			CustomerID:    ap.CustomerID,
			CustomerName:  ap.Customer.FullName,
			CustomerPhone: ap.Customer.Phone,
			CustomerEmail: ap.Customer.Email,
		})
	}

	out.Available = sched.Slots.Without(taken)
	out.Remaining = len(out.Available)

	return out, nil
}
