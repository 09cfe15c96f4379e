package appointment

import (
	"context"
	"time"

	domain "github.com/careconnect/clinic-scheduler/internal/domain/appointment"
	"github.com/careconnect/clinic-scheduler/internal/models"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetFreeSlots struct {
	repo         domain.Repository
	storeTimeout time.Duration
}

func NewGetFreeSlots(repo domain.Repository, storeTimeout time.Duration) *GetFreeSlots {
	return &GetFreeSlots{repo: repo, storeTimeout: storeTimeout}
}

// Execute lists the open slots of one physician for one calendar day:
// the declared isAvailable windows carved into service-length pieces,
// minus anything already taken by a non-terminal appointment.
func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	physicianID uint,
	serviceID uint,
	date time.Time,
) ([]TimeSlot, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	physician, err := uc.repo.GetUserByID(ctx, physicianID)
	if err != nil {
		return nil, err
	}
	if physician.Role != models.RolePhysician || !physician.IsAvailable {
		return []TimeSlot{}, nil
	}

	service, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindows(ctx, physicianID)
	if err != nil {
		return nil, err
	}

	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, physicianID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	weekday := int(dayStart.Weekday())
	slotDuration := time.Duration(service.DurationMin) * time.Minute
	if slotDuration <= 0 {
		slotDuration = 30 * time.Minute
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			dayStart.Year(), dayStart.Month(), dayStart.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	slots := []TimeSlot{}

	for _, w := range windows {
		if w.DayOfWeek != weekday || !w.IsAvailable {
			continue
		}

		winStart := parseHM(w.StartTime)
		winEnd := parseHM(w.EndTime)

		for cur := winStart; !cur.Add(slotDuration).After(winEnd); cur = cur.Add(slotDuration) {
			slotStart := cur
			slotEnd := cur.Add(slotDuration)

			conflict := false
			for _, ap := range appointments {
				if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, TimeSlot{
					Start: slotStart.Format("15:04"),
					End:   slotEnd.Format("15:04"),
				})
			}
		}
	}

	return slots, nil
}
