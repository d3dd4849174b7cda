package booking

import (
	"context"
	"time"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	"github.com/cleanora-services/cleany-scheduler/internal/clock"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"github.com/cleanora-services/cleany-scheduler/internal/timezone"
)

// rescheduleShift is the fixed slot length applied to rewritten schedules,
// independent of the order's total hours.
const rescheduleShift = 2 * time.Hour

const (
	ScopeSingle = "single"
	ScopeAll    = "all"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleInput struct {
	AppointmentID uint
	Scope         string
	Date          string // 2006-01-02
	Time          string // 15:04
}

// ======================================================
// USE CASE
// ======================================================

// Reschedule moves one appointment, or re-anchors the order's whole series
// around the new date. Exactly one notification goes out per invocation,
// whatever the scope.
type Reschedule struct {
	repo     domain.Repository
	locker   domain.Locker
	notifier domain.Notifier
	audit    *audit.Dispatcher
	clk      clock.Clock
	tz       string
}

func NewReschedule(
	repo domain.Repository,
	locker domain.Locker,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	clk clock.Clock,
	tz string,
) *Reschedule {
	return &Reschedule{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		audit:    audit,
		clk:      clk,
		tz:       tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	if in.Scope != ScopeSingle && in.Scope != ScopeAll {
		return nil, httperr.ErrValidation("invalid_scope")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrValidation("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.AppointmentStatus(ap.Status), ap.IsCancelled); err != nil {
		return nil, err
	}

	// Reschedule window: too close to the current slot is a conflict.
	now := uc.clk.Now()
	cutoff := ap.AppointmentDateTime.Add(-time.Duration(ap.LatestReschedule) * time.Hour)
	if now.After(cutoff) {
		return nil, httperr.ErrConflict("reschedule_window_closed")
	}

	anchor, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	order, err := uc.repo.GetOrder(ctx, ap.OrderID)
	if err != nil {
		return nil, err
	}

	release, err := uc.locker.AcquireOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	switch in.Scope {
	case ScopeSingle:
		err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
			return uc.moveAppointment(ctx, r, ap, anchor)
		})
	case ScopeAll:
		err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
			return uc.reanchorSeries(ctx, r, order, anchor)
		})
	}
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(domain.Event{
		OrderID:       &order.ID,
		AppointmentID: &ap.ID,
		UserID:        order.UserID,
		Title:         "Booking Rescheduled",
		Email:         order.ContactInfo.Email,
		Subject:       "Your booking was rescheduled",
		Body:          "Your cleaning has been moved to " + anchor.Format("Jan 2, 2006 at 15:04") + ".",
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   order.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"scope": in.Scope},
	})

	return ap, nil
}

// moveAppointment rewrites one appointment and its schedule onto the new
// start; the schedule keeps the fixed two-hour slot.
func (uc *Reschedule) moveAppointment(
	ctx context.Context,
	r domain.Repository,
	ap *models.Appointment,
	start time.Time,
) error {

	ap.AppointmentDateTime = start
	ap.StartTime = start.Format("15:04")
	if err := r.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	sched, err := r.GetScheduleByAppointment(ctx, ap.ID)
	if err != nil {
		return err
	}
	sched.StartTime = start
	sched.EndTime = start.Add(rescheduleShift)
	return r.UpdateSchedule(ctx, sched)
}

// reanchorSeries rewrites every appointment of the order around the new
// anchor using the per-frequency strategy.
func (uc *Reschedule) reanchorSeries(
	ctx context.Context,
	r domain.Repository,
	order *models.Order,
	anchor time.Time,
) error {

	series, err := r.ListAppointmentsByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	starts := reanchorStrategy(
		domain.Frequency(order.RecurrenceRule.Type),
		anchor,
		len(series),
	)
	if starts == nil {
		return nil
	}

	for i := range series {
		if err := uc.moveAppointment(ctx, r, &series[i], starts[i]); err != nil {
			return err
		}
	}
	return nil
}

// reanchorStrategy produces the new start for each appointment, indexed by
// creation order.
//
// Weekly and biweekly walk backward from the anchor: the last-created
// appointment lands on it and earlier ones sit whole strides before it.
// Monthly cascades forward from the anchor one calendar month at a time.
// Once collapses the series onto the anchor. Daily has no strategy and the
// series is left untouched.
func reanchorStrategy(f domain.Frequency, anchor time.Time, n int) []time.Time {
	if n == 0 {
		return nil
	}

	starts := make([]time.Time, n)
	switch f {
	case domain.FrequencyWeekly, domain.FrequencyBiweekly:
		stride := domain.Stride(f)
		for i := 0; i < n; i++ {
			starts[i] = anchor.AddDate(0, 0, -stride*(n-1-i))
		}
	case domain.FrequencyMonthly:
		for i := 0; i < n; i++ {
			starts[i] = domain.AddMonths(anchor, i)
		}
	case domain.FrequencyOnce:
		for i := 0; i < n; i++ {
			starts[i] = anchor
		}
	default:
		return nil
	}
	return starts
}
