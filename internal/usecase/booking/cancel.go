package booking

import (
	"context"
	"time"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	"github.com/cleanora-services/cleany-scheduler/internal/clock"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

type CancelInput struct {
	AppointmentID uint
	CancelAll     bool
}

type CancelAppointment struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
	clk      clock.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		clk:      clk,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrValidation("appointment_not_found")
	}

	if err := domain.CanCancel(domain.AppointmentStatus(ap.Status), ap.IsCancelled); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	cutoff := ap.AppointmentDateTime.Add(-time.Duration(ap.LatestCancel) * time.Hour)
	if now.After(cutoff) {
		return nil, httperr.ErrConflict("cancel_window_closed")
	}

	order, err := uc.repo.GetOrder(ctx, ap.OrderID)
	if err != nil {
		return nil, err
	}

	err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		if in.CancelAll {
			// One bulk rewrite for the whole series.
			if err := r.BulkCancelAppointments(ctx, order.ID); err != nil {
				return err
			}
			order.Status = string(domain.OrderCancelled)
			return r.UpdateOrder(ctx, order)
		}

		if err := domain.Cancel(ap); err != nil {
			return err
		}
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		sched, err := r.GetScheduleByAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}
		sched.Status = "cancelled"
		return r.UpdateSchedule(ctx, sched)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(domain.Event{
		OrderID:       &order.ID,
		AppointmentID: &ap.ID,
		UserID:        order.UserID,
		Title:         "Booking Cancelled",
		Email:         order.ContactInfo.Email,
		Subject:       "Your booking was cancelled",
		Body:          "Your cleaning appointment has been cancelled.",
	})

	action := "appointment_cancelled"
	if in.CancelAll {
		action = "order_cancelled"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   order.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
