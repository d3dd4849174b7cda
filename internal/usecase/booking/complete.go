package booking

import (
	"context"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

type CompleteInput struct {
	AppointmentID uint

	SendNotify   bool
	SendFeedback bool
	SendTip      bool
}

type CompleteAppointment struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrValidation("appointment_not_found")
	}

	if err := domain.Complete(ap); err != nil {
		return nil, err
	}

	order, err := uc.repo.GetOrder(ctx, ap.OrderID)
	if err != nil {
		return nil, err
	}

	err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		sched, err := r.GetScheduleByAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}
		sched.Status = "complete"
		sched.ShiftEnded = true
		sched.ShiftStatus = "completed"
		return r.UpdateSchedule(ctx, sched)
	})
	if err != nil {
		return nil, err
	}

	// Follow-up mail is best effort and never rolls the completion back.
	email := order.ContactInfo.Email
	if in.SendNotify {
		uc.notifier.Notify(domain.Event{
			OrderID:       &order.ID,
			AppointmentID: &ap.ID,
			UserID:        order.UserID,
			Title:         "Booking Completed",
			Email:         email,
			Subject:       "Your cleaning is complete",
			Body:          "Today's cleaning has been completed. Thank you!",
		})
	}
	if in.SendFeedback {
		uc.notifier.Notify(domain.Event{
			OrderID:       &order.ID,
			AppointmentID: &ap.ID,
			UserID:        order.UserID,
			Title:         "Feedback Request",
			Email:         email,
			Subject:       "How did we do?",
			Body:          "We would love to hear about your cleaning experience.",
		})
	}
	if in.SendTip {
		uc.notifier.Notify(domain.Event{
			OrderID:       &order.ID,
			AppointmentID: &ap.ID,
			UserID:        order.UserID,
			Title:         "Tip Request",
			Email:         email,
			Subject:       "Leave a tip for your cleaner",
			Body:          "If you enjoyed the service, consider tipping your cleaner.",
		})
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   order.UserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
