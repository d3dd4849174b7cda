package booking

import (
	"context"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

type DispatchAppointment struct {
	repo     domain.Repository
	notifier domain.Notifier
	audit    *audit.Dispatcher
}

func NewDispatchAppointment(
	repo domain.Repository,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
) *DispatchAppointment {
	return &DispatchAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *DispatchAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	providerID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrValidation("appointment_not_found")
	}

	provider, err := uc.repo.GetUser(ctx, providerID)
	if err != nil {
		return nil, httperr.ErrValidation("provider_not_found")
	}
	if provider.Role != "cleaner" {
		return nil, httperr.ErrValidation("provider_not_a_cleaner")
	}

	sched, err := uc.repo.GetScheduleByAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.Dispatch(ap, sched, provider.ID); err != nil {
		return nil, err
	}

	err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		return r.UpdateSchedule(ctx, sched)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(domain.Event{
		AppointmentID: &ap.ID,
		UserID:        &provider.ID,
		Title:         "New Job Assignment",
		Email:         provider.Email,
		Subject:       "You have been assigned a cleaning",
		Body:          "A cleaning on " + ap.AppointmentDateTime.Format("Jan 2, 2006 at 15:04") + " was assigned to you.",
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &provider.ID,
		Action:   "appointment_dispatched",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
