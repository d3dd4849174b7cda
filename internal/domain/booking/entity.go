package booking

import (
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(AppointmentStatus(ap.Status), ap.IsCancelled); err != nil {
		return err
	}

	ap.Status = string(AppointmentCancelled)
	ap.IsCancelled = true
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(AppointmentStatus(ap.Status), ap.IsCancelled); err != nil {
		return err
	}

	ap.Status = string(AppointmentComplete)
	return nil
}

func Dispatch(ap *models.Appointment, sched *models.Schedule, providerID uint) error {
	if err := CanDispatch(AppointmentStatus(ap.Status), ap.IsCancelled); err != nil {
		return err
	}

	ap.Status = string(AppointmentDispatched)
	sched.UserID = &providerID
	sched.Status = "dispatched"
	return nil
}
