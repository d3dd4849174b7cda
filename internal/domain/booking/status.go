package booking

import "github.com/cleanora-services/cleany-scheduler/internal/httperr"

// ===============================
// Order Status
// ===============================

type OrderStatus string

const (
	OrderUnscheduled OrderStatus = "unscheduled"
	OrderScheduled   OrderStatus = "scheduled"
	OrderComplete    OrderStatus = "complete"
	OrderCancelled   OrderStatus = "cancelled"
)

// CanExpand guards the one-shot nature of order expansion: an order is only
// expandable while still unscheduled.
func CanExpand(current OrderStatus) error {
	if current != OrderUnscheduled {
		return httperr.ErrConflict("order_already_scheduled")
	}
	return nil
}

// ===============================
// Appointment Status
// ===============================

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentDispatched AppointmentStatus = "dispatched"
	AppointmentComplete   AppointmentStatus = "complete"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

func terminal(current AppointmentStatus, cancelled bool) error {
	if current == AppointmentComplete {
		return httperr.ErrConflict("already_completed")
	}
	if cancelled || current == AppointmentCancelled {
		return httperr.ErrConflict("already_cancelled")
	}
	return nil
}

func CanCancel(current AppointmentStatus, cancelled bool) error {
	return terminal(current, cancelled)
}

func CanComplete(current AppointmentStatus, cancelled bool) error {
	return terminal(current, cancelled)
}

func CanReschedule(current AppointmentStatus, cancelled bool) error {
	return terminal(current, cancelled)
}

func CanDispatch(current AppointmentStatus, cancelled bool) error {
	return terminal(current, cancelled)
}
