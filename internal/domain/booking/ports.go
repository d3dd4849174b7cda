package booking

import "context"

// PaymentGateway abstracts the card processor. Authorize places a hold on
// the customer's card without capturing funds; Capture settles a previous
// hold; Charge bills a stored customer directly.
type PaymentGateway interface {
	Authorize(ctx context.Context, cardToken string, amount float64, email string) (authRef, customerRef string, err error)
	Capture(ctx context.Context, authRef string) error
	Charge(ctx context.Context, customerRef string, amount float64) (chargeRef string, err error)
}

// Event is a customer-facing notification. Title is persisted as an in-app
// notification; Subject/Body drive the outgoing email when Email is set.
type Event struct {
	OrderID       *uint
	AppointmentID *uint
	UserID        *uint
	Title         string
	Email         string
	Subject       string
	Body          string
}

// Notifier delivers events out of band. Implementations must never block
// the caller or surface delivery failures into booking flows.
type Notifier interface {
	Notify(ev Event)
}

// Locker serializes mutations per order. AcquireOrder returns a release
// func on success and a conflict error when the order is already locked.
type Locker interface {
	AcquireOrder(ctx context.Context, orderID uint) (release func(), err error)
}
