package booking

import (
	"context"

	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

type Repository interface {
	// WithinTx runs fn against a repository bound to one transaction;
	// any error rolls the whole unit back.
	WithinTx(ctx context.Context, fn func(Repository) error) error

	// -------- Catalog --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetItem(ctx context.Context, id uint) (*models.Item, error)
	GetExtra(ctx context.Context, id uint) (*models.Extra, error)

	// -------- Users --------
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetOrCreateCustomer(
		ctx context.Context,
		email string,
		firstName string,
		lastName string,
		phone string,
	) (*models.User, error)

	// -------- Order --------
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error

	CreateOrderItem(ctx context.Context, oi *models.OrderItem) error
	CreateOrderExtra(ctx context.Context, oe *models.OrderExtra) error
	ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	ListOrderExtras(ctx context.Context, orderID uint) ([]models.OrderExtra, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// ListAppointmentsByOrder returns the order's appointments in creation
	// order; the reschedule offset math depends on that ordering.
	ListAppointmentsByOrder(ctx context.Context, orderID uint) ([]models.Appointment, error)

	// BulkCancelAppointments cancels every appointment of the order in a
	// single update-by-filter.
	BulkCancelAppointments(ctx context.Context, orderID uint) error

	CreateAppointmentItem(ctx context.Context, ai *models.AppointmentItem) error
	CreateAppointmentExtra(ctx context.Context, ae *models.AppointmentExtra) error

	// -------- Schedule --------
	CreateSchedule(ctx context.Context, s *models.Schedule) error
	GetScheduleByAppointment(ctx context.Context, appointmentID uint) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	CountSchedules(ctx context.Context, appointmentID uint) (int64, error)

	// -------- Billing ledger --------
	CreateSale(ctx context.Context, s *models.Sale) error
	GetSaleByAppointment(ctx context.Context, appointmentID uint) (*models.Sale, error)
	UpdateSale(ctx context.Context, s *models.Sale) error

	CreatePaymentSale(ctx context.Context, ps *models.PaymentSale) error
	GetFirstPaymentSale(ctx context.Context, saleID uint) (*models.PaymentSale, error)
	UpdatePaymentSale(ctx context.Context, ps *models.PaymentSale) error

	CreatePaymentCustomer(ctx context.Context, pc *models.PaymentCustomer) error
	GetPaymentCustomerByOrder(ctx context.Context, orderID uint) (*models.PaymentCustomer, error)
}
