package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) WithinTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Tax").
		First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetItem(
	ctx context.Context,
	id uint,
) (*models.Item, error) {

	var it models.Item
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *BookingGormRepository) GetExtra(
	ctx context.Context,
	id uint,
) (*models.Extra, error) {

	var ex models.Extra
	if err := r.db.WithContext(ctx).First(&ex, id).Error; err != nil {
		return nil, err
	}
	return &ex, nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	email string,
	firstName string,
	lastName string,
	phone string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Role:      "customer",
	}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Order
// --------------------------------------------------

func (r *BookingGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *BookingGormRepository) GetOrder(
	ctx context.Context,
	id uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("ContactInfo").
		Preload("RecurrenceRule").
		Preload("ServiceLocation").
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *BookingGormRepository) UpdateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *BookingGormRepository) CreateOrderItem(
	ctx context.Context,
	oi *models.OrderItem,
) error {
	return r.db.WithContext(ctx).Create(oi).Error
}

func (r *BookingGormRepository) CreateOrderExtra(
	ctx context.Context,
	oe *models.OrderExtra,
) error {
	return r.db.WithContext(ctx).Create(oe).Error
}

func (r *BookingGormRepository) ListOrderItems(
	ctx context.Context,
	orderID uint,
) ([]models.OrderItem, error) {

	var items []models.OrderItem
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *BookingGormRepository) ListOrderExtras(
	ctx context.Context,
	orderID uint,
) ([]models.OrderExtra, error) {

	var extras []models.OrderExtra
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&extras).Error; err != nil {
		return nil, err
	}
	return extras, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ServiceLocation").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) ListAppointmentsByOrder(
	ctx context.Context,
	orderID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) BulkCancelAppointments(
	ctx context.Context,
	orderID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("order_id = ? AND status NOT IN ('complete', 'cancelled')", orderID).
		Updates(map[string]any{
			"status":       "cancelled",
			"is_cancelled": true,
		}).Error
}

func (r *BookingGormRepository) CreateAppointmentItem(
	ctx context.Context,
	ai *models.AppointmentItem,
) error {
	return r.db.WithContext(ctx).Create(ai).Error
}

func (r *BookingGormRepository) CreateAppointmentExtra(
	ctx context.Context,
	ae *models.AppointmentExtra,
) error {
	return r.db.WithContext(ctx).Create(ae).Error
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) CreateSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *BookingGormRepository) GetScheduleByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BookingGormRepository) UpdateSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *BookingGormRepository) CountSchedules(
	ctx context.Context,
	appointmentID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Billing ledger
// --------------------------------------------------

func (r *BookingGormRepository) CreateSale(
	ctx context.Context,
	s *models.Sale,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *BookingGormRepository) GetSaleByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Sale, error) {

	var s models.Sale
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *BookingGormRepository) UpdateSale(
	ctx context.Context,
	s *models.Sale,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *BookingGormRepository) CreatePaymentSale(
	ctx context.Context,
	ps *models.PaymentSale,
) error {
	return r.db.WithContext(ctx).Create(ps).Error
}

func (r *BookingGormRepository) GetFirstPaymentSale(
	ctx context.Context,
	saleID uint,
) (*models.PaymentSale, error) {

	var ps models.PaymentSale
	if err := r.db.WithContext(ctx).
		Where("sale_id = ? AND is_first = ?", saleID, true).
		First(&ps).Error; err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *BookingGormRepository) UpdatePaymentSale(
	ctx context.Context,
	ps *models.PaymentSale,
) error {
	return r.db.WithContext(ctx).Save(ps).Error
}

func (r *BookingGormRepository) CreatePaymentCustomer(
	ctx context.Context,
	pc *models.PaymentCustomer,
) error {
	return r.db.WithContext(ctx).Create(pc).Error
}

func (r *BookingGormRepository) GetPaymentCustomerByOrder(
	ctx context.Context,
	orderID uint,
) (*models.PaymentCustomer, error) {

	var pc models.PaymentCustomer
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&pc).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}
