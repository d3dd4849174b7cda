package booking

import (
	"context"
	"time"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"github.com/cleanora-services/cleany-scheduler/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

// ScheduleOrder is the expansion engine: it authorizes the first payment and
// materializes the order into its full appointment series. Everything runs
// inside one transaction, so an authorization failure leaves no appointments,
// schedules or sales behind.
type ScheduleOrder struct {
	repo     domain.Repository
	gateway  domain.PaymentGateway
	locker   domain.Locker
	notifier domain.Notifier
	audit    *audit.Dispatcher
	horizons domain.Horizons
	tz       string
}

func NewScheduleOrder(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	locker domain.Locker,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	horizons domain.Horizons,
	tz string,
) *ScheduleOrder {
	return &ScheduleOrder{
		repo:     repo,
		gateway:  gateway,
		locker:   locker,
		notifier: notifier,
		audit:    audit,
		horizons: horizons,
		tz:       tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ScheduleOrder) Execute(
	ctx context.Context,
	orderID uint,
	cardToken string,
) (*models.Order, error) {

	release, err := uc.locker.AcquireOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, httperr.ErrValidation("order_not_found")
	}

	// One-shot: a scheduled order never expands again.
	if err := domain.CanExpand(domain.OrderStatus(order.Status)); err != nil {
		return nil, err
	}

	freq := domain.Frequency(order.RecurrenceRule.Type)
	if !domain.ValidFrequency(freq) {
		return nil, httperr.ErrValidation("invalid_recurrence_type")
	}

	// --------------------------------------------------
	// Anchor = rule start date + order start time, company timezone
	// --------------------------------------------------
	// The driver may hand the stored date back in another location; bring it
	// home before reading the calendar day off it.
	zone := timezone.Location(uc.tz)
	startDate := order.RecurrenceRule.StartDate.In(zone)
	anchor, err := time.ParseInLocation(
		"2006-01-02 15:04",
		startDate.Format("2006-01-02")+" "+order.StartTime,
		zone,
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_start_time")
	}

	occurrences := domain.Occurrences(freq, anchor, uc.horizons)
	if len(occurrences) == 0 {
		return nil, httperr.ErrValidation("invalid_recurrence_type")
	}

	items, err := uc.repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	extras, err := uc.repo.ListOrderExtras(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Expansion, all-or-nothing
	// --------------------------------------------------
	err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		authRef, customerRef, err := uc.gateway.Authorize(
			ctx,
			cardToken,
			order.TotalAmount,
			order.ContactInfo.Email,
		)
		if err != nil {
			return httperr.ErrPayment("payment_authorization_failed")
		}

		pc := models.PaymentCustomer{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Email:       order.ContactInfo.Email,
			CustomerRef: customerRef,
		}
		if err := r.CreatePaymentCustomer(ctx, &pc); err != nil {
			return err
		}

		for i, when := range occurrences {
			// Each appointment owns its own copy of the location.
			loc := order.ServiceLocation
			loc.ID = 0

			ap := models.Appointment{
				OrderID:         order.ID,
				ServiceLocation: loc,

				Type:      order.Type,
				StartTime: order.StartTime,

				TotalHours:  order.TotalHours,
				TotalAmount: order.TotalAmount,

				LatestReschedule: order.LatestReschedule,
				LatestCancel:     order.LatestCancel,

				AdditionalInfo: order.AdditionalInfo,
				Status:         string(domain.AppointmentScheduled),

				AppointmentDateTime: when,
			}
			if err := r.CreateAppointment(ctx, &ap); err != nil {
				return err
			}

			for _, oi := range items {
				ai := models.AppointmentItem{
					AppointmentID: ap.ID,
					ItemID:        oi.ItemID,
					Quantity:      oi.Quantity,
					Price:         oi.Price,
				}
				if err := r.CreateAppointmentItem(ctx, &ai); err != nil {
					return err
				}
			}
			for _, oe := range extras {
				ae := models.AppointmentExtra{
					AppointmentID: ap.ID,
					ExtraID:       oe.ExtraID,
					Quantity:      oe.Quantity,
					Price:         oe.Price,
				}
				if err := r.CreateAppointmentExtra(ctx, &ae); err != nil {
					return err
				}
			}

			existing, err := r.CountSchedules(ctx, ap.ID)
			if err != nil {
				return err
			}
			sched := models.Schedule{
				AppointmentID: ap.ID,
				UserID:        order.UserID,
				StartTime:     when,
				EndTime:       when.Add(time.Duration(order.TotalHours * float64(time.Hour))),
				Status:        "scheduled",
				Count:         int(existing) + 1,
			}
			if err := r.CreateSchedule(ctx, &sched); err != nil {
				return err
			}

			sale := models.Sale{
				AppointmentID: ap.ID,
				Amount:        order.TotalAmount,
				Status:        "pending",
			}
			if i == 0 {
				sale.Paid = order.TotalAmount
			}
			if err := r.CreateSale(ctx, &sale); err != nil {
				return err
			}

			if i == 0 {
				ps := models.PaymentSale{
					SaleID:     sale.ID,
					Mode:       "card",
					Capture:    authRef,
					IsCaptured: false,
					IsFirst:    true,
					Amount:     order.TotalAmount,
				}
				if err := r.CreatePaymentSale(ctx, &ps); err != nil {
					return err
				}
			}
		}

		order.Status = string(domain.OrderScheduled)
		return r.UpdateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(domain.Event{
		OrderID: &order.ID,
		UserID:  order.UserID,
		Title:   "New Booking Confirmation",
		Email:   order.ContactInfo.Email,
		Subject: "Your booking is confirmed",
		Body:    "Your cleaning has been scheduled. See you soon!",
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   order.UserID,
		Action:   "order_scheduled",
		Entity:   "order",
		EntityID: &order.ID,
	})

	return order, nil
}
