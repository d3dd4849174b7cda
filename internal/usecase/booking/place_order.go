package booking

import (
	"context"
	"time"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	"github.com/cleanora-services/cleany-scheduler/internal/domain/billing"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"github.com/cleanora-services/cleany-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type OrderLine struct {
	ID       uint
	Quantity uint
}

type PlaceOrderInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	HowToEnterOnPremise  string
	HasParkingSpot       bool
	HasPets              bool
	HowDidYouHearAboutUs string

	StreetAddress string
	AptSuite      string
	City          string
	State         string
	ZipCode       string
	LatLong       string

	ServiceID      uint
	RecurrenceType string
	StartDate      string // 2006-01-02
	StartTime      string // 15:04

	Items  []OrderLine
	Extras []OrderLine

	AdditionalInfo string
}

// ======================================================
// USE CASE
// ======================================================

// PlaceOrder records the booking request: contact, location, recurrence
// rule, priced line snapshots and totals. The order stays unscheduled until
// ScheduleOrder expands it into appointments.
type PlaceOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewPlaceOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *PlaceOrder {
	return &PlaceOrder{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PlaceOrder) Execute(
	ctx context.Context,
	in PlaceOrderInput,
) (*models.Order, error) {

	// --------------------------------------------------
	// Recurrence + start moment
	// --------------------------------------------------
	if !domain.ValidFrequency(domain.Frequency(in.RecurrenceType)) {
		return nil, httperr.ErrValidation("invalid_recurrence_type")
	}

	startDate, err := time.ParseInLocation(
		"2006-01-02",
		in.StartDate,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_start_date")
	}
	if _, err := time.Parse("15:04", in.StartTime); err != nil {
		return nil, httperr.ErrValidation("invalid_start_time")
	}

	// --------------------------------------------------
	// Catalog lookups
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrValidation("service_not_found")
	}

	if len(in.Items) == 0 {
		return nil, httperr.ErrValidation("order_has_no_items")
	}

	itemLines := make([]billing.ItemLine, 0, len(in.Items))
	for _, line := range in.Items {
		it, err := uc.repo.GetItem(ctx, line.ID)
		if err != nil {
			return nil, httperr.ErrValidation("item_not_found")
		}
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		itemLines = append(itemLines, billing.ItemLine{Item: *it, Quantity: qty})
	}

	extraLines := make([]billing.ExtraLine, 0, len(in.Extras))
	for _, line := range in.Extras {
		ex, err := uc.repo.GetExtra(ctx, line.ID)
		if err != nil {
			return nil, httperr.ErrValidation("extra_not_found")
		}
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		extraLines = append(extraLines, billing.ExtraLine{Extra: *ex, Quantity: qty})
	}

	var taxRate uint
	if svc.Tax != nil {
		taxRate = svc.Tax.Rate
	}
	bill := billing.Compute(itemLines, extraLines, taxRate)

	// --------------------------------------------------
	// Customer (get or create by contact email)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.Email,
		in.FirstName,
		in.LastName,
		in.Phone,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persist the order graph
	// --------------------------------------------------
	order := &models.Order{
		ContactInfo: models.ContactInfo{
			FirstName:            in.FirstName,
			LastName:             in.LastName,
			Email:                in.Email,
			Phone:                in.Phone,
			HowToEnterOnPremise:  in.HowToEnterOnPremise,
			HasParkingSpot:       in.HasParkingSpot,
			HasPets:              in.HasPets,
			HowDidYouHearAboutUs: in.HowDidYouHearAboutUs,
		},
		RecurrenceRule: models.RecurrenceRule{
			ServiceID: svc.ID,
			Type:      in.RecurrenceType,
			StartDate: startDate,
		},
		ServiceLocation: models.ServiceLocation{
			StreetAddress: in.StreetAddress,
			AptSuite:      in.AptSuite,
			City:          in.City,
			State:         in.State,
			ZipCode:       in.ZipCode,
			LatLong:       in.LatLong,
		},
		UserID: &customer.ID,

		Type:      in.RecurrenceType,
		StartTime: in.StartTime,

		TotalHours:  bill.TotalHours,
		TotalAmount: bill.Total,

		AdditionalInfo: in.AdditionalInfo,
		Status:         string(domain.OrderUnscheduled),
	}

	err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		if err := r.CreateOrder(ctx, order); err != nil {
			return err
		}

		for _, line := range itemLines {
			oi := models.OrderItem{
				OrderID:  order.ID,
				ItemID:   line.Item.ID,
				Quantity: line.Quantity,
				Price:    billing.DiscountedPrice(line.Item),
			}
			if err := r.CreateOrderItem(ctx, &oi); err != nil {
				return err
			}
		}

		for _, line := range extraLines {
			// Extras snapshot the line total; items keep the unit price.
			oe := models.OrderExtra{
				OrderID:  order.ID,
				ExtraID:  line.Extra.ID,
				Quantity: line.Quantity,
				Price:    line.Extra.Price * float64(line.Quantity),
			}
			if err := r.CreateOrderExtra(ctx, &oe); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   order.UserID,
		Action:   "order_placed",
		Entity:   "order",
		EntityID: &order.ID,
	})

	return order, nil
}
