package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"github.com/cleanora-services/cleany-scheduler/internal/timezone"
)

func TestScheduleOrderWeeklyExpandsTwentyFour(t *testing.T) {
	repo, db := newTestRepo(t)

	order, _, _ := scheduleTestOrder(t, db, repo, "weekly")
	assert.Equal(t, string(domain.OrderScheduled), order.Status)

	var aps []models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&aps).Error)
	require.Len(t, aps, 24)

	anchor := mustParseUTC(t, "2026-09-07 10:00")
	for i, ap := range aps {
		assert.Equal(t, anchor.AddDate(0, 0, 7*i), ap.AppointmentDateTime.UTC())
		assert.Equal(t, string(domain.AppointmentScheduled), ap.Status)
		assert.Equal(t, order.TotalAmount, ap.TotalAmount)
	}
}

func TestScheduleOrderOnceExpandsOne(t *testing.T) {
	repo, db := newTestRepo(t)

	order, _, _ := scheduleTestOrder(t, db, repo, "once")

	var count int64
	db.Model(&models.Appointment{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestScheduleOrderMonthlyClampsEndOfMonth(t *testing.T) {
	repo, db := newTestRepo(t)
	svc, items, _ := seedCatalog(t, db)

	place := NewPlaceOrder(repo, newTestAudit(db), "UTC")
	order, err := place.Execute(context.Background(), PlaceOrderInput{
		FirstName: "Dana", LastName: "Reyes",
		Email: "dana@example.com", Phone: "555-0100",
		StreetAddress: "12 Main St", City: "Toronto", State: "ON", ZipCode: "M5V 1A1",

		ServiceID:      svc.ID,
		RecurrenceType: "monthly",
		StartDate:      "2028-01-31",
		StartTime:      "09:00",
		Items:          []OrderLine{{ID: items[0].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	schedule := NewScheduleOrder(
		repo, &fakeGateway{}, &fakeLocker{}, &fakeNotifier{}, newTestAudit(db),
		domain.DefaultHorizons(), "UTC",
	)
	_, err = schedule.Execute(context.Background(), order.ID, "tok_visa")
	require.NoError(t, err)

	var aps []models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&aps).Error)
	require.Len(t, aps, 6)

	// 2028 is a leap year: Jan 31 clamps to Feb 29, then back to the 31st.
	assert.Equal(t, mustParseUTC(t, "2028-01-31 09:00"), aps[0].AppointmentDateTime.UTC())
	assert.Equal(t, mustParseUTC(t, "2028-02-29 09:00"), aps[1].AppointmentDateTime.UTC())
	assert.Equal(t, mustParseUTC(t, "2028-03-31 09:00"), aps[2].AppointmentDateTime.UTC())
	assert.Equal(t, mustParseUTC(t, "2028-04-30 09:00"), aps[3].AppointmentDateTime.UTC())
}

func TestScheduleOrderPropagatesLinesToEveryAppointment(t *testing.T) {
	repo, db := newTestRepo(t)

	order, _, _ := scheduleTestOrder(t, db, repo, "biweekly")

	var aps []models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&aps).Error)
	require.Len(t, aps, 12)

	for _, ap := range aps {
		var itemCount, extraCount int64
		db.Model(&models.AppointmentItem{}).Where("appointment_id = ?", ap.ID).Count(&itemCount)
		db.Model(&models.AppointmentExtra{}).Where("appointment_id = ?", ap.ID).Count(&extraCount)
		assert.EqualValues(t, 2, itemCount)
		assert.EqualValues(t, 1, extraCount)
	}
}

func TestScheduleOrderEachAppointmentOwnsItsLocation(t *testing.T) {
	repo, db := newTestRepo(t)

	order, _, _ := scheduleTestOrder(t, db, repo, "weekly")

	var aps []models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&aps).Error)

	seen := map[uint]bool{order.ServiceLocationID: true}
	for _, ap := range aps {
		assert.False(t, seen[ap.ServiceLocationID], "location row shared between bookings")
		seen[ap.ServiceLocationID] = true
	}
}

func TestScheduleOrderFirstSaleCarriesAuthorizationHold(t *testing.T) {
	repo, db := newTestRepo(t)

	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	require.Len(t, gw.authorized, 1)
	assert.Equal(t, order.TotalAmount, gw.authorized[0])

	var aps []models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&aps).Error)

	var firstSale models.Sale
	require.NoError(t, db.Where("appointment_id = ?", aps[0].ID).First(&firstSale).Error)
	assert.Equal(t, order.TotalAmount, firstSale.Paid)

	var hold models.PaymentSale
	require.NoError(t, db.Where("sale_id = ?", firstSale.ID).First(&hold).Error)
	assert.True(t, hold.IsFirst)
	assert.False(t, hold.IsCaptured)
	assert.Equal(t, "auth-1", hold.Capture)

	// Every later occurrence starts unpaid.
	for _, ap := range aps[1:] {
		var sale models.Sale
		require.NoError(t, db.Where("appointment_id = ?", ap.ID).First(&sale).Error)
		assert.Zero(t, sale.Paid)
		assert.Equal(t, "pending", sale.Status)
	}
}

func TestScheduleOrderCreatesOneScheduleEach(t *testing.T) {
	repo, db := newTestRepo(t)

	order, _, _ := scheduleTestOrder(t, db, repo, "weekly")

	var aps []models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&aps).Error)

	for _, ap := range aps {
		var sched models.Schedule
		require.NoError(t, db.Where("appointment_id = ?", ap.ID).First(&sched).Error)
		assert.Equal(t, 1, sched.Count)
		assert.Equal(t, ap.AppointmentDateTime.UTC(), sched.StartTime.UTC())
		// end = start + total hours (5h for the seeded order)
		assert.Equal(t, 5*time.Hour, sched.EndTime.Sub(sched.StartTime))
		require.NotNil(t, sched.UserID)
		assert.Equal(t, *order.UserID, *sched.UserID)
	}
}

func TestScheduleOrderAuthorizationFailureRollsBack(t *testing.T) {
	repo, db := newTestRepo(t)

	order := placeTestOrder(t, db, repo, "weekly")

	uc := NewScheduleOrder(
		repo, &fakeGateway{failAuthorize: true}, &fakeLocker{}, &fakeNotifier{},
		newTestAudit(db), domain.DefaultHorizons(), "UTC",
	)
	_, err := uc.Execute(context.Background(), order.ID, "tok_visa")
	assert.True(t, httperr.IsBusiness(err, "payment_authorization_failed"))

	var apCount, saleCount, schedCount, pcCount int64
	db.Model(&models.Appointment{}).Where("order_id = ?", order.ID).Count(&apCount)
	db.Model(&models.Sale{}).Count(&saleCount)
	db.Model(&models.Schedule{}).Count(&schedCount)
	db.Model(&models.PaymentCustomer{}).Count(&pcCount)
	assert.Zero(t, apCount)
	assert.Zero(t, saleCount)
	assert.Zero(t, schedCount)
	assert.Zero(t, pcCount)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, string(domain.OrderUnscheduled), reloaded.Status)
}

func TestScheduleOrderIsOneShot(t *testing.T) {
	repo, db := newTestRepo(t)

	order, _, _ := scheduleTestOrder(t, db, repo, "weekly")

	uc := NewScheduleOrder(
		repo, &fakeGateway{}, &fakeLocker{}, &fakeNotifier{}, newTestAudit(db),
		domain.DefaultHorizons(), "UTC",
	)
	_, err := uc.Execute(context.Background(), order.ID, "tok_visa")
	assert.True(t, httperr.IsBusiness(err, "order_already_scheduled"))

	var count int64
	db.Model(&models.Appointment{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 24, count)
}

func TestScheduleOrderNotifiesOnce(t *testing.T) {
	repo, db := newTestRepo(t)

	_, _, notifier := scheduleTestOrder(t, db, repo, "weekly")

	confirmations := notifier.titled("New Booking Confirmation")
	require.Len(t, confirmations, 1)
	assert.Equal(t, "dana@example.com", confirmations[0].Email)
}

// Positive-offset zone: midnight of the start date stored by the driver in
// UTC formats as the previous calendar day unless normalized first.
func TestScheduleOrderAnchorsInCompanyTimezone(t *testing.T) {
	repo, db := newTestRepo(t)
	svc, items, _ := seedCatalog(t, db)

	const tz = "Australia/Sydney"
	place := NewPlaceOrder(repo, newTestAudit(db), tz)
	order, err := place.Execute(context.Background(), PlaceOrderInput{
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Phone:     "555-0100",

		StreetAddress: "12 Main St",
		City:          "Sydney",
		State:         "NSW",
		ZipCode:       "2000",

		ServiceID:      svc.ID,
		RecurrenceType: "once",
		StartDate:      "2026-09-07",
		StartTime:      "10:00",

		Items: []OrderLine{{ID: items[0].ID, Quantity: 1}},
	})
	require.NoError(t, err)

	uc := NewScheduleOrder(
		repo, &fakeGateway{}, &fakeLocker{}, &fakeNotifier{}, newTestAudit(db),
		domain.DefaultHorizons(), tz,
	)
	_, err = uc.Execute(context.Background(), order.ID, "tok_visa")
	require.NoError(t, err)

	var ap models.Appointment
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&ap).Error)

	local := ap.AppointmentDateTime.In(timezone.Location(tz))
	assert.Equal(t, "2026-09-07 10:00", local.Format("2006-01-02 15:04"))
}
