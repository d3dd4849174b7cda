package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

func TestPlaceOrderComputesTotals(t *testing.T) {
	repo, db := newTestRepo(t)

	order := placeTestOrder(t, db, repo, "weekly")

	// 100 + (40 - 25%) + 2*25 = 180, plus 13% tax.
	assert.InDelta(t, 203.40, order.TotalAmount, 1e-9)
	// 3 + 1 item hours, extra hours scale with quantity: 2 * 0.5.
	assert.Equal(t, 5.0, order.TotalHours)
	assert.Equal(t, string(domain.OrderUnscheduled), order.Status)
}

func TestPlaceOrderSnapshotsDiscountedPrices(t *testing.T) {
	repo, db := newTestRepo(t)

	order := placeTestOrder(t, db, repo, "weekly")

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 100.0, items[0].Price)
	assert.Equal(t, 30.0, items[1].Price)

	// Extra snapshots carry the line total, 2 * 25.
	var extras []models.OrderExtra
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&extras).Error)
	require.Len(t, extras, 1)
	assert.Equal(t, 50.0, extras[0].Price)
	assert.Equal(t, uint(2), extras[0].Quantity)
}

func TestPlaceOrderSnapshotSurvivesCatalogEdit(t *testing.T) {
	repo, db := newTestRepo(t)

	order := placeTestOrder(t, db, repo, "once")

	// Repricing the catalog later must not touch the captured snapshot.
	require.NoError(t, db.Model(&models.Item{}).
		Where("title = ?", "Deep Clean").
		Update("price", 999).Error)

	var snap models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").First(&snap).Error)
	assert.Equal(t, 100.0, snap.Price)
}

func TestPlaceOrderAutoProvisionsCustomer(t *testing.T) {
	repo, db := newTestRepo(t)

	order := placeTestOrder(t, db, repo, "weekly")
	require.NotNil(t, order.UserID)

	var user models.User
	require.NoError(t, db.First(&user, *order.UserID).Error)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, "customer", user.Role)
	assert.False(t, user.AccessDashboard)
}

func TestPlaceOrderReusesExistingCustomer(t *testing.T) {
	repo, db := newTestRepo(t)

	existing := models.User{Email: "dana@example.com", FirstName: "Dana", Role: "customer"}
	require.NoError(t, db.Create(&existing).Error)

	order := placeTestOrder(t, db, repo, "weekly")

	require.NotNil(t, order.UserID)
	assert.Equal(t, existing.ID, *order.UserID)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "dana@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderRejectsUnknownRecurrence(t *testing.T) {
	repo, db := newTestRepo(t)
	svc, items, _ := seedCatalog(t, db)

	uc := NewPlaceOrder(repo, newTestAudit(db), "UTC")
	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		FirstName: "Dana", LastName: "Reyes",
		Email: "dana@example.com", Phone: "555-0100",
		StreetAddress: "12 Main St", City: "Toronto", State: "ON", ZipCode: "M5V 1A1",

		ServiceID:      svc.ID,
		RecurrenceType: "yearly",
		StartDate:      "2026-09-07",
		StartTime:      "10:00",
		Items:          []OrderLine{{ID: items[0].ID, Quantity: 1}},
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_recurrence_type"))
}

func TestPlaceOrderRejectsUnknownItem(t *testing.T) {
	repo, db := newTestRepo(t)
	svc, _, _ := seedCatalog(t, db)

	uc := NewPlaceOrder(repo, newTestAudit(db), "UTC")
	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		FirstName: "Dana", LastName: "Reyes",
		Email: "dana@example.com", Phone: "555-0100",
		StreetAddress: "12 Main St", City: "Toronto", State: "ON", ZipCode: "M5V 1A1",

		ServiceID:      svc.ID,
		RecurrenceType: "weekly",
		StartDate:      "2026-09-07",
		StartTime:      "10:00",
		Items:          []OrderLine{{ID: 9999, Quantity: 1}},
	})

	assert.True(t, httperr.IsBusiness(err, "item_not_found"))
}
