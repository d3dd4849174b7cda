package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

func TestChargeFirstAppointmentCapturesHold(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))

	sale, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[0].ID,
		Mode:          ChargeModeCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", sale.Status)
	assert.Equal(t, sale.Amount, sale.Paid)

	require.Len(t, gw.captured, 1)
	assert.Equal(t, "auth-1", gw.captured[0])

	var hold models.PaymentSale
	require.NoError(t, db.Where("sale_id = ? AND is_first = ?", sale.ID, true).First(&hold).Error)
	assert.True(t, hold.IsCaptured)
}

func TestChargeCashAccumulatesUntilCompleted(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))

	half := order.TotalAmount / 2

	sale, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCash,
		Amount:        half,
	})
	require.NoError(t, err)
	assert.Equal(t, "partial", sale.Status)
	assert.Equal(t, half, sale.Paid)

	sale, err = uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCash,
		Amount:        half,
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", sale.Status)
	assert.Equal(t, sale.Amount, sale.Paid)

	var payments int64
	db.Model(&models.PaymentSale{}).Where("sale_id = ? AND mode = ?", sale.ID, "cash").Count(&payments)
	assert.EqualValues(t, 2, payments)
}

func TestChargeCardBillsStoredCustomer(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))

	sale, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCard,
		Amount:        order.TotalAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", sale.Status)

	require.Len(t, gw.charged, 1)
	assert.Equal(t, order.TotalAmount, gw.charged[0])
}

func TestChargeOverSaleAmountRejected(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))

	_, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCash,
		Amount:        order.TotalAmount + 1,
	})
	assert.True(t, httperr.IsBusiness(err, "amount_exceeds_sale"))
}

func TestChargeOverRemainingBalanceRejected(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))

	most := order.TotalAmount * 0.75

	_, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCash,
		Amount:        most,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCash,
		Amount:        most,
	})
	assert.True(t, httperr.IsBusiness(err, "amount_exceeds_balance"))
}

func TestChargeCancelledAppointmentConflicts(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	require.NoError(t, db.Model(&models.Appointment{}).
		Where("id = ?", aps[1].ID).
		Updates(map[string]any{"status": "cancelled", "is_cancelled": true}).Error)

	uc := NewChargeSale(repo, gw, newTestAudit(db))
	_, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[1].ID,
		Mode:          ChargeModeCash,
		Amount:        10,
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_cancelled"))
}

func TestChargeCompletedSaleConflicts(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))

	_, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[0].ID,
		Mode:          ChargeModeCard,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[0].ID,
		Mode:          ChargeModeCard,
		Amount:        10,
	})
	assert.True(t, httperr.IsBusiness(err, "sale_already_completed"))
}

func TestChargeCaptureFailureIsPaymentError(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	gw.failCapture = true
	uc := NewChargeSale(repo, gw, newTestAudit(db))

	_, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[0].ID,
		Mode:          ChargeModeCard,
	})
	assert.True(t, httperr.IsBusiness(err, "capture_failed"))

	// The hold is still open and the sale untouched.
	var sale models.Sale
	require.NoError(t, db.Where("appointment_id = ?", aps[0].ID).First(&sale).Error)
	assert.Equal(t, "pending", sale.Status)

	var hold models.PaymentSale
	require.NoError(t, db.Where("sale_id = ? AND is_first = ?", sale.ID, true).First(&hold).Error)
	assert.False(t, hold.IsCaptured)
}

func TestChargeInvalidModeRejected(t *testing.T) {
	repo, db := newTestRepo(t)
	order, gw, _ := scheduleTestOrder(t, db, repo, "weekly")
	aps := orderedAppointments(t, db, order.ID)

	uc := NewChargeSale(repo, gw, newTestAudit(db))
	_, err := uc.Execute(context.Background(), ChargeInput{
		AppointmentID: aps[0].ID,
		Mode:          "cheque",
		Amount:        10,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_charge_mode"))
}
