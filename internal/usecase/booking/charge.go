package booking

import (
	"context"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

const (
	ChargeModeCash = "cash"
	ChargeModeCard = "card"
)

type ChargeInput struct {
	AppointmentID uint
	Mode          string
	Amount        float64
}

// ChargeSale settles money against an appointment's sale. The first charge
// of an order captures the authorization hold placed at scheduling time;
// later charges collect cash or bill the stored gateway customer.
type ChargeSale struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
}

func NewChargeSale(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
) *ChargeSale {
	return &ChargeSale{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *ChargeSale) Execute(
	ctx context.Context,
	in ChargeInput,
) (*models.Sale, error) {

	if in.Mode != ChargeModeCash && in.Mode != ChargeModeCard {
		return nil, httperr.ErrValidation("invalid_charge_mode")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrValidation("appointment_not_found")
	}
	if ap.IsCancelled {
		return nil, httperr.ErrConflict("appointment_cancelled")
	}

	sale, err := uc.repo.GetSaleByAppointment(ctx, ap.ID)
	if err != nil {
		return nil, httperr.ErrValidation("sale_not_found")
	}
	if sale.Status == "completed" {
		return nil, httperr.ErrConflict("sale_already_completed")
	}

	// First charge of the series settles the authorization hold.
	if ps, err := uc.repo.GetFirstPaymentSale(ctx, sale.ID); err == nil && !ps.IsCaptured {
		return uc.captureHold(ctx, sale, ps)
	}

	if in.Amount <= 0 {
		return nil, httperr.ErrValidation("invalid_amount")
	}
	if in.Amount > sale.Amount {
		return nil, httperr.ErrValidation("amount_exceeds_sale")
	}
	if sale.Paid+in.Amount > sale.Amount {
		return nil, httperr.ErrValidation("amount_exceeds_balance")
	}

	var chargeRef string
	if in.Mode == ChargeModeCard {
		pc, err := uc.repo.GetPaymentCustomerByOrder(ctx, ap.OrderID)
		if err != nil {
			return nil, httperr.ErrValidation("no_payment_method_on_file")
		}
		chargeRef, err = uc.gateway.Charge(ctx, pc.CustomerRef, in.Amount)
		if err != nil {
			return nil, httperr.ErrPayment("charge_failed")
		}
	}

	err = uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		ps := models.PaymentSale{
			SaleID:     sale.ID,
			Mode:       in.Mode,
			Capture:    chargeRef,
			IsCaptured: true,
			Amount:     in.Amount,
		}
		if err := r.CreatePaymentSale(ctx, &ps); err != nil {
			return err
		}

		sale.Paid += in.Amount
		sale.Status = "partial"
		if sale.Paid >= sale.Amount {
			sale.Status = "completed"
		}
		return r.UpdateSale(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "sale_charged",
		Entity:   "sale",
		EntityID: &sale.ID,
		Metadata: map[string]any{"mode": in.Mode, "amount": in.Amount},
	})

	return sale, nil
}

func (uc *ChargeSale) captureHold(
	ctx context.Context,
	sale *models.Sale,
	ps *models.PaymentSale,
) (*models.Sale, error) {

	if err := uc.gateway.Capture(ctx, ps.Capture); err != nil {
		return nil, httperr.ErrPayment("capture_failed")
	}

	err := uc.repo.WithinTx(ctx, func(r domain.Repository) error {
		ps.IsCaptured = true
		if err := r.UpdatePaymentSale(ctx, ps); err != nil {
			return err
		}

		sale.Paid = sale.Amount
		sale.Status = "completed"
		return r.UpdateSale(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "sale_captured",
		Entity:   "sale",
		EntityID: &sale.ID,
	})

	return sale, nil
}
