package payment

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/customer"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"

	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
)

// MercadoPagoGateway implements the payment port on the Mercado Pago SDK.
// Authorize creates an uncaptured payment (a hold) plus a gateway-side
// customer; Capture settles the hold; Charge bills the stored customer.
type MercadoPagoGateway struct {
	payments  mppayment.Client
	customers customer.Client
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoGateway{
		payments:  mppayment.NewClient(cfg),
		customers: customer.NewClient(cfg),
	}, nil
}

var _ domain.PaymentGateway = (*MercadoPagoGateway)(nil)

func (g *MercadoPagoGateway) Authorize(
	ctx context.Context,
	cardToken string,
	amount float64,
	email string,
) (string, string, error) {

	cust, err := g.customers.Create(ctx, customer.Request{Email: email})
	if err != nil {
		return "", "", err
	}

	resp, err := g.payments.Create(ctx, mppayment.Request{
		TransactionAmount: amount,
		Token:             cardToken,
		Installments:      1,
		Description:       "Cleaning booking",
		Payer: &mppayment.PayerRequest{
			Email: email,
		},
		Capture:  false,
		Metadata: map[string]any{"idempotency_key": uuid.NewString()},
	})
	if err != nil {
		return "", "", err
	}
	if resp.Status == "rejected" {
		return "", "", errors.New("payment rejected: " + resp.StatusDetail)
	}

	return strconv.Itoa(resp.ID), cust.ID, nil
}

func (g *MercadoPagoGateway) Capture(ctx context.Context, authRef string) error {
	id, err := strconv.Atoi(authRef)
	if err != nil {
		return err
	}

	resp, err := g.payments.Capture(ctx, id)
	if err != nil {
		return err
	}
	if resp.Status == "rejected" {
		return errors.New("capture rejected: " + resp.StatusDetail)
	}
	return nil
}

func (g *MercadoPagoGateway) Charge(
	ctx context.Context,
	customerRef string,
	amount float64,
) (string, error) {

	resp, err := g.payments.Create(ctx, mppayment.Request{
		TransactionAmount: amount,
		Installments:      1,
		Description:       "Cleaning booking charge",
		Payer: &mppayment.PayerRequest{
			Type: "customer",
			ID:   customerRef,
		},
		Metadata: map[string]any{"idempotency_key": uuid.NewString()},
	})
	if err != nil {
		return "", err
	}
	if resp.Status == "rejected" {
		return "", errors.New("charge rejected: " + resp.StatusDetail)
	}

	return strconv.Itoa(resp.ID), nil
}
