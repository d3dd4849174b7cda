package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

func TestComputeItemsOnly(t *testing.T) {
	items := []ItemLine{
		{Item: models.Item{Title: "Deep Clean", Price: 100, TimeHrs: 3}, Quantity: 1},
		{Item: models.Item{Title: "Windows", Price: 40, TimeHrs: 1, DiscountPercent: 25}, Quantity: 2},
	}

	b := Compute(items, nil, 0)

	// The windows line is discounted to 30 and its hours ignore quantity.
	assert.Equal(t, 130.0, b.Subtotal)
	assert.Equal(t, 4.0, b.TotalHours)
	assert.Equal(t, 0.0, b.TaxAmount)
	assert.Equal(t, 130.0, b.Total)
}

func TestComputeExtrasScaleWithQuantity(t *testing.T) {
	extras := []ExtraLine{
		{Extra: models.Extra{Title: "Fridge", Price: 25, TimeHrs: 0.5}, Quantity: 2},
	}

	b := Compute(nil, extras, 0)

	assert.Equal(t, 50.0, b.Subtotal)
	assert.Equal(t, 1.0, b.TotalHours)
}

func TestComputeAppliesTaxOnSubtotal(t *testing.T) {
	items := []ItemLine{
		{Item: models.Item{Price: 200, TimeHrs: 4}, Quantity: 1},
	}

	b := Compute(items, nil, 13)

	assert.Equal(t, 200.0, b.Subtotal)
	assert.InDelta(t, 26.0, b.TaxAmount, 1e-9)
	assert.InDelta(t, 226.0, b.Total, 1e-9)
}

func TestComputeEmptyOrder(t *testing.T) {
	b := Compute(nil, nil, 13)

	assert.Zero(t, b.Subtotal)
	assert.Zero(t, b.TotalHours)
	assert.Zero(t, b.TaxAmount)
	assert.Zero(t, b.Total)
}

func TestDiscountedPrice(t *testing.T) {
	assert.Equal(t, 90.0, DiscountedPrice(models.Item{Price: 100, DiscountPercent: 10}))
	assert.Equal(t, 100.0, DiscountedPrice(models.Item{Price: 100}))
}
