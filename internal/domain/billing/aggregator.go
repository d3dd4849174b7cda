package billing

import "github.com/cleanora-services/cleany-scheduler/internal/models"

// ItemLine pairs a catalog item with the quantity requested on the order.
type ItemLine struct {
	Item     models.Item
	Quantity uint
}

// ExtraLine pairs an extra with its quantity.
type ExtraLine struct {
	Extra    models.Extra
	Quantity uint
}

// Bill is the priced view of an order before it becomes appointments.
type Bill struct {
	TotalHours float64
	Subtotal   float64
	TaxAmount  float64
	Total      float64
}

// DiscountedPrice applies the item's percentage discount to its list price.
func DiscountedPrice(it models.Item) float64 {
	return it.Price - it.Price*float64(it.DiscountPercent)/100
}

// Compute aggregates the order lines into hours and money. Item hours do
// not scale with quantity while extra hours do; item prices carry their
// own discount. Tax is a flat percentage on the subtotal.
func Compute(items []ItemLine, extras []ExtraLine, taxRate uint) Bill {
	var b Bill
	for _, line := range items {
		b.Subtotal += DiscountedPrice(line.Item)
		b.TotalHours += line.Item.TimeHrs
	}
	for _, line := range extras {
		qty := float64(line.Quantity)
		b.Subtotal += line.Extra.Price * qty
		b.TotalHours += line.Extra.TimeHrs * qty
	}
	b.TaxAmount = b.Subtotal * float64(taxRate) / 100
	b.Total = b.Subtotal + b.TaxAmount
	return b
}
