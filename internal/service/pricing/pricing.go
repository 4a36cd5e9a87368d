// Package pricing computes line item and cart amounts in whole rupees.
package pricing

import (
	"math"

	"budgetthreads/internal/domain"
)

const (
	Base           int64 = 399
	FrontSurcharge int64 = 99
	BackSurcharge  int64 = 119
	Shipment       int64 = 59

	// MinimumPayable is the smallest amount the payment provider accepts.
	MinimumPayable int64 = 1

	// MaxUnitPrice and MaxQty bound a single line item.
	MaxUnitPrice int64 = 10_000_000
	MaxQty       int   = 1000
)

// UnitCost is the price of one unit of item. Custom prints are composed from
// the current surcharge constants and ignore the stored price.
func UnitCost(item domain.LineItem) int64 {
	if item.Meta.IsCustom() {
		cost := Base
		if item.Meta.HasFront {
			cost += FrontSurcharge
		}
		if item.Meta.HasBack {
			cost += BackSurcharge
		}
		return cost
	}
	switch {
	case item.Price < 0:
		return 0
	case item.Price > MaxUnitPrice:
		return MaxUnitPrice
	}
	return item.Price
}

// ShipmentFor returns the shipment charge for a cart: once if non-empty.
func ShipmentFor(items []domain.LineItem) int64 {
	if len(items) == 0 {
		return 0
	}
	return Shipment
}

// CartTotal is the display total including shipment. Quantities are clamped
// to 1..MaxQty and the sum saturates at math.MaxInt64.
func CartTotal(items []domain.LineItem) int64 {
	var total int64
	for _, it := range items {
		total = addSat(total, mulSat(UnitCost(it), int64(ClampQty(it.Qty))))
	}
	return addSat(total, ShipmentFor(items))
}

// ClampQty bounds a quantity to 1..MaxQty.
func ClampQty(qty int) int {
	switch {
	case qty < 1:
		return 1
	case qty > MaxQty:
		return MaxQty
	}
	return qty
}

// PayableTotal is CartTotal floored at the provider minimum.
func PayableTotal(items []domain.LineItem) int64 {
	if total := CartTotal(items); total > MinimumPayable {
		return total
	}
	return MinimumPayable
}

// ToPaise converts whole rupees to the provider's minor unit.
func ToPaise(amountINR int64) int64 {
	return mulSat(amountINR, 100)
}

// addSat and mulSat operate on non-negative operands.
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulSat(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
