package cart

import (
	"encoding/json"
	"strings"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/service/pricing"
	"github.com/shopspring/decimal"
)

const defaultTitle = "Item"

// Draft is the loosely typed add-to-cart payload. Price and Qty accept
// numbers or numeric strings; anything else falls back to the defaults.
type Draft struct {
	Title     string              `json:"title"`
	Price     interface{}         `json:"price"`
	Image     *string             `json:"image"`
	DesignID  *string             `json:"designId"`
	ProductID *string             `json:"productId"`
	Qty       interface{}         `json:"qty"`
	Meta      *domain.PricingMeta `json:"meta"`
}

// normalize turns a draft into a line item without id or timestamp.
func (d Draft) normalize() domain.LineItem {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = defaultTitle
	}

	price := clampDecimal(toDecimal(d.Price).Round(0), 0, pricing.MaxUnitPrice)
	qty := clampDecimal(toDecimal(d.Qty).Truncate(0), 1, int64(pricing.MaxQty))

	item := domain.LineItem{
		Title:     title,
		Price:     price,
		Image:     optional(d.Image),
		DesignID:  optional(d.DesignID),
		ProductID: optional(d.ProductID),
		Qty:       int(qty),
	}
	if d.Meta != nil {
		meta := *d.Meta
		if meta.IsCustom() {
			meta.Base = pricing.Base
			meta.FrontSurcharge, meta.BackSurcharge = 0, 0
			if meta.HasFront {
				meta.FrontSurcharge = pricing.FrontSurcharge
			}
			if meta.HasBack {
				meta.BackSurcharge = pricing.BackSurcharge
			}
		}
		item.Meta = &meta
	}
	return item
}

// clampDecimal bounds d before converting, since IntPart wraps past int64.
func clampDecimal(d decimal.Decimal, lo, hi int64) int64 {
	if d.LessThan(decimal.NewFromInt(lo)) {
		return lo
	}
	if d.GreaterThan(decimal.NewFromInt(hi)) {
		return hi
	}
	return d.IntPart()
}

func toDecimal(v interface{}) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case json.Number:
		return parseDecimal(x.String())
	case string:
		return parseDecimal(x)
	default:
		return decimal.Zero
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
