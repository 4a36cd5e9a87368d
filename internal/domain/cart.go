package domain

import "time"

// LineItem is one entry of a session cart. Amounts are whole rupees.
type LineItem struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Price     int64        `json:"price"`
	Image     *string      `json:"image"`
	DesignID  *string      `json:"designId"`
	ProductID *string      `json:"productId"`
	Qty       int          `json:"qty"`
	Meta      *PricingMeta `json:"meta"`
	AddedAt   time.Time    `json:"addedAt"`
}

// PricingMeta flags a custom print. The surcharge amounts are informational
// snapshots; pricing always uses the current constants.
type PricingMeta struct {
	HasFront       bool  `json:"hasFront"`
	HasBack        bool  `json:"hasBack"`
	Base           int64 `json:"base,omitempty"`
	FrontSurcharge int64 `json:"frontSurcharge,omitempty"`
	BackSurcharge  int64 `json:"backSurcharge,omitempty"`
}

// IsCustom reports whether the metadata asks for composed custom pricing.
func (m *PricingMeta) IsCustom() bool {
	return m != nil && (m.HasFront || m.HasBack)
}

// CloneItems deep-copies a cart so snapshots never share pointers with the
// live cart.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Image = cloneString(it.Image)
		out[i].DesignID = cloneString(it.DesignID)
		out[i].ProductID = cloneString(it.ProductID)
		if it.Meta != nil {
			m := *it.Meta
			out[i].Meta = &m
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
