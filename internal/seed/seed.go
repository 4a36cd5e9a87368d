package seed

import (
	"context"
	"fmt"

	"budgetthreads/internal/domain"
)

const (
	imgQuotes = "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=1160&q=80"
	imgLine   = "https://images.unsplash.com/photo-1520975857821-6b6c1c1d8b30?auto=format&fit=crop&w=1160&q=80"
	imgRetro  = "https://images.unsplash.com/photo-1523381210434-271e8be1f52b?auto=format&fit=crop&w=1160&q=80"
)

// DemoProducts is the starter catalog shown when nothing else is stored.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			Title:       "Classic Quotes Tee",
			Description: "Premium cotton t-shirt with inspirational quote print",
			Price:       1699,
			Image:       imgQuotes,
			Images:      []string{imgQuotes, imgLine},
			Badge:       "Bestseller",
			Sizes:       []string{"S", "M", "L", "XL"},
			Color:       "White",
		},
		{
			ID:          "p2",
			Title:       "Minimal Line Art",
			Description: "Elegant design with minimalist artistic elements",
			Price:       1549,
			Image:       imgLine,
			Images:      []string{imgLine, imgRetro},
			Sizes:       []string{"M", "L"},
			Color:       "Black",
		},
		{
			ID:          "p3",
			Title:       "Retro Wave",
			Description: "Vintage inspired design with retro color palette",
			Price:       1579,
			Image:       imgRetro,
			Images:      []string{imgRetro, imgQuotes},
			Badge:       "New",
			Sizes:       []string{"S", "XL"},
			Color:       "White",
		},
	}
}

type productUpserter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// Apply upserts the demo catalog. It is idempotent.
func Apply(ctx context.Context, products productUpserter) error {
	for _, p := range DemoProducts() {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return nil
}
