package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/service/pricing"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV files and inserts/updates products.
//
// Expected header: id,title,description,price,image,badge,sizes,color.
// A row with an empty id and a non-empty image adds another image to the
// product above it. Sizes are separated by ';' or '|'.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	ID     string
	Title  string
	Desc   string
	Price  string
	Images []string
	Badge  string
	Sizes  []string
	Color  string
}

// Run parses CSV rows and upserts one product per id.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, errors.New("read headers: missing id column")
	}

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.Images) > 0 {
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Title == "" || row.Price == "" {
		return fmt.Errorf("invalid product row (missing required fields) for id %q", row.ID)
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil || price.IsNegative() || price.GreaterThan(decimal.NewFromInt(pricing.MaxUnitPrice)) {
		return fmt.Errorf("invalid price for id %q: %s", row.ID, row.Price)
	}

	p := domain.Product{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Desc,
		Price:       price.Round(0).IntPart(),
		Images:      row.Images,
		Badge:       row.Badge,
		Sizes:       row.Sizes,
		Color:       row.Color,
	}
	if len(row.Images) > 0 {
		p.Image = row.Images[0]
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.ID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	id := pick(record, index, "id")
	image := pick(record, index, "image")
	if id == "" && image == "" {
		return nil
	}

	row := &csvRow{
		ID:    id,
		Title: pick(record, index, "title"),
		Desc:  pick(record, index, "description"),
		Price: pick(record, index, "price"),
		Badge: pick(record, index, "badge"),
		Sizes: splitList(pick(record, index, "sizes")),
		Color: pick(record, index, "color"),
	}
	if image != "" {
		row.Images = []string{image}
	}
	return row
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
