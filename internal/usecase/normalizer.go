package usecase

import "github.com/matchboard/backend/internal/domain"

// UnknownProduct names a row that has no cells at all
const UnknownProduct = "Невідомий товар"

// Column headers checked, in order, when looking for the product name and code
var (
	productNameKeys = []string{"name", "product", "title", "Наименование"}
	productCodeKeys = []string{"code", "код", "sku", "article"}
)

// NormalizeProduct maps a spreadsheet row with arbitrary headers onto
// {product, code}. The name falls back to the first column, then to
// UnknownProduct; the code has no fallback.
func NormalizeProduct(record domain.Record) domain.NormalizedProduct {
	name, ok := firstAvailable(record, productNameKeys)
	if !ok {
		if first, hasCells := record.First(); hasCells {
			name = first
		} else {
			name = UnknownProduct
		}
	}

	code, _ := firstAvailable(record, productCodeKeys)

	return domain.NormalizedProduct{
		Product: name,
		Code:    code,
	}
}

// NormalizeProducts normalizes every record, preserving order
func NormalizeProducts(records []domain.Record) []domain.NormalizedProduct {
	products := make([]domain.NormalizedProduct, 0, len(records))
	for _, record := range records {
		products = append(products, NormalizeProduct(record))
	}
	return products
}

// firstAvailable returns the first non-empty cell among keys
func firstAvailable(record domain.Record, keys []string) (string, bool) {
	for _, key := range keys {
		if value, ok := record.Get(key); ok && value != "" {
			return value, true
		}
	}
	return "", false
}
