// Package cart implements the line-item transforms behind the storefront
// cart. Every operation is a pure function over the previous item list:
// callers get a fresh slice back and the input is never mutated, so a
// snapshot can be shared freely across the request path.
package cart

import (
	"fmt"

	"github.com/justocafe/storefront-api/internal/catalog"
)

// LineItem is one cart entry: a product/variant combination and its quantity.
// Key is the identity under which add operations coalesce.
type LineItem struct {
	Key           string `json:"key"`
	ProductID     string `json:"product_id"`
	VariantID     string `json:"variant_id,omitempty"`
	Name          string `json:"name"`
	UnitPrice     int64  `json:"unit_price"`
	Weight        string `json:"weight"`
	MerchandiseID string `json:"merchandise_id,omitempty"`
	Quantity      int    `json:"quantity"`
}

// ResolvedLine carries the effective price, weight and merchandise reference
// for a (product, variant) pair, falling back to the product's base fields
// when no variant is selected.
type ResolvedLine struct {
	Price         int64
	Weight        string
	MerchandiseID string
}

// LineKey derives the identity key for a (product, variant) pair. Two
// variants of the same product always land on distinct keys.
func LineKey(productID string, variant *catalog.Variant) string {
	if variant != nil {
		return fmt.Sprintf("%s-%s", productID, variant.ID)
	}
	return productID
}

// ResolveLine picks the effective fields for a line item.
func ResolveLine(product catalog.Product, variant *catalog.Variant) ResolvedLine {
	if variant != nil {
		return ResolvedLine{
			Price:         variant.Price,
			Weight:        variant.Weight,
			MerchandiseID: variant.MerchandiseID,
		}
	}
	return ResolvedLine{
		Price:         product.Price,
		Weight:        product.Weight,
		MerchandiseID: product.MerchandiseID,
	}
}

// Add returns the item list with the (product, variant) pair added. An
// existing line with the same key gets its quantity incremented by one and
// keeps every other field; otherwise a new line is appended with quantity 1.
func Add(items []LineItem, product catalog.Product, variant *catalog.Variant) []LineItem {
	key := LineKey(product.ID, variant)

	for i, item := range items {
		if item.Key != key {
			continue
		}
		out := make([]LineItem, len(items))
		copy(out, items)
		out[i].Quantity = item.Quantity + 1
		return out
	}

	resolved := ResolveLine(product, variant)
	line := LineItem{
		Key:           key,
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     resolved.Price,
		Weight:        resolved.Weight,
		MerchandiseID: resolved.MerchandiseID,
		Quantity:      1,
	}
	if variant != nil {
		line.VariantID = variant.ID
	}

	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, line)
}

// Remove returns the item list without the line matching key. Missing keys
// are a no-op, not an error.
func Remove(items []LineItem, key string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Key == key {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SetQuantity replaces the quantity of the line matching key. Quantities
// below one remove the line entirely. Missing keys are a no-op.
func SetQuantity(items []LineItem, key string, quantity int) []LineItem {
	if quantity < 1 {
		return Remove(items, key)
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	for i, item := range out {
		if item.Key == key {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// Count sums the quantities over all lines. Count is zero exactly when the
// cart is empty.
func Count(items []LineItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
