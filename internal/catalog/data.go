package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed products.json
var productsFS embed.FS

// Load parses the embedded product configuration and validates it.
func Load() ([]Product, error) {
	raw, err := productsFS.ReadFile("products.json")
	if err != nil {
		return nil, fmt.Errorf("reading product data: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parsing product data: %w", err)
	}

	seen := map[string]struct{}{}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Price <= 0 {
			return nil, fmt.Errorf("product %q has non-positive price", p.ID)
		}

		variantSeen := map[string]struct{}{}
		for _, v := range p.Variants {
			if v.ID == "" {
				return nil, fmt.Errorf("product %q has a variant with no id", p.ID)
			}
			if _, dup := variantSeen[v.ID]; dup {
				return nil, fmt.Errorf("product %q has duplicate variant id %q", p.ID, v.ID)
			}
			variantSeen[v.ID] = struct{}{}
			if v.Price <= 0 {
				return nil, fmt.Errorf("variant %q of product %q has non-positive price", v.ID, p.ID)
			}
		}
	}

	return products, nil
}
