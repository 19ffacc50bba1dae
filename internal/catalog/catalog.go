// Package catalog holds the storefront's immutable product data. Products
// are loaded once from embedded configuration and never mutated at runtime.
package catalog

// Variant is a purchasable size/weight option of a product. MerchandiseID is
// the opaque reference the external checkout platform resolves; it is empty
// for variants not yet wired to the platform.
type Variant struct {
	ID            string `json:"id"`
	Weight        string `json:"weight"`
	Price         int64  `json:"price"`
	MerchandiseID string `json:"merchandise_id,omitempty"`
}

// Feature is a marketing highlight rendered on product cards.
type Feature struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// ScaAttributes is the SCA cupping breakdown for a coffee.
type ScaAttributes struct {
	Fragrance  float64 `json:"fragrance"`
	Flavor     float64 `json:"flavor"`
	Aftertaste float64 `json:"aftertaste"`
	Acidity    float64 `json:"acidity"`
	Body       float64 `json:"body"`
	Balance    float64 `json:"balance"`
	Uniformity float64 `json:"uniformity"`
	CleanCup   float64 `json:"clean_cup"`
	Sweetness  float64 `json:"sweetness"`
	Overall    float64 `json:"overall"`
}

// Product is a catalog entry. Price, Weight and MerchandiseID are the base
// fields used when a product without a selected variant goes into the cart.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Price         int64          `json:"price"`
	Description   string         `json:"description,omitempty"`
	TastingNotes  []string       `json:"tasting_notes,omitempty"`
	RoastLevel    string         `json:"roast_level,omitempty"`
	Weight        string         `json:"weight"`
	Image         string         `json:"image,omitempty"`
	HoverImage    string         `json:"hover_image,omitempty"`
	IsKit         bool           `json:"is_kit,omitempty"`
	KitImages     []string       `json:"kit_images,omitempty"`
	Features      []Feature      `json:"features,omitempty"`
	ScaScore      float64        `json:"sca_score,omitempty"`
	ScaAttributes *ScaAttributes `json:"sca_attributes,omitempty"`
	MerchandiseID string         `json:"merchandise_id,omitempty"`
	Variants      []Variant      `json:"variants,omitempty"`
}

// Variant returns the variant with the given id, if the product has one.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
