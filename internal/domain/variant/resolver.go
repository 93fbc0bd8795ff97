// internal/domain/variant/resolver.go
package variant

import (
	"strings"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// OutOfStockMarker prefixes and/or suffixes a size token that cannot be selected
const OutOfStockMarker = "~"

// Resolver computes the selectable options of a single product
type Resolver struct {
	product *catalog.Product
	sizes   []string
}

// NewResolver creates a resolver over a product record
func NewResolver(p *catalog.Product) *Resolver {
	return &Resolver{
		product: p,
		sizes:   splitSizeList(p.SizeList),
	}
}

// Product returns the product the resolver was built from
func (r *Resolver) Product() *catalog.Product {
	return r.product
}

// AllImages returns image_url followed by the images not already listed
func (r *Resolver) AllImages() []string {
	images := make([]string, 0, len(r.product.Images)+1)
	seen := make(map[string]bool, len(r.product.Images)+1)

	if r.product.ImageURL != "" {
		images = append(images, r.product.ImageURL)
		seen[r.product.ImageURL] = true
	}
	for _, img := range r.product.Images {
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		images = append(images, img)
	}

	return images
}

// GlobalSizes returns the product-wide size tokens
func (r *Resolver) GlobalSizes() []string {
	return append([]string{}, r.sizes...)
}

// Features returns the option labels of the product
func (r *Resolver) Features() []string {
	if r.product.Features == nil {
		return []string{}
	}
	return append([]string{}, r.product.Features...)
}

// HasFeature reports whether label is one of the product's features
func (r *Resolver) HasFeature(label string) bool {
	for _, f := range r.product.Features {
		if f == label {
			return true
		}
	}
	return false
}

// HasFeatureSizes reports whether sizes are scoped per feature
func (r *Resolver) HasFeatureSizes() bool {
	return len(r.product.FeatureSizes) > 0
}

// AvailableSizes returns the size tokens offered for the selected feature.
// Feature-scoped sizes override the global list once a feature is selected.
func (r *Resolver) AvailableSizes(selectedFeature string) []string {
	if r.HasFeatureSizes() && selectedFeature != "" {
		sizes, ok := r.product.FeatureSizes[selectedFeature]
		if !ok {
			return []string{}
		}
		return append([]string{}, sizes...)
	}
	return r.GlobalSizes()
}

// IsOutOfStockToken reports whether a size token carries the out-of-stock marker
func IsOutOfStockToken(token string) bool {
	return strings.HasPrefix(token, OutOfStockMarker) || strings.HasSuffix(token, OutOfStockMarker)
}

// DisplayLabel returns the size token without stock markers
func DisplayLabel(token string) string {
	return strings.TrimSpace(strings.ReplaceAll(token, OutOfStockMarker, ""))
}

func splitSizeList(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	sizes := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}
