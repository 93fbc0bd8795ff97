// internal/domain/variant/selection.go
package variant

// Selection tracks the feature and size chosen on one product view
type Selection struct {
	resolver *Resolver
	feature  string
	size     string
}

// SizeOption is a size token prepared for rendering
type SizeOption struct {
	Token      string `json:"token"`
	Label      string `json:"label"`
	OutOfStock bool   `json:"out_of_stock"`
}

// Options is the derived view state of a product selection
type Options struct {
	ProductID       string       `json:"product_id"`
	Name            string       `json:"name"`
	Price           *float64     `json:"price,omitempty"`
	Images          []string     `json:"images"`
	Features        []string     `json:"features"`
	Sizes           []SizeOption `json:"sizes"`
	SelectedFeature string       `json:"selected_feature,omitempty"`
	SelectedSize    string       `json:"selected_size,omitempty"`
	CanAdd          bool         `json:"can_add"`
}

// NewSelection starts a fresh product view and applies the default selection
func NewSelection(r *Resolver) *Selection {
	s := &Selection{resolver: r}

	if features := r.Features(); len(features) == 1 {
		s.feature = features[0]
	}
	s.autoSelectSize()

	return s
}

// Feature returns the selected feature, empty when none
func (s *Selection) Feature() string {
	return s.feature
}

// Size returns the selected size token, empty when none
func (s *Selection) Size() string {
	return s.size
}

// Sizes returns the size tokens effective for the current feature
func (s *Selection) Sizes() []string {
	return s.resolver.AvailableSizes(s.feature)
}

// SelectFeature changes the selected feature. Unknown labels are ignored.
// Any selected size is cleared since sizes may be scoped per feature.
func (s *Selection) SelectFeature(label string) bool {
	if !s.resolver.HasFeature(label) {
		return false
	}

	s.feature = label
	s.size = ""
	s.autoSelectSize()
	return true
}

// SelectSize changes the selected size. Out-of-stock tokens and tokens not
// offered for the current feature are ignored.
func (s *Selection) SelectSize(token string) bool {
	if IsOutOfStockToken(token) || !contains(s.Sizes(), token) {
		return false
	}

	s.size = token
	return true
}

// CanAdd reports whether the selection is complete enough to add to a cart
func (s *Selection) CanAdd() bool {
	if len(s.resolver.Features()) > 0 && s.feature == "" {
		return false
	}
	if len(s.Sizes()) > 0 && s.size == "" {
		return false
	}
	return true
}

// Options returns the view state for the current selection
func (s *Selection) Options() Options {
	p := s.resolver.Product()

	sizes := s.Sizes()
	sizeOptions := make([]SizeOption, 0, len(sizes))
	for _, token := range sizes {
		sizeOptions = append(sizeOptions, SizeOption{
			Token:      token,
			Label:      DisplayLabel(token),
			OutOfStock: IsOutOfStockToken(token),
		})
	}

	opts := Options{
		ProductID:       p.ID.String(),
		Name:            p.Name,
		Images:          s.resolver.AllImages(),
		Features:        s.resolver.Features(),
		Sizes:           sizeOptions,
		SelectedFeature: s.feature,
		SelectedSize:    s.size,
		CanAdd:          s.CanAdd(),
	}
	if p.HasPrice() {
		price := p.Price
		opts.Price = &price
	}

	return opts
}

func (s *Selection) autoSelectSize() {
	if sizes := s.Sizes(); len(sizes) == 1 && !IsOutOfStockToken(sizes[0]) {
		s.size = sizes[0]
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
