// internal/domain/catalog/entity.go
package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a registered tenant owning its own catalog
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   *uuid.UUID     `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Phone     string         `gorm:"not null;size:32" json:"phone"` // Messaging contact
	Address   string         `gorm:"size:500" json:"address,omitempty"`
	GSTNumber string         `gorm:"size:32" json:"gst_number,omitempty"`
	LogoURL   string         `gorm:"size:500" json:"logo_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Product represents a catalog product with its variant axes
type Product struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"company_id"`
	Name         string              `gorm:"not null;size:255" json:"name"`
	Description  string              `gorm:"type:text" json:"description,omitempty"`
	Category     string              `gorm:"size:255;index" json:"category,omitempty"`
	Price        float64             `gorm:"not null;default:0" json:"price"` // 0 means unset
	ImageURL     string              `gorm:"size:500" json:"image_url,omitempty"`
	Images       []string            `gorm:"serializer:json" json:"images"`
	SizeList     string              `gorm:"column:size;size:1000" json:"size,omitempty"` // Comma-separated
	Features     []string            `gorm:"serializer:json" json:"features"`
	FeatureSizes map[string][]string `gorm:"serializer:json" json:"feature_sizes"`
	InStock      bool                `gorm:"default:true" json:"in_stock"`
	IsTrending   bool                `gorm:"default:false" json:"is_trending"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName overrides
func (Company) TableName() string { return "companies" }
func (Product) TableName() string { return "products" }

// BeforeCreate assigns identifiers to new rows
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns identifiers to new rows
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DisplayName returns the name orders are addressed to
func (c *Company) DisplayName() string {
	return c.Name
}

// ContactID returns the messaging contact of the company
func (c *Company) ContactID() string {
	return c.Phone
}

// HasPrice reports whether the product carries a displayable price
func (p *Product) HasPrice() bool {
	return p.Price > 0
}

// Normalize cleans up the variant fields of a product loaded from storage.
// Feature labels and size tokens are trimmed, empty entries dropped, and
// feature size entries for labels not listed in Features are removed.
func (p *Product) Normalize() {
	features := make([]string, 0, len(p.Features))
	known := make(map[string]bool, len(p.Features))
	for _, f := range p.Features {
		f = strings.TrimSpace(f)
		if f == "" || known[f] {
			continue
		}
		known[f] = true
		features = append(features, f)
	}
	p.Features = features

	if len(p.FeatureSizes) == 0 {
		p.FeatureSizes = nil
	} else {
		cleaned := make(map[string][]string, len(p.FeatureSizes))
		for feature, sizes := range p.FeatureSizes {
			feature = strings.TrimSpace(feature)
			if !known[feature] {
				continue
			}
			tokens := make([]string, 0, len(sizes))
			for _, s := range sizes {
				if s = strings.TrimSpace(s); s != "" {
					tokens = append(tokens, s)
				}
			}
			cleaned[feature] = tokens
		}
		if len(cleaned) == 0 {
			cleaned = nil
		}
		p.FeatureSizes = cleaned
	}

	if p.Images == nil {
		p.Images = []string{}
	}
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify derives the store slug from a company name
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.TrimSpace(slug)
}
