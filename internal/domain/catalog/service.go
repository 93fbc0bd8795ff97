// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("store not found")
	ErrProductNotFound = errors.New("product not found")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Reader is the read-only view of the catalog consumed by the storefront
type Reader interface {
	GetCompanyBySlug(ctx context.Context, slug string) (*Company, error)
	GetProduct(ctx context.Context, companyID, productID uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, companyID uuid.UUID, filter *ProductFilter) ([]Product, error)
	ListCategories(ctx context.Context, companyID uuid.UUID) ([]string, error)
}

// ProductFilter represents storefront product list query parameters
type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Trending *bool  `form:"trending"`
	Limit    int    `form:"limit"`
}

// Service handles catalog lookups over the managed data store
type Service struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, log logrus.FieldLogger) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// GetCompanyBySlug retrieves a tenant by its store slug
func (s *Service) GetCompanyBySlug(ctx context.Context, slug string) (*Company, error) {
	var company Company
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to retrieve company: %w", err)
	}
	return &company, nil
}

// GetProduct retrieves a single product of a tenant
func (s *Service) GetProduct(ctx context.Context, companyID, productID uuid.UUID) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", productID, companyID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	product.Normalize()
	return &product, nil
}

// ListProducts retrieves the in-stock products of a tenant, newest first
func (s *Service) ListProducts(ctx context.Context, companyID uuid.UUID, filter *ProductFilter) ([]Product, error) {
	if filter == nil {
		filter = &ProductFilter{}
	}

	query := s.db.WithContext(ctx).Model(&Product{}).
		Where("company_id = ? AND in_stock = ?", companyID, true)

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Trending != nil {
		query = query.Where("is_trending = ?", *filter.Trending)
	}

	var products []Product
	if err := query.Order("created_at DESC").Limit(clampLimit(filter.Limit)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	for i := range products {
		products[i].Normalize()
	}

	s.log.WithFields(logrus.Fields{
		"company_id": companyID,
		"count":      len(products),
	}).Debug("Listed store products")

	return products, nil
}

// ListCategories returns the sorted distinct categories of a tenant's products
func (s *Service) ListCategories(ctx context.Context, companyID uuid.UUID) ([]string, error) {
	var raw []string
	err := s.db.WithContext(ctx).Model(&Product{}).
		Where("company_id = ? AND category <> ''", companyID).
		Distinct().
		Pluck("category", &raw).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	return SortedCategories(raw), nil
}

// SortedCategories de-duplicates and sorts category names, dropping blanks
func SortedCategories(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
