// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("🔄 Running database auto-migrations...")

	// Companies first, products reference them
	models := []interface{}{
		&catalog.Company{},
		&catalog.Product{},
	}

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for storefront queries
func (m *Migration) CreateIndexes() error {
	m.log.Info("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_company_stock ON products(company_id, in_stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_company_category ON products(company_id, category)",
		"CREATE INDEX IF NOT EXISTS idx_products_company_trending ON products(company_id, is_trending)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.log.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts a demo store for development
func (m *Migration) SeedInitialData() error {
	m.log.Info("🌱 Seeding initial data...")

	company, err := m.seedDemoCompany()
	if err != nil {
		return fmt.Errorf("failed to seed demo company: %w", err)
	}

	if err := m.seedDemoProducts(company); err != nil {
		return fmt.Errorf("failed to seed demo products: %w", err)
	}

	m.log.Info("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedDemoCompany() (*catalog.Company, error) {
	name := "Demo Boutique"
	slug := catalog.Slugify(name)

	var existing catalog.Company
	err := m.db.Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		m.log.Infof("⏭️ Demo company already exists: %s", slug)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company := catalog.Company{
		Name:    name,
		Slug:    slug,
		Phone:   "+91 98765 43210",
		Address: "12 Market Road, Chennai",
	}
	if err := m.db.Create(&company).Error; err != nil {
		return nil, err
	}

	m.log.Infof("✅ Created demo company: %s", company.Slug)
	return &company, nil
}

func (m *Migration) seedDemoProducts(company *catalog.Company) error {
	var count int64
	m.db.Model(&catalog.Product{}).Where("company_id = ?", company.ID).Count(&count)
	if count > 0 {
		m.log.Info("⏭️ Demo products already exist")
		return nil
	}

	products := []catalog.Product{
		{
			CompanyID:   company.ID,
			Name:        "Cotton Kurta",
			Description: "Breathable handloom cotton kurta.",
			Category:    "Apparel",
			Price:       899,
			Images:      []string{"/static/kurta-red.jpg", "/static/kurta-blue.jpg"},
			SizeList:    "S,M,L,XL",
			Features:    []string{"Red", "Blue"},
			FeatureSizes: map[string][]string{
				"Red":  {"S", "M", "~L"},
				"Blue": {"M", "L", "~XL"},
			},
			InStock:    true,
			IsTrending: true,
		},
		{
			CompanyID:   company.ID,
			Name:        "Canvas Sneakers",
			Description: "Everyday canvas sneakers.",
			Category:    "Footwear",
			Price:       1499,
			Images:      []string{"/static/sneakers.jpg"},
			SizeList:    "7,8,~9,10",
			InStock:     true,
		},
		{
			CompanyID: company.ID,
			Name:      "Gift Wrap",
			Category:  "Extras",
			Features:  []string{"Festive"},
			InStock:   true,
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return err
		}
		m.log.Infof("✅ Created demo product: %s", products[i].Name)
	}
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	m.log.Warn("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"products",
		"companies",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			m.log.WithError(err).Warnf("⚠️ Failed to drop table %s", table)
		} else {
			m.log.Infof("🗑️ Dropped table: %s", table)
		}
	}

	m.log.Info("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo logs row counts for every public table
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		m.log.WithFields(logrus.Fields{"table": table, "records": count}).Info("📊 Table info")
	}

	m.log.Infof("📈 Total records: %d across %d tables", totalRecords, len(tables))
	return nil
}
