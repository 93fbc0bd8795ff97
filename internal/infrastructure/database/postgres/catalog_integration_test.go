package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"

// CatalogSuite runs migrations and catalog queries against a real PostgreSQL
type CatalogSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
	log         logrus.FieldLogger
	catalog     *catalog.Service
}

func (s *CatalogSuite) SetupSuite() {
	s.ctx = context.Background()
	s.log, _ = test.NewNullLogger()

	var err error
	s.pgContainer, err = tcpostgres.Run(s.ctx,
		"postgres:17.5-alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.db, err = gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	migration := NewMigration(s.db, s.log)
	require.NoError(s.T(), migration.DropAllTables())
	require.NoError(s.T(), migration.RunAutoMigrations())
	require.NoError(s.T(), migration.CreateIndexes())

	s.catalog = catalog.NewService(s.db, s.log)
}

func (s *CatalogSuite) TearDownSuite() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *CatalogSuite) SetupTest() {
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE products, companies CASCADE").Error)
}

func TestCatalogIntegration(t *testing.T) {
	if testing.Short() || os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) TestSeededDemoStore() {
	migration := NewMigration(s.db, s.log)
	require.NoError(s.T(), migration.SeedInitialData())
	// Seeding twice is a no-op
	require.NoError(s.T(), migration.SeedInitialData())

	company, err := s.catalog.GetCompanyBySlug(s.ctx, "demo-boutique")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Demo Boutique", company.Name)

	products, err := s.catalog.ListProducts(s.ctx, company.ID, nil)
	require.NoError(s.T(), err)
	require.Len(s.T(), products, 3)

	var kurta *catalog.Product
	for i := range products {
		if products[i].Name == "Cotton Kurta" {
			kurta = &products[i]
		}
	}
	require.NotNil(s.T(), kurta)
	assert.Equal(s.T(), []string{"Red", "Blue"}, kurta.Features)
	assert.Equal(s.T(), []string{"S", "M", "~L"}, kurta.FeatureSizes["Red"])

	categories, err := s.catalog.ListCategories(s.ctx, company.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Apparel", "Extras", "Footwear"}, categories)
}

func (s *CatalogSuite) TestProductQueries() {
	company := &catalog.Company{Name: "Acme", Slug: "acme", Phone: "15551234567"}
	require.NoError(s.T(), s.db.Create(company).Error)
	other := &catalog.Company{Name: "Other", Slug: "other", Phone: "15557654321"}
	require.NoError(s.T(), s.db.Create(other).Error)

	older := &catalog.Product{CompanyID: company.ID, Name: "Blue Mug", Category: "Kitchen", InStock: true}
	require.NoError(s.T(), s.db.Create(older).Error)
	newer := &catalog.Product{CompanyID: company.ID, Name: "Red Mug", Category: "Kitchen", InStock: true, IsTrending: true}
	require.NoError(s.T(), s.db.Create(newer).Error)
	require.NoError(s.T(), s.db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	hidden := &catalog.Product{CompanyID: company.ID, Name: "Sold Out Mug", InStock: true}
	require.NoError(s.T(), s.db.Create(hidden).Error)
	require.NoError(s.T(), s.db.Model(hidden).Update("in_stock", false).Error)

	products, err := s.catalog.ListProducts(s.ctx, company.ID, &catalog.ProductFilter{})
	require.NoError(s.T(), err)
	require.Len(s.T(), products, 2)
	assert.Equal(s.T(), "Red Mug", products[0].Name)

	products, err = s.catalog.ListProducts(s.ctx, company.ID, &catalog.ProductFilter{Search: "BLUE"})
	require.NoError(s.T(), err)
	require.Len(s.T(), products, 1)
	assert.Equal(s.T(), older.ID, products[0].ID)

	trending := true
	products, err = s.catalog.ListProducts(s.ctx, company.ID, &catalog.ProductFilter{Trending: &trending})
	require.NoError(s.T(), err)
	require.Len(s.T(), products, 1)
	assert.Equal(s.T(), newer.ID, products[0].ID)

	got, err := s.catalog.GetProduct(s.ctx, company.ID, newer.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Red Mug", got.Name)
	assert.NotNil(s.T(), got.Images)

	_, err = s.catalog.GetProduct(s.ctx, other.ID, newer.ID)
	assert.ErrorIs(s.T(), err, catalog.ErrProductNotFound)

	_, err = s.catalog.GetCompanyBySlug(s.ctx, "missing")
	assert.ErrorIs(s.T(), err, catalog.ErrCompanyNotFound)
}
