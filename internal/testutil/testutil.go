// internal/testutil/testutil.go
package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/database"
	"github.com/javajoker/perfume-store/internal/models"
)

const TestPassword = "Perfume!2024"

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

// Config returns a config suitable for tests; no external services are
// enabled.
func Config(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		Session: config.SessionConfig{
			CookieName: "sessionid",
			Secret:     "test-session-secret",
			TTLHours:   1,
		},
		Storage: config.StorageConfig{
			LocalDir:       t.TempDir(),
			PublicBaseURL:  "http://localhost:8080/uploads",
			MaxImageSizeMB: 1,
		},
		Payment: config.PaymentConfig{Currency: "azn"},
		I18n:    config.I18nConfig{DefaultLocale: "en"},
		Catalog: config.CatalogConfig{PageSize: 2},
		Log:     config.LogConfig{Level: "error", Format: "text"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func CreateUser(t *testing.T, db *gorm.DB, email string, staff bool) *models.User {
	t.Helper()

	user := &models.User{
		Email:     models.NormalizeEmail(email),
		FirstName: "Test",
		LastName:  "User",
		IsStaff:   staff,
		IsActive:  true,
	}
	require.NoError(t, user.SetPassword(TestPassword))
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateBrand(t *testing.T, db *gorm.DB, name, slug string) *models.Brand {
	t.Helper()

	brand := &models.Brand{Name: name, Slug: slug}
	require.NoError(t, db.Create(brand).Error)
	return brand
}

func CreateGroup(t *testing.T, db *gorm.DB, name, slug string) *models.Group {
	t.Helper()

	group := &models.Group{Name: name, Slug: slug}
	require.NoError(t, db.Create(group).Error)
	return group
}

// ProductOption tweaks a product fixture before it is stored.
type ProductOption func(*models.Product)

func WithGender(g models.Gender) ProductOption {
	return func(p *models.Product) { p.Gender = g }
}

func WithSeason(s models.Season) ProductOption {
	return func(p *models.Product) { p.Season = s }
}

func WithPrice(price string) ProductOption {
	return func(p *models.Product) { p.PricePerGram = decimal.RequireFromString(price) }
}

func WithGroups(groups ...*models.Group) ProductOption {
	return func(p *models.Product) {
		for _, g := range groups {
			p.Groups = append(p.Groups, *g)
		}
	}
}

func CreateProduct(t *testing.T, db *gorm.DB, brand *models.Brand, name, slug string, opts ...ProductOption) *models.Product {
	t.Helper()

	product := &models.Product{
		BrandID:      brand.ID,
		Name:         name,
		Slug:         slug,
		PricePerGram: decimal.RequireFromString("2.00"),
		Gender:       models.GenderUnisex,
		Season:       models.SeasonSpringSummer,
	}
	for _, opt := range opts {
		opt(product)
	}
	require.NoError(t, db.Omit("Brand").Create(product).Error)
	product.Brand = *brand
	return product
}

// RecordingNotifier collects created orders for assertions.
type RecordingNotifier struct {
	mu     sync.Mutex
	orders []*models.Order
	notify chan struct{}
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{notify: make(chan struct{}, 16)}
}

func (n *RecordingNotifier) OrderCreated(order *models.Order) {
	n.mu.Lock()
	n.orders = append(n.orders, order)
	n.mu.Unlock()

	select {
	case n.notify <- struct{}{}:
	default:
	}
}

// WaitForOrders blocks until at least count orders were recorded.
func (n *RecordingNotifier) WaitForOrders(t *testing.T, count int) []*models.Order {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		n.mu.Lock()
		if len(n.orders) >= count {
			orders := append([]*models.Order(nil), n.orders...)
			n.mu.Unlock()
			return orders
		}
		n.mu.Unlock()

		select {
		case <-n.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %d order notifications", count)
			return nil
		}
	}
}
