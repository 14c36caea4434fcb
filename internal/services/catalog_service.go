// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/utils"
)

type CatalogService struct {
	db  *gorm.DB
	cfg *config.Config
}

// ProductFilter narrows the product list. Empty fields do not filter.
type ProductFilter struct {
	Brands   []string
	Groups   []string
	Gender   string
	Season   string
	Search   string
	Ordering string
}

type ProductListParams struct {
	ProductFilter
	Page     int
	OmitPage bool
}

type ProductPage struct {
	Products []models.Product
	Count    int64
	Page     int
	PageSize int
}

type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Slug string `json:"slug" validate:"omitempty,max=130"`
}

type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Slug string `json:"slug" validate:"omitempty,max=130"`
}

type CreateProductRequest struct {
	BrandID      uint            `json:"brand_id" validate:"required"`
	Name         string          `json:"name" validate:"required,max=120"`
	Slug         string          `json:"slug" validate:"omitempty,max=130"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	Gender       string          `json:"gender" validate:"omitempty,gender"`
	Season       string          `json:"season" validate:"required,season"`
	GroupIDs     []uint          `json:"group_ids"`
}

// price_per_gram is stored as decimal(6,2)
var maxPricePerGram = decimal.New(10000, 0)

var (
	brandsTable = pq.QuoteIdentifier("brands")
	groupsTable = pq.QuoteIdentifier("groups")
)

func column(table, name string) string {
	return pq.QuoteIdentifier(table) + "." + pq.QuoteIdentifier(name)
}

// productOrderings maps the accepted ordering values to ORDER BY clauses.
var productOrderings = map[string]string{
	"name":            column("products", "name") + " ASC",
	"-name":           column("products", "name") + " DESC",
	"price":           column("products", "price_per_gram") + " ASC",
	"-price":          column("products", "price_per_gram") + " DESC",
	"price_per_gram":  column("products", "price_per_gram") + " ASC",
	"-price_per_gram": column("products", "price_per_gram") + " DESC",
	"-sales":          column("products", "sales") + " DESC",
}

var defaultProductOrdering = column("brands", "name") + " ASC, " + column("products", "name") + " ASC"

func NewCatalogService(db *gorm.DB, cfg *config.Config) *CatalogService {
	return &CatalogService{
		db:  db,
		cfg: cfg,
	}
}

func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.Order("name ASC").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (s *CatalogService) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := s.db.Order("name ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// ListProducts returns one page of matching products. userID 0 means an
// anonymous caller, whose products never carry a favorite id.
func (s *CatalogService) ListProducts(userID uint, params ProductListParams) (*ProductPage, error) {
	pageSize := s.cfg.Catalog.PageSize
	if !params.OmitPage && params.Page < 1 {
		return nil, ErrInvalidPage
	}

	query, err := s.filteredProducts(params.ProductFilter)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	ordering, ok := productOrderings[params.Ordering]
	if !ok {
		ordering = defaultProductOrdering
	}

	find := query.Preload("Brand").Order(ordering).Order(column("products", "id") + " ASC")
	if !params.OmitPage {
		find = utils.ApplyPagination(find, utils.PaginationParams{Page: params.Page, PageSize: pageSize})
	}

	var products []models.Product
	if err := find.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if err := s.attachFavorites(userID, products); err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products: products,
		Count:    count,
		Page:     params.Page,
		PageSize: pageSize,
	}
	if params.OmitPage {
		page.Page = 1
		page.PageSize = len(products)
	}
	return page, nil
}

func (s *CatalogService) CountProducts(filter ProductFilter) (int64, error) {
	query, err := s.filteredProducts(filter)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *CatalogService) filteredProducts(filter ProductFilter) (*gorm.DB, error) {
	query := s.db.Model(&models.Product{}).
		Joins("JOIN " + brandsTable + " ON " + column("brands", "id") + " = " + column("products", "brand_id"))

	if brands := nonEmpty(filter.Brands); len(brands) > 0 {
		query = query.Where(column("brands", "slug")+" IN ?", brands)
	}

	if groups := nonEmpty(filter.Groups); len(groups) > 0 {
		sub := s.db.Table("product_groups").
			Select(column("product_groups", "product_id")).
			Joins("JOIN "+groupsTable+" ON "+column("groups", "id")+" = "+column("product_groups", "group_id")).
			Where(column("groups", "slug")+" IN ?", groups)
		query = query.Where(column("products", "id")+" IN (?)", sub)
	}

	switch gender := strings.ToUpper(strings.TrimSpace(filter.Gender)); gender {
	case "", string(models.GenderUnisex):
	case string(models.GenderMale), string(models.GenderFemale):
		query = query.Where(column("products", "gender")+" = ?", gender)
	default:
		return nil, FieldErrors{"gender": "Select a valid choice. " + filter.Gender + " is not one of the available choices."}
	}

	switch season := strings.TrimSpace(filter.Season); strings.ToLower(season) {
	case "", "all":
	case "aw", "ss":
		query = query.Where(column("products", "season")+" = ?", strings.ToUpper(season))
	default:
		return nil, FieldErrors{"season": "Select a valid choice. " + filter.Season + " is not one of the available choices."}
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"(LOWER("+column("products", "name")+") LIKE ? OR LOWER("+column("brands", "name")+") LIKE ?)",
			pattern, pattern,
		)
	}

	return query.Session(&gorm.Session{}), nil
}

// GetProduct resolves a "{brand_slug}_{product_slug}" reference. Slugs may
// themselves contain underscores, so every split point is tried.
func (s *CatalogService) GetProduct(userID uint, ref string) (*models.Product, error) {
	for i := strings.IndexByte(ref, '_'); i >= 0; {
		brandSlug, productSlug := ref[:i], ref[i+1:]
		if brandSlug != "" && productSlug != "" {
			product, err := s.findByRef(brandSlug, productSlug)
			if err == nil {
				return s.withFavorite(userID, product)
			}
			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}

		next := strings.IndexByte(ref[i+1:], '_')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return nil, ErrNotFound
}

func (s *CatalogService) ProductGroups(ref string) ([]models.Group, error) {
	product, err := s.GetProduct(0, ref)
	if err != nil {
		return nil, err
	}
	return product.Groups, nil
}

func (s *CatalogService) findByRef(brandSlug, productSlug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Model(&models.Product{}).
		Joins("JOIN "+brandsTable+" ON "+column("brands", "id")+" = "+column("products", "brand_id")).
		Where(column("brands", "slug")+" = ? AND "+column("products", "slug")+" = ?", brandSlug, productSlug).
		Preload("Brand").
		Preload("Groups", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) withFavorite(userID uint, product *models.Product) (*models.Product, error) {
	products := []models.Product{*product}
	if err := s.attachFavorites(userID, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// attachFavorites sets FavoriteID on the products the user has favorited.
func (s *CatalogService) attachFavorites(userID uint, products []models.Product) error {
	if userID == 0 || len(products) == 0 {
		return nil
	}

	ids := make([]uint, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	var favorites []models.Favorite
	if err := s.db.Select("id", "product_id").
		Where("user_id = ? AND product_id IN ?", userID, ids).
		Find(&favorites).Error; err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	byProduct := make(map[uint]uint, len(favorites))
	for _, f := range favorites {
		byProduct[f.ProductID] = f.ID
	}
	for i := range products {
		if id, ok := byProduct[products[i].ID]; ok {
			favID := id
			products[i].FavoriteID = &favID
		}
	}
	return nil
}

func (s *CatalogService) CreateBrand(req *CreateBrandRequest) (*models.Brand, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, FieldErrors(utils.GetValidationErrors(err))
	}

	brand := &models.Brand{Name: strings.TrimSpace(req.Name), Slug: makeSlug(req.Slug, req.Name)}
	if err := s.createUnique(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *CatalogService) CreateGroup(req *CreateGroupRequest) (*models.Group, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, FieldErrors(utils.GetValidationErrors(err))
	}

	group := &models.Group{Name: strings.TrimSpace(req.Name), Slug: makeSlug(req.Slug, req.Name)}
	if err := s.createUnique(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	errs := FieldErrors{}
	if err := utils.ValidateStruct(req); err != nil {
		errs.Merge(utils.GetValidationErrors(err))
	}
	if req.PricePerGram.IsNegative() {
		errs.Add("price_per_gram", "Ensure this value is greater than or equal to 0.")
	} else if req.PricePerGram.GreaterThanOrEqual(maxPricePerGram) {
		errs.Add("price_per_gram", "Ensure that there are no more than 4 digits before the decimal point.")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	var brand models.Brand
	if err := s.db.First(&brand, req.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldErrors{"brand_id": "Brand does not exist."}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var groups []models.Group
	if len(req.GroupIDs) > 0 {
		if err := s.db.Where("id IN ?", req.GroupIDs).Find(&groups).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if len(groups) != len(uniqueIDs(req.GroupIDs)) {
			return nil, FieldErrors{"group_ids": "One or more groups do not exist."}
		}
	}

	gender := models.Gender(req.Gender)
	if gender == "" {
		gender = models.GenderUnisex
	}

	product := &models.Product{
		BrandID:      brand.ID,
		Name:         strings.TrimSpace(req.Name),
		Slug:         makeSlug(req.Slug, req.Name),
		PricePerGram: req.PricePerGram.Round(2),
		Gender:       gender,
		Season:       models.Season(req.Season),
		Groups:       groups,
	}
	if err := s.createUnique(product); err != nil {
		return nil, err
	}

	product.Brand = brand
	return product, nil
}

// SetProductImage stores a new image URL and returns the previous one.
func (s *CatalogService) SetProductImage(productID uint, imageURL string) (string, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	previous := product.ImageURL
	if err := s.db.Model(&product).UpdateColumn("image_url", imageURL).Error; err != nil {
		return "", fmt.Errorf("failed to update product image: %w", err)
	}
	return previous, nil
}

func (s *CatalogService) ProductExists(productID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *CatalogService) createUnique(value interface{}) error {
	if err := s.db.Create(value).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

func makeSlug(explicit, name string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return slug.Make(explicit)
	}
	return slug.Make(name)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
