// internal/models/catalog.go
package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Brand struct {
	BaseModel
	Name string `json:"name" gorm:"size:120;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:130;not null"`

	// Relationships
	Products []Product `json:"-" gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
}

type Group struct {
	BaseModel
	Name string `json:"name" gorm:"size:120;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:130;not null"`
}

type Product struct {
	BaseModel
	BrandID      uint            `json:"-" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"size:120;not null"`
	Slug         string          `json:"slug" gorm:"uniqueIndex;size:130;not null"`
	PricePerGram decimal.Decimal `json:"price_per_gram" gorm:"type:decimal(6,2);not null;check:price_per_gram >= 0"`
	Gender       Gender          `json:"gender" gorm:"type:varchar(1);not null;default:'U';index"`
	Season       Season          `json:"season" gorm:"type:varchar(2);not null;index"`
	Sales        int64           `json:"-" gorm:"not null;default:0"`
	ImageURL     string          `json:"image_url,omitempty" gorm:"size:500"`

	// Per-request value: the caller's favorite row for this product, if any.
	FavoriteID *uint `json:"favorite_id" gorm:"-"`

	// Relationships
	Brand  Brand   `json:"brand" gorm:"foreignKey:BrandID"`
	Groups []Group `json:"groups,omitempty" gorm:"many2many:product_groups;constraint:OnDelete:CASCADE"`
}

// Prices maps every bottle size to price_per_gram × size.
func (p *Product) Prices() map[int]decimal.Decimal {
	prices := make(map[int]decimal.Decimal, len(ProductSizes))
	for _, size := range ProductSizes {
		prices[size] = p.PriceFor(size)
	}
	return prices
}

func (p *Product) PriceFor(size int) decimal.Decimal {
	return p.PricePerGram.Mul(decimal.NewFromInt(int64(size)))
}

func (p *Product) DisplayName() string {
	if p.Brand.Name == "" {
		return p.Name
	}
	return p.Brand.Name + " " + p.Name
}

// Ref is the public product reference "{brand_slug}_{product_slug}".
func (p *Product) Ref() string {
	return p.Brand.Slug + "_" + p.Slug
}

func (p *Product) DetailURL() string {
	return fmt.Sprintf("/api/products/%s", p.Ref())
}

func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		DisplayName   string                  `json:"display_name"`
		Prices        map[int]decimal.Decimal `json:"prices"`
		DetailURL     string                  `json:"detail_url"`
		GenderDisplay string                  `json:"gender_display"`
		SeasonDisplay string                  `json:"season_display"`
	}{
		product:       product(p),
		DisplayName:   p.DisplayName(),
		Prices:        p.Prices(),
		DetailURL:     p.DetailURL(),
		GenderDisplay: p.Gender.Label(),
		SeasonDisplay: p.Season.Label(),
	})
}
