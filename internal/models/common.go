// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Enums
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderUnisex Gender = "U"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unisex"
	}
}

type Season string

const (
	SeasonAutumnWinter Season = "AW"
	SeasonSpringSummer Season = "SS"
)

func (s Season) Valid() bool {
	return s == SeasonAutumnWinter || s == SeasonSpringSummer
}

func (s Season) Label() string {
	switch s {
	case SeasonAutumnWinter:
		return "Autumn/Winter"
	case SeasonSpringSummer:
		return "Spring/Summer"
	}
	return ""
}

// Bottle sizes in grams; the only sizes an order item may use.
var ProductSizes = []int{15, 30, 50}

const (
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

func IsValidSize(size int) bool {
	for _, s := range ProductSizes {
		if s == size {
			return true
		}
	}
	return false
}
