// internal/services/favorite_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/utils"
)

type FavoriteService struct {
	db *gorm.DB
}

type CreateFavoriteRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ListFavorites returns the user's favorites, newest first, each with its
// product.
func (s *FavoriteService) ListFavorites(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").Preload("Product.Brand").
		Order("created_at DESC").Order("id DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	for i := range favorites {
		if favorites[i].Product != nil {
			id := favorites[i].ID
			favorites[i].Product.FavoriteID = &id
		}
	}
	return favorites, nil
}

func (s *FavoriteService) CreateFavorite(userID uint, req *CreateFavoriteRequest) (*models.Favorite, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, FieldErrors(utils.GetValidationErrors(err))
	}

	var product models.Product
	if err := s.db.Preload("Brand").First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, product.ID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateFavorite
	}

	favorite := &models.Favorite{UserID: userID, ProductID: product.ID}
	if err := s.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFavorite
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	product.FavoriteID = &favorite.ID
	favorite.Product = &product
	return favorite, nil
}

// DeleteFavorite removes one of the user's favorites. Favorites of other
// users are reported as not found.
func (s *FavoriteService) DeleteFavorite(userID, favoriteID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", favoriteID, userID).Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
