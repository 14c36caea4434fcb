// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/database"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/utils"
)

// OrderNotifier is told about every order once it has been stored.
type OrderNotifier interface {
	OrderCreated(order *models.Order)
}

type OrderService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier OrderNotifier
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Size      int  `json:"size" validate:"product_size"`
	Quantity  int  `json:"quantity" validate:"min=1,max=10"`
}

type CreateOrderRequest struct {
	Phone      string             `json:"phone" validate:"required,e164"`
	Address    string             `json:"address" validate:"required,max=1000"`
	Commentary *string            `json:"commentary" validate:"omitempty,max=2000"`
	Items      []OrderItemRequest `json:"items" validate:"dive"`
}

type OrderListParams struct {
	Completed *bool
	Page      int
	PageSize  int
}

type OrderPage struct {
	Orders []models.Order
	Count  int64
}

func NewOrderService(db *gorm.DB, cfg *config.Config, notifier OrderNotifier) *OrderService {
	return &OrderService{
		db:       db,
		cfg:      cfg,
		notifier: notifier,
	}
}

// CreateOrder stores the order and its items in one transaction, then
// notifies in the background.
func (s *OrderService) CreateOrder(userID uint, req *CreateOrderRequest) (*models.Order, error) {
	errs := FieldErrors{}
	if err := utils.ValidateStruct(req); err != nil {
		errs.Merge(utils.GetValidationErrors(err))
	}
	if len(req.Items) == 0 {
		errs.Add("items", i18n.KeyOrderEmptyItems)
	} else if hasDuplicateItems(req.Items) {
		errs.Add("items", i18n.KeyOrderDuplicateItems)
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	productIDs := make([]uint, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	productIDs = uniqueIDs(productIDs)

	var found int64
	if err := s.db.Model(&models.Product{}).Where("id IN ?", productIDs).Count(&found).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if found != int64(len(productIDs)) {
		return nil, ErrUnknownProduct
	}

	order := &models.Order{
		UserID:     user.ID,
		Email:      user.Email,
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		Commentary: req.Commentary,
		Items:      make([]models.OrderItem, len(req.Items)),
	}
	for i, item := range req.Items {
		order.Items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
		}
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := s.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.OrderCreated(created)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": created.ID,
		"user_id":  userID,
		"items":    len(created.Items),
	}).Info("Order created")

	return created, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.withItems(s.db).
		Where("user_id = ?", userID).
		Order("ordered_at DESC").Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAllOrders is the staff view over every order.
func (s *OrderService) ListAllOrders(params OrderListParams) (*OrderPage, error) {
	if params.Page < 1 {
		return nil, ErrInvalidPage
	}

	query := s.db.Model(&models.Order{})
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	find := s.withItems(query).Preload("User").Order("ordered_at DESC").Order("id DESC")
	if params.PageSize > 0 {
		find = utils.ApplyPagination(find, utils.PaginationParams{Page: params.Page, PageSize: params.PageSize})
	}
	if err := find.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &OrderPage{Orders: orders, Count: count}, nil
}

func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.withItems(s.db).Preload("User").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// GetUserOrder loads an order owned by userID; other users' orders are
// reported as not found.
func (s *OrderService) GetUserOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// CompleteOrder marks the order completed and bumps the sales counter of
// every distinct product in it by one. Completing an already completed
// order changes nothing and reports changed=false.
func (s *OrderService) CompleteOrder(orderID uint) (order *models.Order, changed bool, err error) {
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var current models.Order
		if err := tx.Preload("Items").First(&current, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND completed = ?", orderID, false).
			Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		changed = true

		if ids := current.ProductIDs(); len(ids) > 0 {
			if err := tx.Model(&models.Product{}).
				Where("id IN ?", ids).
				UpdateColumn("sales", gorm.Expr("sales + ?", 1)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("failed to complete order: %w", err)
	}

	if changed {
		logrus.WithField("order_id", orderID).Info("Order completed")
	}

	order, err = s.GetOrder(orderID)
	return order, changed, err
}

// DeleteOrder removes an order together with its items.
func (s *OrderService) DeleteOrder(orderID uint) error {
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, orderID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return err
}

// SetPaymentReference records the payment provider's id for the order.
func (s *OrderService) SetPaymentReference(orderID uint, reference string) error {
	return s.db.Model(&models.Order{}).Where("id = ?", orderID).
		UpdateColumn("payment_reference", reference).Error
}

func (s *OrderService) withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product.Brand")
}

func hasDuplicateItems(items []OrderItemRequest) bool {
	type key struct {
		productID uint
		size      int
	}
	seen := make(map[key]struct{}, len(items))
	for _, item := range items {
		k := key{item.ProductID, item.Size}
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}
	return false
}
