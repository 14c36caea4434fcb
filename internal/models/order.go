// internal/models/order.go
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_favorites_user_product;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type Order struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	UserID           uint       `json:"-" gorm:"not null;index"`
	Email            string     `json:"email" gorm:"size:254;not null"`
	Phone            string     `json:"phone" gorm:"size:32;not null"`
	Address          string     `json:"address" gorm:"type:text;not null"`
	Commentary       *string    `json:"commentary"`
	Completed        bool       `json:"completed" gorm:"not null;default:false;index"`
	CompletedAt      *time.Time `json:"completed_at"`
	PaymentReference string     `json:"payment_reference,omitempty" gorm:"size:100"`
	OrderedAt        time.Time  `json:"ordered_at" gorm:"autoCreateTime;index"`

	// Relationships
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Price sums the item prices. Items must be loaded with their products.
func (o *Order) Price() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Price())
	}
	return total
}

// ProductIDs returns the distinct products the order refers to.
func (o *Order) ProductIDs() []uint {
	seen := make(map[uint]struct{}, len(o.Items))
	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Price decimal.Decimal `json:"price"`
	}{order(o), o.Price()})
}

type OrderItem struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	OrderID   uint `json:"-" gorm:"not null;uniqueIndex:idx_order_items_unique"`
	ProductID uint `json:"product_id" gorm:"not null;uniqueIndex:idx_order_items_unique;index"`
	Size      int  `json:"size" gorm:"not null;uniqueIndex:idx_order_items_unique"`
	Quantity  int  `json:"quantity" gorm:"not null;check:quantity BETWEEN 1 AND 10"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Price is price_per_gram × size × quantity.
func (i *OrderItem) Price() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.PriceFor(i.Size).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type orderItem OrderItem
	return json.Marshal(struct {
		orderItem
		Price decimal.Decimal `json:"price"`
	}{orderItem(i), i.Price()})
}
