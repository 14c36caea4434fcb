// internal/services/order_service_test.go
package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/testutil"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	notifier *testutil.RecordingNotifier
	service  *OrderService

	user    *models.User
	aventus *models.Product
	oud     *models.Product
}

func (suite *OrderServiceTestSuite) SetupTest() {
	t := suite.T()
	suite.db = testutil.NewDB(t)
	suite.notifier = testutil.NewRecordingNotifier()
	suite.service = NewOrderService(suite.db, testutil.Config(t), suite.notifier)

	suite.user = testutil.CreateUser(t, suite.db, "buyer@example.com", false)
	brand := testutil.CreateBrand(t, suite.db, "Creed", "creed")
	suite.aventus = testutil.CreateProduct(t, suite.db, brand, "Aventus", "aventus", testutil.WithPrice("3.00"))
	suite.oud = testutil.CreateProduct(t, suite.db, brand, "Royal Oud", "royal-oud", testutil.WithPrice("1.50"))
}

func (suite *OrderServiceTestSuite) orderRequest(items ...OrderItemRequest) *CreateOrderRequest {
	return &CreateOrderRequest{
		Phone:   "+994501234567",
		Address: "28 Nizami street, Baku",
		Items:   items,
	}
}

func (suite *OrderServiceTestSuite) sales(product *models.Product) int64 {
	var stored models.Product
	suite.Require().NoError(suite.db.First(&stored, product.ID).Error)
	return stored.Sales
}

func (suite *OrderServiceTestSuite) TestCreateOrder() {
	order, err := suite.service.CreateOrder(suite.user.ID, suite.orderRequest(
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 30, Quantity: 2},
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 50, Quantity: 1},
		OrderItemRequest{ProductID: suite.oud.ID, Size: 15, Quantity: 1},
	))
	suite.Require().NoError(err)

	suite.Equal(suite.user.Email, order.Email)
	suite.False(order.Completed)
	suite.Require().Len(order.Items, 3)
	// 3.00*30*2 + 3.00*50 + 1.50*15
	suite.Equal("352.50", order.Price().StringFixed(2))
	suite.Equal([]uint{suite.aventus.ID, suite.oud.ID}, order.ProductIDs())

	notified := suite.notifier.WaitForOrders(suite.T(), 1)
	suite.Equal(order.ID, notified[0].ID)
}

func (suite *OrderServiceTestSuite) TestCreateOrderValidation() {
	_, err := suite.service.CreateOrder(suite.user.ID, suite.orderRequest())
	var fields FieldErrors
	suite.Require().True(errors.As(err, &fields))
	suite.Equal(i18n.KeyOrderEmptyItems, fields["items"])

	_, err = suite.service.CreateOrder(suite.user.ID, suite.orderRequest(
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 30, Quantity: 1},
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 30, Quantity: 3},
	))
	suite.Require().True(errors.As(err, &fields))
	suite.Equal(i18n.KeyOrderDuplicateItems, fields["items"])

	_, err = suite.service.CreateOrder(suite.user.ID, suite.orderRequest(
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 20, Quantity: 11},
	))
	suite.Require().True(errors.As(err, &fields))
	suite.Contains(fields, "items[0].size")
	suite.Contains(fields, "items[0].quantity")

	req := suite.orderRequest(OrderItemRequest{ProductID: suite.aventus.ID, Size: 30, Quantity: 1})
	req.Phone = "0501234567"
	_, err = suite.service.CreateOrder(suite.user.ID, req)
	suite.Require().True(errors.As(err, &fields))
	suite.Contains(fields, "phone")

	_, err = suite.service.CreateOrder(suite.user.ID, suite.orderRequest(
		OrderItemRequest{ProductID: 9999, Size: 30, Quantity: 1},
	))
	suite.ErrorIs(err, ErrUnknownProduct)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Order{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *OrderServiceTestSuite) TestListOrdersIsPerUser() {
	other := testutil.CreateUser(suite.T(), suite.db, "other@example.com", false)
	item := OrderItemRequest{ProductID: suite.oud.ID, Size: 15, Quantity: 1}

	_, err := suite.service.CreateOrder(suite.user.ID, suite.orderRequest(item))
	suite.Require().NoError(err)
	_, err = suite.service.CreateOrder(other.ID, suite.orderRequest(item))
	suite.Require().NoError(err)

	orders, err := suite.service.ListOrders(suite.user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Require().Len(orders[0].Items, 1)
	suite.Equal("Creed Royal Oud", orders[0].Items[0].Product.DisplayName())

	_, err = suite.service.GetUserOrder(suite.user.ID, orders[0].ID+1)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestCompleteOrderBumpsSalesOnce() {
	order, err := suite.service.CreateOrder(suite.user.ID, suite.orderRequest(
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 30, Quantity: 2},
		OrderItemRequest{ProductID: suite.aventus.ID, Size: 50, Quantity: 1},
		OrderItemRequest{ProductID: suite.oud.ID, Size: 15, Quantity: 1},
	))
	suite.Require().NoError(err)

	completed, changed, err := suite.service.CompleteOrder(order.ID)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.True(completed.Completed)
	suite.NotNil(completed.CompletedAt)
	suite.Equal(int64(1), suite.sales(suite.aventus))
	suite.Equal(int64(1), suite.sales(suite.oud))

	_, changed, err = suite.service.CompleteOrder(order.ID)
	suite.Require().NoError(err)
	suite.False(changed)
	suite.Equal(int64(1), suite.sales(suite.aventus))
	suite.Equal(int64(1), suite.sales(suite.oud))

	_, _, err = suite.service.CompleteOrder(9999)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestListAllOrders() {
	item := OrderItemRequest{ProductID: suite.oud.ID, Size: 15, Quantity: 1}
	var ids []uint
	for i := 0; i < 3; i++ {
		order, err := suite.service.CreateOrder(suite.user.ID, suite.orderRequest(item))
		suite.Require().NoError(err)
		ids = append(ids, order.ID)
	}
	_, _, err := suite.service.CompleteOrder(ids[0])
	suite.Require().NoError(err)

	page, err := suite.service.ListAllOrders(OrderListParams{Page: 1, PageSize: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(3), page.Count)
	suite.Len(page.Orders, 2)
	suite.NotNil(page.Orders[0].User)

	open := false
	page, err = suite.service.ListAllOrders(OrderListParams{Completed: &open, Page: 1})
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.Count)
	for _, o := range page.Orders {
		suite.False(o.Completed)
	}

	page, err = suite.service.ListAllOrders(OrderListParams{Page: math.MaxInt, PageSize: 2})
	suite.Require().NoError(err)
	suite.Empty(page.Orders)
	suite.Equal(int64(3), page.Count)

	_, err = suite.service.ListAllOrders(OrderListParams{Page: 0})
	suite.ErrorIs(err, ErrInvalidPage)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder() {
	order, err := suite.service.CreateOrder(suite.user.ID, suite.orderRequest(
		OrderItemRequest{ProductID: suite.oud.ID, Size: 15, Quantity: 1},
	))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteOrder(order.ID))
	suite.ErrorIs(suite.service.DeleteOrder(order.ID), ErrNotFound)

	var items int64
	suite.Require().NoError(suite.db.Model(&models.OrderItem{}).Count(&items).Error)
	suite.Zero(items)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
