package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 需要真實 postgres，設定 SHOPLER_TEST_DB 才會跑
// ex: SHOPLER_TEST_DB="host=localhost user=royce password=royce dbname=shopler_test port=5432 sslmode=disable"
type StoreTestSuite struct {
	suite.Suite
	store Store
	db    *gorm.DB
	ctx   context.Context
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupSuite() {
	dsn := os.Getenv("SHOPLER_TEST_DB")
	if dsn == "" {
		s.T().Skip("SHOPLER_TEST_DB not set, skipping db integration tests")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)

	s.db = conn
	s.ctx = context.Background()
	s.store = NewStore(conn)
	s.Require().NoError(s.store.InitMigrate())
}

func (s *StoreTestSuite) SetupTest() {
	err := s.db.Exec(`TRUNCATE TABLE payments, order_lines, orders, cart_lines, carts, addresses, products, users RESTART IDENTITY CASCADE`).Error
	s.Require().NoError(err)
}

func (s *StoreTestSuite) seedUser(name string) *model.User {
	user := &model.User{UserName: name, UserEmail: name + "@test.local"}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *StoreTestSuite) seedProduct(code, price string) *model.Product {
	product := &model.Product{
		Code:        code,
		Name:        code,
		Price:       decimal.RequireFromString(price),
		Stock:       100,
		IsAvailable: true,
	}
	s.Require().NoError(s.store.CreateProduct(s.ctx, product))
	return product
}

func (s *StoreTestSuite) seedAddress(userID int64, line1 string) *model.Address {
	address := &model.Address{
		UserID:       userID,
		AddressLine1: line1,
		City:         "Taipei",
		State:        "TW",
		ZipCode:      "100",
		Country:      "TW",
	}
	s.Require().NoError(s.store.CreateAddress(s.ctx, address))
	return address
}

func (s *StoreTestSuite) pendingOrder(userID, addressID int64, product *model.Product, quantity int) *model.Order {
	orderID := util.GenerateOrderID()
	amount := product.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return &model.Order{
		OrderID:           orderID,
		UserID:            userID,
		ShippingAddressID: addressID,
		BillingAddressID:  addressID,
		Lines: []model.OrderLine{
			{OrderID: orderID, ProductID: product.ProductID, Quantity: quantity, UnitPrice: product.Price, Amount: amount},
		},
		Subtotal:       amount,
		ShippingAmount: decimal.RequireFromString("10.00"),
		TaxAmount:      amount.Mul(decimal.RequireFromString("0.10")).Round(2),
		TotalAmount:    amount.Add(decimal.RequireFromString("10.00")).Add(amount.Mul(decimal.RequireFromString("0.10")).Round(2)),
		PaymentMethod:  model.PaymentMethodCreditCard,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusUnpaid,
		OrderDate:      time.Now().UTC(),
	}
}

func (s *StoreTestSuite) TestGetOrCreateCartByIdentity() {
	user := s.seedUser("royce")

	cart, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)
	s.Require().NotZero(cart.CartID)

	again, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)
	s.Require().Equal(cart.CartID, again.CartID)

	anon, err := s.store.GetOrCreateCart(s.ctx, model.NewSessionIdentity("sess-abc"))
	s.Require().NoError(err)
	s.Require().NotEqual(cart.CartID, anon.CartID)
}

func (s *StoreTestSuite) TestAddLineQuantityUpsert() {
	user := s.seedUser("royce")
	product := s.seedProduct("SKU-001", "25.00")

	cart, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)

	// 同商品累加，不會撞 (cart_id, product_id) 唯一索引
	s.Require().NoError(s.store.AddLineQuantity(s.ctx, cart.CartID, product.ProductID, 2))
	s.Require().NoError(s.store.AddLineQuantity(s.ctx, cart.CartID, product.ProductID, 3))

	cart, err = s.store.GetCartByID(s.ctx, cart.CartID)
	s.Require().NoError(err)
	s.Require().Len(cart.Lines, 1)
	s.Require().Equal(5, cart.Lines[0].Quantity)
}

func (s *StoreTestSuite) TestDeleteLineAllowsReAdd() {
	user := s.seedUser("royce")
	product := s.seedProduct("SKU-001", "25.00")

	cart, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)
	s.Require().NoError(s.store.AddLineQuantity(s.ctx, cart.CartID, product.ProductID, 2))

	cart, err = s.store.GetCartByID(s.ctx, cart.CartID)
	s.Require().NoError(err)
	s.Require().NoError(s.store.DeleteLine(s.ctx, cart.Lines[0].LineID))

	// 硬刪除後重新加入同商品不能被殘留列擋住
	s.Require().NoError(s.store.AddLineQuantity(s.ctx, cart.CartID, product.ProductID, 1))

	cart, err = s.store.GetCartByID(s.ctx, cart.CartID)
	s.Require().NoError(err)
	s.Require().Len(cart.Lines, 1)
	s.Require().Equal(1, cart.Lines[0].Quantity)
}

func (s *StoreTestSuite) TestCreateAddressWithDefaultFlag() {
	user := s.seedUser("royce")

	a1 := &model.Address{
		UserID: user.UserID, AddressLine1: "1 Main St",
		City: "Taipei", State: "TW", ZipCode: "100", Country: "TW",
		IsDefault: true,
	}
	s.Require().NoError(s.store.CreateAddress(s.ctx, a1))

	a2 := &model.Address{
		UserID: user.UserID, AddressLine1: "2 Side St",
		City: "Taipei", State: "TW", ZipCode: "100", Country: "TW",
		IsDefault: true,
	}
	s.Require().NoError(s.store.CreateAddress(s.ctx, a2))

	// 建立時帶 default 同樣維持單一 default
	addresses, err := s.store.GetAddressesByUserID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Require().Len(addresses, 2)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			s.Require().Equal(a2.AddressID, a.AddressID)
		}
	}
	s.Require().Equal(1, defaults)
}

func (s *StoreTestSuite) TestSetDefaultAddressSingleton() {
	user := s.seedUser("royce")
	a1 := s.seedAddress(user.UserID, "1 Main St")
	a2 := s.seedAddress(user.UserID, "2 Side St")

	s.Require().NoError(s.store.SetDefaultAddress(s.ctx, user.UserID, a1.AddressID))
	s.Require().NoError(s.store.SetDefaultAddress(s.ctx, user.UserID, a2.AddressID))

	addresses, err := s.store.GetAddressesByUserID(s.ctx, user.UserID)
	s.Require().NoError(err)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			s.Require().Equal(a2.AddressID, a.AddressID)
		}
	}
	s.Require().Equal(1, defaults)

	// 別人的地址設不了
	other := s.seedUser("other")
	err = s.store.SetDefaultAddress(s.ctx, other.UserID, a1.AddressID)
	s.Require().ErrorIs(err, errs.ErrNotFound)
}

func (s *StoreTestSuite) TestCreateOrderFromCartClearsCart() {
	user := s.seedUser("royce")
	address := s.seedAddress(user.UserID, "1 Main St")
	product := s.seedProduct("SKU-001", "25.00")

	cart, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)
	s.Require().NoError(s.store.AddLineQuantity(s.ctx, cart.CartID, product.ProductID, 2))

	order := s.pendingOrder(user.UserID, address.AddressID, product, 2)
	s.Require().NoError(s.store.CreateOrderFromCart(s.ctx, order, cart.CartID))

	// 訂單與明細一起落地
	got, err := s.store.GetOrderByID(s.ctx, order.OrderID)
	s.Require().NoError(err)
	s.Require().Len(got.Lines, 1)
	s.Require().Equal(model.OrderStatusPending, got.Status)
	s.Require().Equal(model.PaymentStatusUnpaid, got.PaymentStatus)

	// 來源購物車同一交易清空，cart row 保留
	cart, err = s.store.GetCartByID(s.ctx, cart.CartID)
	s.Require().NoError(err)
	s.Require().Empty(cart.Lines)

	// 清空後可以重新加入同商品
	s.Require().NoError(s.store.AddLineQuantity(s.ctx, cart.CartID, product.ProductID, 1))
}

func (s *StoreTestSuite) TestMarkOrderPaidGuard() {
	user := s.seedUser("royce")
	address := s.seedAddress(user.UserID, "1 Main St")
	product := s.seedProduct("SKU-001", "25.00")

	cart, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)

	order := s.pendingOrder(user.UserID, address.AddressID, product, 2)
	s.Require().NoError(s.store.CreateOrderFromCart(s.ctx, order, cart.CartID))

	pmt := &model.Payment{
		PaymentID: util.GeneratePaymentID(order.OrderID),
		OrderID:   order.OrderID,
		Amount:    order.TotalAmount,
		PaidAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.store.MarkOrderPaid(s.ctx, order.OrderID, pmt))

	got, err := s.store.GetOrderByID(s.ctx, order.OrderID)
	s.Require().NoError(err)
	s.Require().Equal(model.OrderStatusProcessing, got.Status)
	s.Require().Equal(model.PaymentStatusCompleted, got.PaymentStatus)
	s.Require().NotNil(got.Payment)

	// 第二次授權被 guarded update 擋下，不產生第二筆 Payment
	dup := &model.Payment{
		PaymentID: util.GeneratePaymentID(order.OrderID) + "-dup",
		OrderID:   order.OrderID,
		Amount:    order.TotalAmount,
		PaidAt:    time.Now().UTC(),
	}
	err = s.store.MarkOrderPaid(s.ctx, order.OrderID, dup)
	s.Require().ErrorIs(err, errs.ErrInvalidState)

	var count int64
	s.Require().NoError(s.db.Model(&model.Payment{}).Where("order_id = ?", order.OrderID).Count(&count).Error)
	s.Require().Equal(int64(1), count)
}

func (s *StoreTestSuite) TestGetOrdersByUserIDNewestFirst() {
	user := s.seedUser("royce")
	address := s.seedAddress(user.UserID, "1 Main St")
	product := s.seedProduct("SKU-001", "25.00")

	cart, err := s.store.GetOrCreateCart(s.ctx, model.NewUserIdentity(user.UserID))
	s.Require().NoError(err)

	older := s.pendingOrder(user.UserID, address.AddressID, product, 1)
	older.OrderDate = time.Now().UTC().Add(-time.Hour)
	s.Require().NoError(s.store.CreateOrderFromCart(s.ctx, older, cart.CartID))

	newer := s.pendingOrder(user.UserID, address.AddressID, product, 2)
	s.Require().NoError(s.store.CreateOrderFromCart(s.ctx, newer, cart.CartID))

	orders, err := s.store.GetOrdersByUserID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Require().Equal(newer.OrderID, orders[0].OrderID)
	s.Require().Equal(older.OrderID, orders[1].OrderID)
}
