package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/shopler/internal/domain/model/event"
	"github.com/RoyceAzure/lab/shopler/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// in-memory 替身，語意對齊 db 層實作

type fakeCatalog struct {
	products map[int64]*model.Product
}

func newFakeCatalog(products ...*model.Product) *fakeCatalog {
	f := &fakeCatalog{products: make(map[int64]*model.Product)}
	for _, p := range products {
		f.products[p.ProductID] = p
	}
	return f
}

func (f *fakeCatalog) GetProduct(_ context.Context, productID int64) (*model.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) GetAvailableProduct(ctx context.Context, productID int64) (*model.Product, error) {
	p, err := f.GetProduct(ctx, productID)
	if err != nil {
		return nil, errs.ErrProductUnavailable
	}
	if !p.IsAvailable {
		return nil, errs.ErrProductUnavailable
	}
	return p, nil
}

func (f *fakeCatalog) GetProductByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeCatalog) ListAvailableProducts(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.IsAvailable {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

type fakeProductRepo struct {
	nextID   int64
	products map[int64]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*model.Product)}
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *model.Product) error {
	f.nextID++
	product.ProductID = f.nextID
	cp := *product
	f.products[product.ProductID] = &cp
	return nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, productID int64) (*model.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *product
	return &cp, nil
}

func (f *fakeProductRepo) GetProductByCode(_ context.Context, code string) (*model.Product, error) {
	for _, product := range f.products {
		if product.Code == code {
			cp := *product
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) GetAvailableProducts(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, product := range f.products {
		if product.IsAvailable {
			out = append(out, *product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, product *model.Product) error {
	cp := *product
	f.products[product.ProductID] = &cp
	return nil
}

// fakeProductCache broken=true 時所有操作都失敗，驗證快取故障退回 DB
type fakeProductCache struct {
	entries map[int64]*model.Product
	broken  bool
	hits    int
	sets    int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: make(map[int64]*model.Product)}
}

func (f *fakeProductCache) GetProduct(_ context.Context, productID int64) (*model.Product, error) {
	if f.broken {
		return nil, errors.New("cache down")
	}
	product, ok := f.entries[productID]
	if !ok {
		return nil, redis_repo.ErrCacheMiss
	}
	f.hits++
	cp := *product
	return &cp, nil
}

func (f *fakeProductCache) SetProduct(_ context.Context, product *model.Product, _ time.Duration) error {
	if f.broken {
		return errors.New("cache down")
	}
	f.sets++
	cp := *product
	f.entries[product.ProductID] = &cp
	return nil
}

func (f *fakeProductCache) DeleteProduct(_ context.Context, productID int64) error {
	delete(f.entries, productID)
	return nil
}

type fakeCartRepo struct {
	nextCartID int64
	nextLineID int64
	carts      map[int64]*model.Cart
	lines      map[int64]*model.CartLine
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[int64]*model.Cart),
		lines: make(map[int64]*model.CartLine),
	}
}

func (f *fakeCartRepo) cartWithLines(cartID int64) *model.Cart {
	cart := *f.carts[cartID]
	cart.Lines = nil
	for _, line := range f.lines {
		if line.CartID == cartID {
			cart.Lines = append(cart.Lines, *line)
		}
	}
	sort.Slice(cart.Lines, func(i, j int) bool { return cart.Lines[i].LineID < cart.Lines[j].LineID })
	return &cart
}

func (f *fakeCartRepo) GetOrCreateCart(_ context.Context, identity model.CartIdentity) (*model.Cart, error) {
	for id, cart := range f.carts {
		if identity.UserID != nil && cart.UserID != nil && *cart.UserID == *identity.UserID {
			return f.cartWithLines(id), nil
		}
		if identity.SessionToken != nil && cart.SessionToken != nil && *cart.SessionToken == *identity.SessionToken {
			return f.cartWithLines(id), nil
		}
	}
	f.nextCartID++
	cart := &model.Cart{
		CartID:       f.nextCartID,
		UserID:       identity.UserID,
		SessionToken: identity.SessionToken,
	}
	f.carts[cart.CartID] = cart
	return f.cartWithLines(cart.CartID), nil
}

func (f *fakeCartRepo) GetCartByID(_ context.Context, cartID int64) (*model.Cart, error) {
	if _, ok := f.carts[cartID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.cartWithLines(cartID), nil
}

func (f *fakeCartRepo) GetLineByID(_ context.Context, lineID int64) (*model.CartLine, error) {
	line, ok := f.lines[lineID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *line
	return &cp, nil
}

func (f *fakeCartRepo) AddLineQuantity(_ context.Context, cartID, productID int64, quantity int) error {
	for _, line := range f.lines {
		if line.CartID == cartID && line.ProductID == productID {
			line.Quantity += quantity
			return nil
		}
	}
	f.nextLineID++
	f.lines[f.nextLineID] = &model.CartLine{
		LineID:    f.nextLineID,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return nil
}

func (f *fakeCartRepo) UpdateLineQuantity(_ context.Context, lineID int64, quantity int) error {
	if line, ok := f.lines[lineID]; ok {
		line.Quantity = quantity
	}
	return nil
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, lineID int64) error {
	delete(f.lines, lineID)
	return nil
}

func (f *fakeCartRepo) ClearCart(_ context.Context, cartID int64) error {
	for id, line := range f.lines {
		if line.CartID == cartID {
			delete(f.lines, id)
		}
	}
	return nil
}

type fakeAddressRepo struct {
	nextID    int64
	addresses map[int64]*model.Address
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[int64]*model.Address)}
}

func (f *fakeAddressRepo) CreateAddress(_ context.Context, address *model.Address) error {
	if address.IsDefault {
		for _, existing := range f.addresses {
			if existing.UserID == address.UserID {
				existing.IsDefault = false
			}
		}
	}
	f.nextID++
	address.AddressID = f.nextID
	cp := *address
	f.addresses[address.AddressID] = &cp
	return nil
}

func (f *fakeAddressRepo) GetAddressByID(_ context.Context, addressID int64) (*model.Address, error) {
	address, ok := f.addresses[addressID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *address
	return &cp, nil
}

func (f *fakeAddressRepo) GetAddressesByUserID(_ context.Context, userID int64) ([]model.Address, error) {
	var out []model.Address
	for _, address := range f.addresses {
		if address.UserID == userID {
			out = append(out, *address)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddressID < out[j].AddressID })
	return out, nil
}

func (f *fakeAddressRepo) SetDefaultAddress(_ context.Context, userID, addressID int64) error {
	target, ok := f.addresses[addressID]
	if !ok || target.UserID != userID {
		return errs.ErrNotFound
	}
	for _, address := range f.addresses {
		if address.UserID == userID {
			address.IsDefault = address.AddressID == addressID
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders       map[string]*model.Order
	payments     map[string]*model.Payment
	clearedCarts []int64

	// 模擬並發：讀到的狀態落後於實際狀態，逼出 guarded update 的擋法
	staleReads bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[string]*model.Order),
		payments: make(map[string]*model.Payment),
	}
}

func (f *fakeOrderRepo) CreateOrderFromCart(_ context.Context, order *model.Order, cartID int64) error {
	cp := *order
	f.orders[order.OrderID] = &cp
	f.clearedCarts = append(f.clearedCarts, cartID)
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, orderID string) (*model.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *order
	if f.staleReads {
		cp.Status = model.OrderStatusPending
		cp.PaymentStatus = model.PaymentStatusUnpaid
	}
	if pmt, ok := f.payments[orderID]; ok && !f.staleReads {
		pcp := *pmt
		cp.Payment = &pcp
	}
	return &cp, nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(_ context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeOrderRepo) MarkOrderPaid(_ context.Context, orderID string, pmt *model.Payment) error {
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusUnpaid {
		return errs.ErrInvalidState
	}
	order.Status = model.OrderStatusProcessing
	order.PaymentStatus = model.PaymentStatusCompleted
	cp := *pmt
	f.payments[orderID] = &cp
	return nil
}

// scriptedAuthorizer 依序回放預設結果，未排定時無條件核准
type scriptedAuthorizer struct {
	results []*payment.Result
	calls   int
}

func (a *scriptedAuthorizer) Authorize(_ context.Context, orderID string, amount decimal.Decimal, _ string) (*payment.Result, error) {
	i := a.calls
	a.calls++
	if i < len(a.results) && a.results[i] != nil {
		cp := *a.results[i]
		return &cp, nil
	}
	return &payment.Result{
		Approved:  true,
		PaymentID: "PAY-" + orderID + "-test",
		Amount:    amount,
	}, nil
}

type captureProducer struct {
	events []evt_model.Event
}

func (p *captureProducer) ProduceOrderEvent(_ context.Context, _ int64, evt evt_model.Event) error {
	p.events = append(p.events, evt)
	return nil
}

func (p *captureProducer) Close() error { return nil }
