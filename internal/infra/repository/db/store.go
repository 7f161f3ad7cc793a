package db

import (
	"gorm.io/gorm"
)

// Store 統一的資料庫介面
type Store interface {
	GetDB() *gorm.DB
	InitMigrate() error

	ICartRepository
	IAddressRepository
	IProductRepository
	IOrderRepository
}

// StoreImpl 以 embedding 聚合各 repo
type StoreImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*CartRepo
	*AddressRepo
	*ProductRepo
	*OrderRepo
}

func NewStore(conn *gorm.DB) *StoreImpl {
	dbDao := NewDbDao(conn)
	return &StoreImpl{
		db:          conn,
		dbDao:       dbDao,
		CartRepo:    NewCartRepo(dbDao),
		AddressRepo: NewAddressRepo(dbDao),
		ProductRepo: NewProductRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
	}
}

func (s *StoreImpl) GetDB() *gorm.DB {
	return s.db
}

func (s *StoreImpl) InitMigrate() error {
	return s.dbDao.InitMigrate()
}

var _ Store = (*StoreImpl)(nil)
