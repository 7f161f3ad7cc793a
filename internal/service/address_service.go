package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/util"
	"gorm.io/gorm"
)

type IAddressService interface {
	GetOwnedAddress(ctx context.Context, userID, addressID int64) (*model.Address, error)
	ListAddresses(ctx context.Context, userID int64) ([]model.Address, error)
	CreateAddress(ctx context.Context, address *model.Address) error
	SetDefaultAddress(ctx context.Context, userID, addressID int64) error
}

type AddressService struct {
	addressRepo db.IAddressRepository
}

func NewAddressService(addressRepo db.IAddressRepository) *AddressService {
	if !util.HasImplementation(addressRepo) {
		panic("AddressService dependency addressRepo is nil")
	}
	return &AddressService{addressRepo: addressRepo}
}

// GetOwnedAddress 取地址並驗證持有者
// 結帳選址走這裡，別人的地址回 ErrAddressNotOwned
func (s *AddressService) GetOwnedAddress(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	address, err := s.addressRepo.GetAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, errs.ErrAddressNotOwned
	}
	return address, nil
}

func (s *AddressService) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return s.addressRepo.GetAddressesByUserID(ctx, userID)
}

// CreateAddress 新增地址，default 旗標的單一性由 repo 在同一交易內維護
func (s *AddressService) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.addressRepo.CreateAddress(ctx, address)
}

// SetDefaultAddress 結束時該用戶恰好一筆 default，由 repo 單一交易保證
func (s *AddressService) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	return s.addressRepo.SetDefaultAddress(ctx, userID, addressID)
}

var _ IAddressService = (*AddressService)(nil)
