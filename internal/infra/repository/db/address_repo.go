package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"gorm.io/gorm"
)

// IAddressRepository Address 相關操作介面
type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, addressID int64) (*model.Address, error)
	GetAddressesByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	SetDefaultAddress(ctx context.Context, userID, addressID int64) error
}

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

// CreateAddress 新增地址
// 帶 is_default 時清掉該用戶其他 default 與建立走同一個交易，
// 中途失敗整筆回滾，不會留下已建立但沒套用 default 的地址
func (r *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&model.Address{}).
				Where("user_id = ?", address.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (r *AddressRepo) GetAddressByID(ctx context.Context, addressID int64) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).First(&address, "address_id = ?", addressID).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepo) GetAddressesByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("address_id ASC").Find(&addresses).Error
	return addresses, err
}

// SetDefaultAddress 設定預設地址
// 先清掉該用戶其他 is_default 再設定目標，放在同一個交易避免同用戶並發請求
// 留下兩筆 default；結束時該用戶恰好一筆 is_default=true
func (r *AddressRepo) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Address{}).
			Where("user_id = ? AND address_id <> ?", userID, addressID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Address{}).
			Where("address_id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

var _ IAddressRepository = (*AddressRepo)(nil)
