package model

import (
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
)

// CartIdentity 購物車持有者
// UserID 與 SessionToken 恰好一個有值：登入用戶用 UserID，匿名 session 用 SessionToken
// 不使用任何 request-scope 全域狀態，由呼叫端明確傳入
type CartIdentity struct {
	UserID       *int64
	SessionToken *string
}

func NewUserIdentity(userID int64) CartIdentity {
	return CartIdentity{UserID: &userID}
}

func NewSessionIdentity(token string) CartIdentity {
	return CartIdentity{SessionToken: &token}
}

// Validate 兩者都有值或都沒值 視為 session 處理錯誤
func (i CartIdentity) Validate() error {
	if (i.UserID == nil) == (i.SessionToken == nil) {
		return errs.ErrIdentityConflict
	}
	return nil
}

// Cart 購物車
// cart row 本身跨結帳重用，只有 lines 會在結帳成功當下被清空
type Cart struct {
	CartID       int64      `gorm:"primaryKey" json:"cart_id"`
	UserID       *int64     `gorm:"uniqueIndex" json:"user_id"`
	SessionToken *string    `gorm:"uniqueIndex;type:varchar(255)" json:"session_token"`
	Lines        []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"lines"` // 一對多，級聯刪除
	BaseModel
}

// CartLine 同一個 (cart, product) 只會有一筆，加入既有商品走數量累加
type CartLine struct {
	LineID    int64 `gorm:"primaryKey" json:"line_id"`
	CartID    int64 `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	BaseModel
}
