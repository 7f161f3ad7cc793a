package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    uint = 0 // 待付款
	OrderStatusProcessing uint = 1 // 已授權，處理中
	OrderStatusCompleted  uint = 2 // 已完成
	OrderStatusCancelled  uint = 3 // 已取消
)

const (
	PaymentStatusUnpaid    uint = 0
	PaymentStatusCompleted uint = 1
)

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodPaypal     = "paypal"
)

func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCreditCard, PaymentMethodPaypal:
		return true
	default:
		return false
	}
}

// Order 結帳當下的不可變快照
// 建立後金額與明細不再變動，只有 Status / PaymentStatus 會轉移
// 不變量: TotalAmount = Subtotal + ShippingAmount + TaxAmount，Subtotal = Σ line.Amount
type Order struct {
	OrderID           string          `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	UserID            int64           `gorm:"not null;index" json:"user_id"` // 外鍵，關聯到 User
	ShippingAddressID int64           `gorm:"not null" json:"shipping_address_id"`
	BillingAddressID  int64           `gorm:"not null" json:"billing_address_id"`
	Lines             []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"` // 一對多，級聯刪除
	Payment           *Payment        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment"`
	Subtotal          decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"subtotal"`
	ShippingAmount    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"shipping_amount"`
	TaxAmount         decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"tax_amount"`
	TotalAmount       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	PaymentMethod     string          `gorm:"not null;type:varchar(20)" json:"payment_method"`
	Status            uint            `gorm:"not null;default:0" json:"status"`
	PaymentStatus     uint            `gorm:"not null;default:0" json:"payment_status"`
	OrderDate         time.Time       `gorm:"not null" json:"order_date"`
	BaseModel
}

// OrderLine 單價為下單當下快照，之後商品改價不影響
type OrderLine struct {
	OrderID   string          `gorm:"primaryKey;type:varchar(64)" json:"order_id"`
	ProductID int64           `gorm:"primaryKey" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"unit_price"`
	Amount    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	BaseModel
}

// Payment 與 Order 一對一，授權成功後建立一次，不再變動
type Payment struct {
	PaymentID string          `gorm:"primaryKey;type:varchar(128)" json:"payment_id"`
	OrderID   string          `gorm:"not null;uniqueIndex;type:varchar(64)" json:"order_id"`
	Amount    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	BaseModel
}

// for event payload
type OrderLineData struct {
	OrderID   string          `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}
