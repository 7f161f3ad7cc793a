package model

// Address 收件地址
// IsDefault 為 per-user 單例：同一個 user 同時間只能有一筆 is_default=true，
// 由 AddressRepo.SetDefaultAddress 在單一交易內維護
type Address struct {
	AddressID    int64  `gorm:"primaryKey" json:"address_id"`
	UserID       int64  `gorm:"not null;index" json:"user_id"` // 外鍵，關聯到 User
	AddressLine1 string `gorm:"not null;type:varchar(255)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string `gorm:"not null;type:varchar(100)" json:"city"`
	State        string `gorm:"not null;type:varchar(100)" json:"state"`
	ZipCode      string `gorm:"not null;type:varchar(20)" json:"zip_code"`
	Country      string `gorm:"not null;type:varchar(100)" json:"country"`
	IsDefault    bool   `gorm:"not null;default:false" json:"is_default"`
	BaseModel
}
