package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   int64           `gorm:"primaryKey" json:"product_id"`
	Code        string          `gorm:"not null;type:varchar(100);unique" json:"code"`
	Name        string          `gorm:"not null;type:varchar(100)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock       uint            `gorm:"not null;type:int" json:"stock"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	Category    string          `gorm:"type:varchar(50)" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	BaseModel
}
