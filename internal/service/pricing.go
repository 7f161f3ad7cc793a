package service

import (
	"github.com/shopspring/decimal"
)

// 運費固定、稅率 10%，金額一律 decimal 運算後取 2 位
var (
	flatShippingFee = decimal.RequireFromString("10.00")
	taxRate         = decimal.RequireFromString("0.10")
)

// PriceQuote 結帳金額試算結果
type PriceQuote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

type IPricingEngine interface {
	Price(subtotal decimal.Decimal) PriceQuote
}

// PricingEngine 純函數，不碰任何儲存
type PricingEngine struct{}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

func (p *PricingEngine) Price(subtotal decimal.Decimal) PriceQuote {
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(flatShippingFee).Add(tax)

	return PriceQuote{
		Subtotal: subtotal,
		Shipping: flatShippingFee,
		Tax:      tax,
		Total:    total,
	}
}

var _ IPricingEngine = (*PricingEngine)(nil)
