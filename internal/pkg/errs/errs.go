package errs

import "errors"

// 核心操作共用的領域錯誤
// 分類:
//   - validation: 呼叫端輸入錯誤，不重試
//   - ownership:  資源不屬於呼叫者，視為授權失敗
//   - state:      狀態衝突（例如重複授權付款）
//   - not found:  資源不存在
//
// Payment Authorizer 的 decline / timeout 不是錯誤，是業務結果，不在此列
var (
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")

	ErrNotOwner        = errors.New("resource does not belong to caller")
	ErrAddressNotOwned = errors.New("address does not belong to user")

	ErrInvalidState  = errors.New("order state does not allow this operation")
	ErrOrderNotFound = errors.New("order not found")

	ErrNotFound           = errors.New("resource not found")
	ErrProductUnavailable = errors.New("product does not exist or is not available")
	ErrIdentityConflict   = errors.New("cart identity must be exactly one of user id or session token")

	ErrPaymentAmountMismatch = errors.New("authorized amount does not match order total")
)
