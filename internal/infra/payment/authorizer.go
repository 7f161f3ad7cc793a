package payment

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/pkg/util"
	"github.com/shopspring/decimal"
)

const DeclineReasonTimeout = "timeout"

// Result 授權結果
// decline 是業務結果不是 error：error 只留給基礎設施故障
type Result struct {
	Approved      bool
	PaymentID     string          // 外部金流付款編號，approved 才有值
	Amount        decimal.Decimal // 實際授權金額，必須等於請款金額
	DeclineReason string
}

// IAuthorizer 金流授權邊界
type IAuthorizer interface {
	Authorize(ctx context.Context, orderID string, amount decimal.Decimal, method string) (*Result, error)
}

// StubAuthorizer 模擬金流，無條件核准
// 正式環境替換成真實 gateway adapter，介面不變
type StubAuthorizer struct {
	delay time.Duration // 模擬外部呼叫延遲，測試 timeout 用
}

func NewStubAuthorizer(delay time.Duration) *StubAuthorizer {
	return &StubAuthorizer{delay: delay}
}

func (s *StubAuthorizer) Authorize(ctx context.Context, orderID string, amount decimal.Decimal, method string) (*Result, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Result{
		Approved:  true,
		PaymentID: util.GeneratePaymentID(orderID),
		Amount:    amount,
	}, nil
}

// TimeoutAuthorizer 替被包裝的 authorizer 加上呼叫端可見的 timeout
// 逾時視為 decline（reason=timeout），訂單維持 pending，呼叫端可重試
type TimeoutAuthorizer struct {
	inner   IAuthorizer
	timeout time.Duration
}

func NewTimeoutAuthorizer(inner IAuthorizer, timeout time.Duration) *TimeoutAuthorizer {
	if inner == nil {
		panic("TimeoutAuthorizer dependency inner is nil")
	}
	return &TimeoutAuthorizer{inner: inner, timeout: timeout}
}

func (t *TimeoutAuthorizer) Authorize(ctx context.Context, orderID string, amount decimal.Decimal, method string) (*Result, error) {
	authCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	result, err := t.inner.Authorize(authCtx, orderID, amount, method)
	if err != nil {
		if authCtx.Err() == context.DeadlineExceeded {
			return &Result{Approved: false, DeclineReason: DeclineReasonTimeout}, nil
		}
		return nil, err
	}
	return result, nil
}

var (
	_ IAuthorizer = (*StubAuthorizer)(nil)
	_ IAuthorizer = (*TimeoutAuthorizer)(nil)
)
