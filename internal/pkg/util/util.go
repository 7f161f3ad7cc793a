package util

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

func GenerateOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixNano(), uuid.New().String()[:8])
}

func GeneratePaymentID(orderID string) string {
	return fmt.Sprintf("PAY-%s-%d", orderID, time.Now().Unix())
}

// IsNil 檢查介面是否為 nil
// 注意：這個函數會同時檢查介面的型別和值
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Array, reflect.Chan, reflect.Slice:
		return reflect.ValueOf(i).IsNil()
	}

	return false
}

// HasImplementation 檢查介面是否有具體實體值
func HasImplementation(i interface{}) bool {
	if i == nil {
		return false
	}
	return !reflect.ValueOf(i).IsZero()
}
