package constants

// 身分由外部認證層驗證後以 header 傳入，核心只做資料持有者檢查
const (
	UserIDHeader       = "X-User-ID"
	SessionTokenHeader = "X-Session-Token"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)
