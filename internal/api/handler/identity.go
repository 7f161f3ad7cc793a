package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopler/internal/constants"
	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
)

// 認證在核心之外完成，這裡只解析已驗證的身分 header

func userIDFromRequest(r *http.Request) (int64, bool) {
	raw := r.Header.Get(constants.UserIDHeader)
	if raw == "" {
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// cartIdentityFromRequest user 與 session 同時出現視為 session 處理錯誤
func cartIdentityFromRequest(r *http.Request) (model.CartIdentity, error) {
	userID, hasUser := userIDFromRequest(r)
	sessionToken := r.Header.Get(constants.SessionTokenHeader)

	if hasUser && sessionToken != "" {
		return model.CartIdentity{}, errs.ErrIdentityConflict
	}
	if hasUser {
		return model.NewUserIdentity(userID), nil
	}
	if sessionToken != "" {
		return model.NewSessionIdentity(sessionToken), nil
	}
	return model.CartIdentity{}, errs.ErrIdentityConflict
}
