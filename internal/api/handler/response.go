package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shopler/internal/api/dto"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError 領域錯誤對應 HTTP status
// validation -> 400, ownership -> 403, not found -> 404, state conflict -> 409
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrInvalidQuantity),
		errors.Is(err, errs.ErrEmptyCart),
		errors.Is(err, errs.ErrInvalidPaymentMethod),
		errors.Is(err, errs.ErrProductUnavailable),
		errors.Is(err, errs.ErrIdentityConflict):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotOwner),
		errors.Is(err, errs.ErrAddressNotOwned):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound),
		errors.Is(err, errs.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ErrorResponse{Error: err.Error()})
}
