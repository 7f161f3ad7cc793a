package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopler/internal/api/dto"
	"github.com/RoyceAzure/lab/shopler/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts GET /products 型錄瀏覽不需要身分
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListAvailableProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = dto.ToProductResponse(&products[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProduct GET /products/{code}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	product, err := h.catalogService.GetProductByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}
