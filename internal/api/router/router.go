package router

import (
	"github.com/RoyceAzure/lab/shopler/internal/api"
	m "github.com/RoyceAzure/lab/shopler/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{code}", server.ProductHandler.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/lines", server.CartHandler.AddLine)
			r.Put("/lines/{lineID}", server.CartHandler.UpdateLine)
			r.Delete("/lines/{lineID}", server.CartHandler.RemoveLine)
		})

		r.Post("/checkout", server.OrderHandler.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/{orderID}", server.OrderHandler.GetOrder)
			r.Post("/{orderID}/payment", server.OrderHandler.AuthorizePayment)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", server.AddressHandler.ListAddresses)
			r.Post("/", server.AddressHandler.CreateAddress)
			r.Post("/{addressID}/default", server.AddressHandler.SetDefault)
		})
	})

	return r
}
