package api

import "github.com/RoyceAzure/lab/shopler/internal/api/handler"

type Server struct {
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AddressHandler *handler.AddressHandler
	ProductHandler *handler.ProductHandler
}

func NewServer(
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	addressHandler *handler.AddressHandler,
	productHandler *handler.ProductHandler,
) *Server {
	return &Server{
		CartHandler:    cartHandler,
		OrderHandler:   orderHandler,
		AddressHandler: addressHandler,
		ProductHandler: productHandler,
	}
}
