package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/api"
	"github.com/RoyceAzure/lab/shopler/internal/api/handler"
	"github.com/RoyceAzure/lab/shopler/internal/api/router"
	"github.com/RoyceAzure/lab/shopler/internal/appcontext"
	"github.com/RoyceAzure/lab/shopler/internal/config"
	"golang.org/x/sync/errgroup"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	cartHandler := handler.NewCartHandler(app.CartService)
	orderHandler := handler.NewOrderHandler(app.OrderService, app.CartService)
	addressHandler := handler.NewAddressHandler(app.AddressService)
	productHandler := handler.NewProductHandler(app.CatalogService)

	server := api.NewServer(cartHandler, orderHandler, addressHandler, productHandler)

	// 設置路由
	r := router.SetupRouter(server, &app.Logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		return app.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("closed completed")
}
