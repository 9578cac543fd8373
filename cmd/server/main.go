package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scentra-be/internal/address"
	"scentra-be/internal/banner"
	"scentra-be/internal/cart"
	"scentra-be/internal/category"
	"scentra-be/internal/config"
	"scentra-be/internal/handler"
	"scentra-be/internal/inventory"
	"scentra-be/internal/logger"
	"scentra-be/internal/order"
	"scentra-be/internal/product"
	"scentra-be/internal/storage"
	"scentra-be/internal/user"
	"scentra-be/internal/wishlist"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	db := store.DB()

	productRepo := product.NewRepository(db)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(db)
	categorySvc := category.NewService(categoryRepo)

	bannerRepo := banner.NewRepository(db)
	bannerSvc := banner.NewService(bannerRepo)

	cartRepo := cart.NewRepository(db)
	cartSvc := cart.NewService(cartRepo, productRepo)

	wishlistRepo := wishlist.NewRepository(db)
	wishlistSvc := wishlist.NewService(wishlistRepo, productRepo)

	addressRepo := address.NewRepository(db)
	addressSvc := address.NewService(addressRepo)

	ledger := inventory.NewLedger()
	orderRepo := order.NewRepository(db)
	orderSvc := order.NewService(store, orderRepo, ledger, cfg.TxTimeout)

	router := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(userSvc),
		Product:  handler.NewProductHandler(productSvc),
		Category: handler.NewCategoryHandler(categorySvc),
		Banner:   handler.NewBannerHandler(bannerSvc),
		Cart:     handler.NewCartHandler(cartSvc),
		Wishlist: handler.NewWishlistHandler(wishlistSvc),
		Address:  handler.NewAddressHandler(addressSvc),
		Order:    handler.NewOrderHandler(orderSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
