package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kartbay/kartbay/internal/config"
	"github.com/kartbay/kartbay/internal/es"
	"github.com/kartbay/kartbay/internal/events"
	"github.com/kartbay/kartbay/internal/gateway"
	"github.com/kartbay/kartbay/internal/hash"
	"github.com/kartbay/kartbay/internal/httpserver"
	"github.com/kartbay/kartbay/internal/logging"
	mwauth "github.com/kartbay/kartbay/internal/middleware/auth"
	"github.com/kartbay/kartbay/internal/middleware/loggingmw"
	"github.com/kartbay/kartbay/internal/repo"
	"github.com/kartbay/kartbay/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "kartbay")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	var indexer *es.Indexer
	var searchSvc *service.SearchService
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			indexer = &es.Indexer{ES: esClient, Index: cfg.ESIndex}
			searchSvc = &service.SearchService{ES: esClient, Index: cfg.ESIndex}
		}
	}

	var publisher events.Publisher = events.Noop{}
	var kafkaProducer *events.KafkaProducer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaProducer = events.NewKafkaProducer(cfg.KafkaBrokers)
		publisher = kafkaProducer
	}

	gw := gateway.NewHTTPClient(cfg.GatewayURL, cfg.GatewayKeyID, cfg.GatewayKeySecret)

	r := repo.New(db)
	authSvc := &service.AuthService{Repo: r, Hasher: hash.NewBcrypt(), JWTSecret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL}
	userSvc := &service.UserService{Repo: r}
	customerSvc := &service.CustomerService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r, Indexer: indexer, Events: publisher}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r, Events: publisher}
	paymentSvc := &service.PaymentService{Repo: r, Gateway: gw, Secret: []byte(cfg.GatewayKeySecret), Events: publisher}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Auth:       &httpserver.AuthHTTP{Svc: authSvc},
		Users:      &httpserver.UserHTTP{Svc: userSvc},
		Customers:  &httpserver.CustomerHTTP{Svc: customerSvc},
		Brands:     &httpserver.BrandHTTP{Svc: catalogSvc},
		Categories: &httpserver.CategoryHTTP{Svc: catalogSvc},
		Stores:     &httpserver.StoreHTTP{Svc: catalogSvc},
		Products:   &httpserver.ProductHTTP{Svc: catalogSvc},
		Cart:       &httpserver.CartHTTP{Svc: cartSvc},
		Orders:     &httpserver.OrderHTTP{Svc: orderSvc},
		Payments:   &httpserver.PaymentHTTP{Svc: paymentSvc},
		Search:     &httpserver.SearchHTTP{Svc: searchSvc},
		AuthMW:     mwauth.New(db, cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if kafkaProducer != nil {
		_ = kafkaProducer.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server stopped")
}
