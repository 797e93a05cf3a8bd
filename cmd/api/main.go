package main

import (
	"context"
	"log"

	catalogapp "shop_api/internal/application/catalog"
	orderapp "shop_api/internal/application/order"
	"shop_api/internal/config"
	ginserver "shop_api/internal/infrastructure/http/gin"
	kafkainfra "shop_api/internal/infrastructure/messaging/kafka"
	"shop_api/internal/infrastructure/persistence/postgres"
	"shop_api/internal/interfaces/http/handler"
	"shop_api/internal/interfaces/http/router"
	"shop_api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("create logger failed: %v", err)
	}
	defer func() {
		_ = appLog.Sync()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		appLog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		appLog.Fatal("ensure schema failed", logger.Error(err))
	}

	orderRepo := postgres.NewOrderRepository(pool)
	priceLedger := postgres.NewPriceLedger(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	var events orderapp.EventPublisher
	if cfg.Kafka.EventsOn {
		producer, err := kafkainfra.NewOrderEventProducer(cfg.Kafka, appLog)
		if err != nil {
			appLog.Fatal("kafka producer failed", logger.Error(err))
		}
		defer producer.Close(ctx)
		events = producer
	}

	dispatcher := orderapp.NewDispatcher(orderRepo, events, appLog, cfg.Dispatch.Delay)
	defer dispatcher.Stop()

	orderService := orderapp.NewService(orderRepo, priceLedger, dispatcher, events, appLog)
	catalogService := catalogapp.NewService(catalogRepo)

	orderHandler := handler.NewOrderHandler(orderService, appLog)
	catalogHandler := handler.NewCatalogHandler(catalogService, appLog)

	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, cfg.API, orderHandler, catalogHandler)

	server := ginserver.NewServer(cfg.Server, engine)
	appLog.Info("server starting", logger.String("addr", cfg.Server.Address()))
	if err := server.Run(); err != nil {
		appLog.Fatal("server run failed", logger.Error(err))
	}
}
