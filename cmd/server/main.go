package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"council-backend/internal/cache"
	"council-backend/internal/config"
	"council-backend/internal/database"
	"council-backend/internal/db"
	"council-backend/internal/handlers"
	"council-backend/internal/health"
	apphttp "council-backend/internal/http"
	"council-backend/internal/middleware"
	"council-backend/internal/monitoring"
	"council-backend/internal/repositories"
	"council-backend/internal/services"
	"council-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	store := storage.New(cfg)
	if store == nil {
		log.Println("[Storage] Object storage not configured, slip uploads disabled")
	}

	// Repositories
	leaseRepo := repositories.NewLeaseRepository(pool)
	statementRepo := repositories.NewStatementRepository(pool)
	landPaymentRepo := repositories.NewLandPaymentRepository(pool)
	wasteCustomerRepo := repositories.NewWasteCustomerRepository(pool)
	subscriptionRepo := repositories.NewSubscriptionRepository(pool)
	wasteInvoiceRepo := repositories.NewWasteInvoiceRepository(pool)
	wastePaymentRepo := repositories.NewWastePaymentRepository(pool)

	// Services
	leaseService := services.NewLeaseService(leaseRepo)
	statementService := services.NewStatementService(statementRepo, landPaymentRepo, leaseRepo, cfg)
	wasteCustomerService := services.NewWasteCustomerService(wasteCustomerRepo, wasteInvoiceRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, wasteCustomerRepo)
	wasteInvoiceService := services.NewWasteInvoiceService(wasteInvoiceRepo, subscriptionRepo, cfg)
	wastePaymentService := services.NewWastePaymentService(wastePaymentRepo, wasteInvoiceRepo, wasteCustomerRepo, cfg)
	dashboardService := services.NewDashboardService(statementRepo, wasteInvoiceRepo)

	// Handlers
	healthChecker := health.NewHealthChecker(pool)
	leaseHandler := handlers.NewLeaseHandler(leaseService)
	statementHandler := handlers.NewStatementHandler(statementService, store)
	wasteCustomerHandler := handlers.NewWasteCustomerHandler(wasteCustomerService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	invoiceHandler := handlers.NewInvoiceHandler(wasteInvoiceService, wastePaymentService)
	wastePaymentHandler := handlers.NewWastePaymentHandler(wastePaymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := apphttp.NewRouter(
		leaseHandler,
		statementHandler,
		wasteCustomerHandler,
		subscriptionHandler,
		invoiceHandler,
		wastePaymentHandler,
		dashboardHandler,
		healthHandler,
	)

	// Monitoring stats on a side port
	monitoringServer := monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort)
	go monitoringServer.Start()

	corsHandler := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsHandler(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Council billing API running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
