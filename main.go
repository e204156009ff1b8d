package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-service/internal/assistant"
	"inventory-service/internal/config"
	"inventory-service/internal/cozesync"
	"inventory-service/internal/database"
	"inventory-service/internal/email"
	"inventory-service/internal/llm"
	"inventory-service/internal/middleware"
	"inventory-service/internal/schema"
	"inventory-service/internal/service"
	"inventory-service/internal/transport/http"
	"inventory-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()
	database.InitDB(cfg)
	db := database.GetDB()

	registry := schema.NewRegistry()

	// Smart assistant pipeline: question → SQL → validated read-only execution.
	llmClient := llm.NewClient(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second, cfg.LLMMaxTokens)
	translator := assistant.NewTranslator(llmClient, registry)
	executor := assistant.NewExecutor(db, 100, 15*time.Second)
	assistantService := assistant.NewService(translator, executor, registry)
	log.Printf("🤖 [ASSISTANT] Pipeline initialized (model: %s)", cfg.LLMModel)

	// Coze workflow sync.
	cozeClient := cozesync.NewClient(cfg.CozeAPIURL, cfg.CozeAPIKey,
		time.Duration(cfg.CozeTimeoutSeconds)*time.Second)
	dispatcher := cozesync.NewDispatcher(db, cozeClient, registry)
	log.Printf("🔄 [COZE] Dispatcher initialized (API: %s)", cfg.CozeAPIURL)

	// R2 product image storage, optional.
	var uploader *utils.ProductImageClient
	if cfg.R2AccountID != "" {
		client, err := utils.NewProductImageClient(utils.ProductImageConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatalf("❌ [R2] Failed to initialize client: %v", err)
		}
		uploader = client
		log.Printf("✅ [R2] Product image client initialized (bucket: %s)", cfg.R2BucketName)
	} else {
		log.Println("⚠️ [R2] Disabled (no R2_ACCOUNT_ID), image upload endpoint returns 503")
	}

	// SMTP low-stock reports, optional.
	var mailer *email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg)
		log.Printf("📧 [SMTP] Sender initialized (host: %s)", cfg.SMTPHost)
	} else {
		log.Println("⚠️ [SMTP] Disabled (no SMTP_HOST), low-stock alert endpoint returns 503")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	handler := http.NewHandler(http.HandlerDeps{
		Auth:      authService,
		Products:  service.NewProductService(db, dispatcher),
		Catalog:   service.NewCatalogService(db),
		Suppliers: service.NewSupplierService(db, dispatcher),
		Customers: service.NewCustomerService(db, dispatcher),
		Purchases: service.NewPurchaseOrderService(db, dispatcher),
		Sales:     service.NewSalesOrderService(db, dispatcher),
		Inventory: service.NewInventoryService(db, dispatcher),
		Users:     service.NewUserService(db),
		OpLogs:    service.NewOperationLogService(db),
		CozeSync:  service.NewCozeSyncService(db, dispatcher, registry),
		Assistant: assistantService,

		Uploader:       uploader,
		Mailer:         mailer,
		AlertRecipient: cfg.AlertRecipient,
	})
	log.Println("✅ [SERVICE] Services & handler initialized")

	app := fiber.New(fiber.Config{
		AppName:      "inventory-service",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))

	requireAuth := middleware.BearerAuth(authService)
	requireAdmin := middleware.AdminOnly()

	// Auth
	app.Post("/auth/login", handler.Login)
	app.Get("/auth/me", requireAuth, handler.Me)

	api := app.Group("/api/v1", requireAuth)

	// Products & catalog
	api.Get("/products", handler.ListProducts)
	api.Get("/products/low-stock", handler.LowStockProducts)
	api.Post("/products/upload", handler.UploadProductImage)
	api.Get("/products/:id", handler.GetProduct)
	api.Post("/products", handler.CreateProduct)
	api.Put("/products/:id", handler.UpdateProduct)
	api.Delete("/products/:id", handler.DeleteProduct)

	api.Get("/categories", handler.ListCategories)
	api.Get("/categories/:id", handler.GetCategory)
	api.Post("/categories", handler.CreateCategory)
	api.Put("/categories/:id", handler.UpdateCategory)
	api.Delete("/categories/:id", handler.DeleteCategory)

	api.Get("/product-models", handler.ListProductModels)
	api.Get("/product-models/:id", handler.GetProductModel)
	api.Post("/product-models", handler.CreateProductModel)
	api.Put("/product-models/:id", handler.UpdateProductModel)
	api.Delete("/product-models/:id", handler.DeleteProductModel)

	// Partners
	api.Get("/suppliers", handler.ListSuppliers)
	api.Get("/suppliers/:id", handler.GetSupplier)
	api.Post("/suppliers", handler.CreateSupplier)
	api.Put("/suppliers/:id", handler.UpdateSupplier)
	api.Delete("/suppliers/:id", handler.DeleteSupplier)

	api.Get("/customers", handler.ListCustomers)
	api.Get("/customers/:id", handler.GetCustomer)
	api.Post("/customers", handler.CreateCustomer)
	api.Put("/customers/:id", handler.UpdateCustomer)
	api.Delete("/customers/:id", handler.DeleteCustomer)

	// Orders
	api.Get("/purchase-orders", handler.ListPurchaseOrders)
	api.Get("/purchase-orders/:id", handler.GetPurchaseOrder)
	api.Post("/purchase-orders", handler.CreatePurchaseOrder)
	api.Post("/purchase-orders/:id/complete", handler.CompletePurchaseOrder)
	api.Post("/purchase-orders/:id/cancel", handler.CancelPurchaseOrder)

	api.Get("/sales-orders", handler.ListSalesOrders)
	api.Get("/sales-orders/:id", handler.GetSalesOrder)
	api.Post("/sales-orders", handler.CreateSalesOrder)
	api.Post("/sales-orders/:id/complete", handler.CompleteSalesOrder)
	api.Post("/sales-orders/:id/cancel", handler.CancelSalesOrder)

	// Inventory
	api.Get("/inventory/records", handler.ListInventoryRecords)
	api.Post("/inventory/adjust", handler.AdjustInventory)
	api.Post("/inventory/low-stock-alert", handler.SendLowStockAlert)

	// Smart assistant
	api.Post("/assistant/chat", handler.AssistantChat)
	api.Get("/assistant/info", handler.AssistantInfo)

	// Coze sync templates
	api.Get("/coze-sync-templates", handler.ListSyncTemplates)
	api.Get("/coze-sync-templates/preview", handler.PreviewSync)
	api.Post("/coze-sync-templates/process-pending", handler.ProcessPendingSync)
	api.Get("/coze-sync-templates/:id", handler.GetSyncTemplate)
	api.Post("/coze-sync-templates", handler.CreateSyncTemplate)
	api.Put("/coze-sync-templates/:id", handler.UpdateSyncTemplate)
	api.Post("/coze-sync-templates/:id/manual-sync", handler.ManualSyncTemplate)
	api.Post("/coze-sync-templates/:id/pause", handler.PauseSyncTemplate)
	api.Post("/coze-sync-templates/:id/resume", handler.ResumeSyncTemplate)

	// Users & audit trail, admin only
	admin := app.Group("/api/v1", requireAuth, requireAdmin)
	admin.Get("/users", handler.ListUsers)
	admin.Get("/users/:id", handler.GetUser)
	admin.Post("/users", handler.CreateUser)
	admin.Put("/users/:id", handler.UpdateUser)
	admin.Delete("/users/:id", handler.DeleteUser)
	admin.Get("/operation-logs", handler.ListOperationLogs)

	log.Println("✅ [ROUTES] Registered /auth, /api/v1/*")

	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "inventory-service",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/info", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     "inventory-service",
			"assistant":   assistantService.Info(),
			"imageUpload": uploader != nil,
			"emailAlerts": mailer != nil,
			"cozeApiUrl":  cfg.CozeAPIURL,
		})
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 inventory-service starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s",
		code, c.Method(), c.Path(), errMsg, c.IP())
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": errMsg,
	})
}
