package main

import (
	"log"
	"os"

	"github.com/factura/factura-api/internal/application/service"
	"github.com/factura/factura-api/internal/config"
	"github.com/factura/factura-api/internal/infrastructure/database"
	"github.com/factura/factura-api/internal/infrastructure/repository"
	"github.com/factura/factura-api/internal/presentation/http/handler"
	"github.com/factura/factura-api/internal/presentation/http/routes"
	"github.com/factura/factura-api/pkg/email"
	"github.com/factura/factura-api/pkg/oauth"
	"github.com/factura/factura-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	clientRepo := repository.NewClientRepository(db)
	itemRepo := repository.NewItemRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.App.FrontendURL + "/auth/success",
		FrontendErrorURL:   cfg.App.FrontendURL + "/auth/error",
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	clientService := service.NewClientService(clientRepo)
	itemService := service.NewItemService(itemRepo)
	quoteService := service.NewQuoteService(quoteRepo, invoiceRepo, itemRepo, clientRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, itemRepo, clientRepo)
	templateService := service.NewTemplateService(templateRepo)
	businessService := service.NewBusinessService(businessRepo, subscriptionRepo, userRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, businessService)
	mailerService := service.NewMailerService(quoteRepo, invoiceRepo, businessRepo, emailService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Client:    handler.NewClientHandler(clientService),
		Item:      handler.NewItemHandler(itemService),
		Quote:     handler.NewQuoteHandler(quoteService, mailerService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, mailerService),
		Template:  handler.NewTemplateHandler(templateService),
		Business:  handler.NewBusinessHandler(businessService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
