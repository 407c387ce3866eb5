package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "github.com/postxindia/postx-backend/cmd/api/docs"
	"github.com/postxindia/postx-backend/internal/core/address"
	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/core/chat"
	"github.com/postxindia/postx-backend/internal/core/geo"
	"github.com/postxindia/postx-backend/internal/core/imaging"
	"github.com/postxindia/postx-backend/internal/core/jobs"
	"github.com/postxindia/postx-backend/internal/core/llm"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/pipeline"
	"github.com/postxindia/postx-backend/internal/core/route"
	"github.com/postxindia/postx-backend/internal/core/sorting"
	"github.com/postxindia/postx-backend/internal/handlers"
	"github.com/postxindia/postx-backend/internal/repositories"
	"github.com/postxindia/postx-backend/internal/shared/config"
	"github.com/postxindia/postx-backend/internal/shared/database"
	"github.com/postxindia/postx-backend/internal/shared/utils"
)

// @title PostX India API
// @version 1.0
// @description AI-powered mail sorting and smart routing for India Post
// @contact.name API Support
// @contact.email support@postxindia.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Repositories
	mailRepo := repositories.NewMailRepo(db.GORM)
	sortedRepo := repositories.NewSortedMailRepo(db.GORM)
	docRepo := repositories.NewDocumentRepo(db.GORM)
	complaintRepo := repositories.NewComplaintRepo(db.GORM)
	parcelRepo := repositories.NewParcelRepo(db.GORM)
	identityRepo := repositories.NewIdentityRepo(db.GORM)
	notificationRepo := repositories.NewNotificationRepo(db.GORM)

	// OCR providers and fallback chain
	ocrSpace := ocr.NewOCRSpaceProvider(cfg.OCRSpaceAPIKey)
	ocrChain := ocr.NewChain(
		ocr.NewMistralProvider(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralVisionModel),
		ocr.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel),
		ocrSpace,
	)

	// LLM providers
	mistralLLM := llm.NewMistralProvider(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralParseModel)
	geminiLLM := llm.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)

	// Mail sorting pipeline
	parser := address.NewParser(mistralLLM, geminiLLM)
	classifier := sorting.NewClassifier(geminiLLM)
	mailPipeline := pipeline.New(imaging.NewNormalizer(), ocrChain, parser, classifier)

	// Smart route planner
	pincodeClient := geo.NewPincodeClient(cfg.PincodeAPIURL)
	geocoder := geo.NewNominatimGeocoder(cfg.GeocoderURL)
	directions := geo.NewDirectionsClient(cfg.OpenRouteAPIKey, cfg.OpenRouteURL)
	planner := route.NewPlanner(mailPipeline, pincodeClient, geocoder, directions)

	// Handlers
	mailHandler := handlers.NewMailHandler(mailPipeline, mailRepo)
	routeHandler := handlers.NewRouteHandler(planner, sortedRepo)
	documentHandler := handlers.NewDocumentHandler(ocrSpace, docRepo)
	complaintHandler := handlers.NewComplaintHandler(chat.NewComplaintAnalyzer(geminiLLM), complaintRepo)
	parcelHandler := handlers.NewParcelHandler(parcelRepo)
	identityHandler := handlers.NewIdentityHandler(identityRepo, notificationRepo)
	chatHandler := handlers.NewChatHandler(chat.NewAssistant(geminiLLM))

	// Background jobs
	scheduler := jobs.NewScheduler(mailRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024,
	})

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", handlers.HealthCheck)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	api := app.Group("/api", auth.Middleware(jwtService))

	api.Post("/mail-sorting/process", mailHandler.ProcessMailItem)
	api.Get("/mail-sorting/metrics", mailHandler.GetMetrics)
	api.Post("/smart-mail-route/process", routeHandler.ProcessSmartRoute)
	api.Get("/smart-mail-route/history", routeHandler.GetHistory)
	api.Post("/documents/scan", documentHandler.ScanDocument)
	api.Get("/documents", documentHandler.ListDocuments)
	api.Post("/complaints", complaintHandler.CreateComplaint)
	api.Get("/complaints", complaintHandler.ListComplaints)
	api.Post("/parcels", parcelHandler.RegisterParcel)
	api.Get("/parcels", parcelHandler.ListParcels)
	api.Get("/parcels/:trackingNumber", parcelHandler.GetParcel)
	api.Post("/identity-verifications", identityHandler.SubmitVerification)
	api.Get("/identity-verifications", identityHandler.ListVerifications)
	api.Get("/notifications", identityHandler.ListNotifications)
	api.Post("/chat", chatHandler.Chat)

	log.Printf("🚀 API running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
