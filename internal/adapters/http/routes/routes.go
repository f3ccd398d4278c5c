package routes

import (
	"motorvault/internal/adapters/http/handlers"
	"motorvault/internal/adapters/http/middleware"
	"motorvault/internal/adapters/persistence/repositories"
	"motorvault/internal/config"
	"motorvault/internal/core/services"
	"motorvault/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// quarantine service so the caller can schedule the sweep.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.QuarantineService {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	transferRepo := repositories.NewTransferRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	// Initialize services
	entitlementService := services.NewEntitlementService(cfg.Transfer.Tiers)
	directoryService := services.NewDirectoryService(memberRepo)
	notifyService := services.NewNotificationService(cfg.Notify.WebhookURL)
	memberService := services.NewMemberService(memberRepo, entitlementService)

	clk := clock.System()
	transferService := services.NewTransferService(
		memberRepo,
		vehicleRepo,
		transferRepo,
		auditRepo,
		directoryService,
		entitlementService,
		notifyService,
		clk,
		cfg.Transfer,
	)
	quarantineService := services.NewQuarantineService(
		transferService,
		transferRepo,
		vehicleRepo,
		auditRepo,
		notifyService,
		clk,
		cfg.Transfer,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	memberHandler := handlers.NewMemberHandler(memberService, directoryService)
	transferHandler := handlers.NewTransferHandler(transferService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group, everything below requires a bearer credential
	apiV1 := app.Group("/api/v1", middleware.AuthMiddleware(cfg))

	users := apiV1.Group("/users")
	users.Get("/lookup/:member_number", memberHandler.Lookup)

	user := apiV1.Group("/user")
	user.Post("/upgrade-subscription", memberHandler.UpgradeSubscription)
	user.Get("/entitlements", memberHandler.Entitlements)

	transfers := apiV1.Group("/transfers")
	transfers.Post("/initiate", middleware.TransferRateLimiter(), transferHandler.Initiate)
	transfers.Get("/pending", middleware.NoCacheHeaders(), transferHandler.ListPending)
	transfers.Get("/incoming", middleware.NoCacheHeaders(), transferHandler.ListIncoming)
	transfers.Get("/quarantined", middleware.NoCacheHeaders(), transferHandler.ListQuarantined)
	transfers.Post("/:id/accept", transferHandler.Accept)
	transfers.Post("/:id/reject", transferHandler.Reject)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	return quarantineService
}
