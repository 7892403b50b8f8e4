package routes

import (
	"boutiqueos/internal/adapters/cache"
	"boutiqueos/internal/adapters/http/handlers"
	"boutiqueos/internal/adapters/http/middleware"
	"boutiqueos/internal/adapters/persistence/repositories"
	"boutiqueos/internal/config"
	"boutiqueos/internal/core/domain"
	"boutiqueos/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers and declares every
// route
func Setup(app *fiber.App, db *gorm.DB, reportCache cache.ReportCache, cfg *config.Config) {
	// Repositories
	tenantRepo := repositories.NewTenantRepository(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	productRepo := repositories.NewProductRepository(db)
	variantRepo := repositories.NewVariantRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	cashRepo := repositories.NewCashRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	movementRepo := repositories.NewStockMovementRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, tenantRepo, cfg)
	tenantService := services.NewTenantService(tenantRepo, userRepo, cfg)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, variantRepo)
	customerService := services.NewCustomerService(customerRepo)
	cashService := services.NewCashService(cashRepo)
	saleService := services.NewSaleService(saleRepo, productRepo, cashRepo, customerRepo, reportCache)
	stockService := services.NewStockService(productRepo, variantRepo, movementRepo)
	reportService := services.NewReportService(db, reportCache)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	cashHandler := handlers.NewCashHandler(cashService)
	saleHandler := handlers.NewSaleHandler(saleService)
	stockHandler := handlers.NewStockHandler(stockService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health and swagger
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(cfg, userRepo)
	tenantUser := middleware.RequireTenantUser()

	// Auth (public), with the stricter limiter on credential exchange
	authRoutes := app.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/login-json", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)

	// Legacy aliases kept for older clients
	legacyAuth := app.Group("/api/auth")
	legacyAuth.Post("/refresh", authHandler.Refresh)
	legacyAuth.Post("/logout", authHandler.Logout)

	// Tenant administration (super admin)
	superRoutes := app.Group("/super", auth, middleware.RequireAction(domain.ActionManageTenants))
	superRoutes.Get("/tenants", tenantHandler.List)
	superRoutes.Post("/tenants", tenantHandler.Create)
	superRoutes.Get("/tenants/:id", tenantHandler.Get)
	superRoutes.Patch("/tenants/:id", tenantHandler.Update)
	superRoutes.Post("/tenants/:id/change-plan", tenantHandler.ChangePlan)

	// Employee management (tenant admin)
	userRoutes := app.Group("/users", auth, tenantUser, middleware.RequireAction(domain.ActionManageEmployees))
	userRoutes.Get("/employees", userHandler.List)
	userRoutes.Post("/employees", userHandler.Create)

	// Catalog. Reads and variant stock edits are open to every tenant
	// user; create/update need the admin capability. Identity edits on
	// variants are enforced inside the service from the caller's role.
	productRoutes := app.Group("/products", auth, tenantUser)
	productRoutes.Get("/", productHandler.List)
	productRoutes.Get("/search", productHandler.Search)
	productRoutes.Get("/:id", productHandler.Get)
	productRoutes.Post("/", middleware.RequireAction(domain.ActionManageProducts), productHandler.Create)
	productRoutes.Patch("/variants/:id", productHandler.UpdateVariant)
	productRoutes.Patch("/:id", middleware.RequireAction(domain.ActionManageProducts), productHandler.Update)

	// Customers
	customerRoutes := app.Group("/customers", auth, tenantUser, middleware.RequireAction(domain.ActionManageCustomers))
	customerRoutes.Get("/", customerHandler.List)
	customerRoutes.Get("/search", customerHandler.Search)
	customerRoutes.Get("/:id", customerHandler.Get)
	customerRoutes.Post("/", customerHandler.Create)
	customerRoutes.Patch("/:id", customerHandler.Update)

	// Cash register
	cashRoutes := app.Group("/cash", auth, tenantUser, middleware.RequireAction(domain.ActionOperateCash))
	cashRoutes.Get("/open", cashHandler.Current)
	cashRoutes.Post("/open", cashHandler.Open)
	cashRoutes.Post("/:id/close", cashHandler.Close)
	cashRoutes.Post("/:id/withdraw", cashHandler.Withdraw)
	cashRoutes.Get("/:id/withdrawals", cashHandler.ListWithdrawals)

	// Sales
	saleRoutes := app.Group("/sales", auth, tenantUser, middleware.RequireAction(domain.ActionCreateSale))
	saleRoutes.Get("/", saleHandler.List)
	saleRoutes.Post("/", saleHandler.Create)

	// Stock ledger
	stockRoutes := app.Group("/stock", auth, tenantUser, middleware.RequireAction(domain.ActionAdjustStock))
	stockRoutes.Get("/movements", stockHandler.ListMovements)
	stockRoutes.Post("/adjust", stockHandler.Adjust)
	stockRoutes.Get("/low", stockHandler.LowStock)

	// Reports
	reportRoutes := app.Group("/reports", auth, tenantUser, middleware.RequireAction(domain.ActionViewReports))
	reportRoutes.Get("/dashboard", reportHandler.Dashboard)
	reportRoutes.Get("/sales", reportHandler.Sales)
}
