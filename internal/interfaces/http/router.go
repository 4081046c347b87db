package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sucursales-pos/internal/application/analytics"
	"github.com/jhoicas/sucursales-pos/internal/application/auth"
	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BranchUC      *usecase.BranchUseCase
	UserUC        *usecase.UserUseCase
	CustomerUC    *usecase.CustomerUseCase
	ProductUC     *usecase.ProductUseCase
	StockUC       *usecase.StockUseCase
	ServiceUC     *usecase.ServiceUseCase
	BookingUC     *usecase.BookingUseCase
	HouseholdUC   *usecase.HouseholdUseCase
	TransactionUC *sales.TransactionUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.UserTypeAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Branches: lectura para todos (selector de sucursal), escritura solo admin
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)

	// Staff (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.TransactionUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/transactions", customerHandler.Transactions)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Product stocks (solo admin)
	stocks := protected.Group("/stocks", adminOnly)
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", stockHandler.List)
	stocks.Post("/", stockHandler.StockIn)
	stocks.Delete("/:id", stockHandler.Delete)

	// Services y categorías
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services := protected.Group("/services")
	services.Get("/", serviceHandler.List)
	services.Post("/", serviceHandler.Create)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	categories := protected.Group("/service-categories")
	categories.Get("/", serviceHandler.Categories)
	categories.Post("/", serviceHandler.CreateCategory)
	categories.Put("/:id", serviceHandler.UpdateCategory)
	categories.Delete("/:id", serviceHandler.DeleteCategory)

	// Bookings
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookings.Get("/", bookingHandler.List)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Put("/:id", bookingHandler.Update)
	bookings.Patch("/:id/status", bookingHandler.UpdateStatus)
	bookings.Delete("/:id", bookingHandler.Delete)

	// Caja y ventas
	txHandler := NewTransactionHandler(deps.TransactionUC)
	protected.Get("/pos/catalog", txHandler.Catalog)
	transactions := protected.Group("/transactions")
	transactions.Get("/", txHandler.List)
	transactions.Post("/", txHandler.Checkout)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Get("/:id/receipt", txHandler.Receipt)
	transactions.Patch("/:id/reference", txHandler.UpdateReference)
	transactions.Patch("/:id/items/:itemId", txHandler.CorrectItem)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Padrón de hogares
	householdHandler := NewHouseholdHandler(deps.HouseholdUC)
	protected.Get("/households/search", householdHandler.Search)
}
