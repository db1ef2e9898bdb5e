package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"videorental/internal/config"
	"videorental/internal/database"
	"videorental/internal/domain/audit"
	"videorental/internal/domain/auth"
	"videorental/internal/domain/catalog"
	"videorental/internal/domain/client"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/inventory"
	"videorental/internal/domain/rental"
	"videorental/internal/domain/stats"
	"videorental/internal/domain/tariff"
	"videorental/internal/middleware"
	"videorental/internal/pkg/jwt"
)

// App holds the wired services and the HTTP router.
type App struct {
	Router *gin.Engine
	JWT    *jwt.Service

	Employees *employee.Service
	Catalog   *catalog.Service
	Inventory *inventory.Service
	Clients   *client.Service
	Tariffs   *tariff.Service
	Rentals   *rental.Service
	Audit     *audit.Service
	Hub       *audit.Hub
}

// New wires every service against db and builds the router.
func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	sqlxDB, err := database.SQLX(db)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JWT.Secret, cfg.JWT.TTL)

	hub := audit.NewHub()
	auditRepo := audit.NewRepository(db)
	recorder := audit.NewRecorder(auditRepo, hub)
	auditService := audit.NewService(auditRepo)

	employeeService := employee.NewService(employee.NewRepository(db), recorder)
	catalogService := catalog.NewService(catalog.NewRepository(db), recorder)

	unitLedger := inventory.NewLedger(db)
	inventoryService := inventory.NewService(inventory.NewRepository(db), unitLedger, catalogService, recorder)

	clientLedger := client.NewLedger(db)
	clientService := client.NewService(client.NewRepository(db), clientLedger, recorder)

	tariffService := tariff.NewService(tariff.NewRepository(db), recorder, catalogService)

	rentalService := rental.NewService(rental.Deps{
		Repo:         rental.NewRepository(db),
		Units:        inventoryService,
		UnitLedger:   unitLedger,
		Clients:      clientService,
		ClientLedger: clientLedger,
		Tariffs:      tariffService,
		Genres:       catalogService,
		Audit:        recorder,
	})

	authService := auth.NewService(employeeService, rentalService, jwtService, recorder)
	statsService := stats.NewService(stats.NewRepository(sqlxDB))

	a := &App{
		JWT:       jwtService,
		Employees: employeeService,
		Catalog:   catalogService,
		Inventory: inventoryService,
		Clients:   clientService,
		Tariffs:   tariffService,
		Rentals:   rentalService,
		Audit:     auditService,
		Hub:       hub,
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
		middleware.Origin(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	auditHandler := audit.NewHandler(auditService, hub, jwtService)
	audit.RegisterFeedRoutes(r, auditHandler)

	authHandler := auth.NewHandler(authService)
	api := r.Group("/api")
	authHandler.RegisterPublicRoutes(api, middleware.RateLimit(cfg.HTTP.LoginRatePerMinute))

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		audit.RegisterProfileRoutes(protected, auditHandler)

		clientHandler := client.NewHandler(clientService)
		catalogHandler := catalog.NewHandler(catalogService)
		inventoryHandler := inventory.NewHandler(inventoryService)
		tariffHandler := tariff.NewHandler(tariffService)

		client.RegisterRoutes(protected, clientHandler)
		catalog.RegisterRoutes(protected, catalogHandler)
		inventory.RegisterRoutes(protected, inventoryHandler)
		tariff.RegisterRoutes(protected, tariffHandler)
		rental.RegisterRoutes(protected, rental.NewHandler(rentalService))
		stats.RegisterRoutes(protected, stats.NewHandler(statsService))

		admin := protected.Group("")
		admin.Use(middleware.AdminOnly())
		{
			client.RegisterAdminRoutes(admin, clientHandler)
			catalog.RegisterAdminRoutes(admin, catalogHandler)
			inventory.RegisterAdminRoutes(admin, inventoryHandler)
			tariff.RegisterAdminRoutes(admin, tariffHandler)
			employee.RegisterAdminRoutes(admin, employee.NewHandler(employeeService))
		}
	}

	a.Router = r
	return a, nil
}
