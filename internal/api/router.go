package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/mifinca/fincamanager/docs"
	"github.com/mifinca/fincamanager/internal/api/handler"
	"github.com/mifinca/fincamanager/internal/api/middleware"
	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
	"github.com/mifinca/fincamanager/internal/core/service"
	"github.com/mifinca/fincamanager/internal/infrastructure/config"
	"github.com/mifinca/fincamanager/internal/infrastructure/db/postgres"
	redisinfra "github.com/mifinca/fincamanager/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, recorder ports.ActivityRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fincamanager"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	farmRepo := postgres.NewFarmRepository(db)
	animalRepo := postgres.NewAnimalRepository(db)
	masterDataRepo := postgres.NewMasterDataRepository(db)
	recordRepo := postgres.NewRecordRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	reproductionRepo := postgres.NewReproductionRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	activityRepo := postgres.NewActivityRepository(db)

	denylist := redisinfra.NewTokenDenylist(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	farmService := service.NewFarmService(farmRepo, recorder, log)
	animalService := service.NewAnimalService(animalRepo, farmRepo, masterDataRepo, recorder, log)
	recordService := service.NewRecordService(recordRepo, animalRepo, farmRepo, recorder, log)
	eventService := service.NewEventService(eventRepo, animalRepo, farmRepo, masterDataRepo, recorder, log)
	reproductionService := service.NewReproductionService(reproductionRepo, animalRepo, farmRepo, recorder, log)
	groupService := service.NewGroupService(groupRepo, animalRepo, farmRepo, masterDataRepo, recorder, log)
	masterDataService := service.NewMasterDataService(masterDataRepo, recorder, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	farmHandler := handler.NewFarmHandler(farmService)
	animalHandler := handler.NewAnimalHandler(animalService)
	recordHandler := handler.NewRecordHandler(recordService)
	eventHandler := handler.NewEventHandler(eventService)
	reproductionHandler := handler.NewReproductionHandler(reproductionService)
	groupHandler := handler.NewGroupHandler(groupService)
	masterDataHandler := handler.NewMasterDataHandler(masterDataService)
	activityHandler := handler.NewActivityHandler(activityRepo)

	// --- Public routes ---
	e.POST("/api/signup", authHandler.Signup)
	e.POST("/api/login", authHandler.Login)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	auth := e.Group("/api", middleware.Auth(cfg.JWTSecret, denylist))
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)
	auth.GET("/users/:id", authHandler.GetUser)
	auth.PUT("/users/:id", authHandler.UpdateUser)
	auth.DELETE("/users/:id", authHandler.DeleteUser, adminOnly)

	auth.POST("/farms", farmHandler.Create)
	auth.GET("/farms", farmHandler.List)
	auth.GET("/farms/:id", farmHandler.Get)
	auth.PUT("/farms/:id", farmHandler.Update)
	auth.DELETE("/farms/:id", farmHandler.Delete)
	auth.POST("/farms/:farmID/lots", farmHandler.CreateLot)
	auth.GET("/farms/:farmID/lots", farmHandler.ListLots)
	auth.PUT("/farms/:farmID/lots/:lotID", farmHandler.UpdateLot)
	auth.DELETE("/farms/:farmID/lots/:lotID", farmHandler.DeleteLot)
	auth.POST("/farms/:id/access", farmHandler.GrantAccess)
	auth.GET("/farms/:id/access", farmHandler.ListAccess)
	auth.DELETE("/farms/:id/access/:userID", farmHandler.RevokeAccess)

	auth.POST("/animals", animalHandler.Create)
	auth.GET("/animals", animalHandler.List)
	auth.GET("/animals/:id", animalHandler.Get)
	auth.PUT("/animals/:id", animalHandler.Update)
	auth.DELETE("/animals/:id", animalHandler.Delete)

	auth.POST("/weighings", recordHandler.CreateWeighing)
	auth.GET("/weighings", recordHandler.ListWeighings)
	auth.GET("/weighings/:id", recordHandler.GetWeighing)
	auth.DELETE("/weighings/:id", recordHandler.DeleteWeighing)
	auth.POST("/transactions", recordHandler.CreateTransaction)
	auth.GET("/transactions", recordHandler.ListTransactions)
	auth.GET("/transactions/:id", recordHandler.GetTransaction)
	auth.DELETE("/transactions/:id", recordHandler.DeleteTransaction)
	auth.POST("/location-history", recordHandler.CreateLocationEntry)
	auth.GET("/location-history", recordHandler.ListLocationHistory)
	auth.GET("/location-history/:id", recordHandler.GetLocationEntry)
	auth.PUT("/location-history/:id/exit", recordHandler.CloseLocationEntry)
	auth.DELETE("/location-history/:id", recordHandler.DeleteLocationEntry)

	auth.POST("/health-events", eventHandler.CreateHealthEvent)
	auth.GET("/health-events", eventHandler.ListHealthEvents)
	auth.GET("/health-events/:id", eventHandler.GetHealthEvent)
	auth.DELETE("/health-events/:id", eventHandler.DeleteHealthEvent)
	auth.POST("/feedings", eventHandler.CreateFeeding)
	auth.GET("/feedings", eventHandler.ListFeedings)
	auth.GET("/feedings/:id", eventHandler.GetFeeding)
	auth.DELETE("/feedings/:id", eventHandler.DeleteFeeding)

	auth.POST("/reproductive-events", reproductionHandler.CreateEvent)
	auth.GET("/reproductive-events", reproductionHandler.ListEvents)
	auth.GET("/reproductive-events/:id", reproductionHandler.GetEvent)
	auth.DELETE("/reproductive-events/:id", reproductionHandler.DeleteEvent)
	auth.POST("/reproductive-events/:id/offspring", reproductionHandler.AddOffspring)
	auth.GET("/reproductive-events/:id/offspring", reproductionHandler.ListOffspring)

	auth.POST("/groups", groupHandler.Create)
	auth.GET("/groups", groupHandler.List)
	auth.GET("/groups/:id", groupHandler.Get)
	auth.PUT("/groups/:id", groupHandler.Update)
	auth.DELETE("/groups/:id", groupHandler.Delete)
	auth.POST("/groups/:id/animals", groupHandler.AssignAnimal)
	auth.GET("/groups/:id/animals", groupHandler.ListAssignments)
	auth.DELETE("/groups/:id/animals/:animalID", groupHandler.RemoveAnimal)

	auth.POST("/master-data", masterDataHandler.Create, adminOnly)
	auth.GET("/master-data", masterDataHandler.List)
	auth.GET("/master-data/:id", masterDataHandler.Get)
	auth.PUT("/master-data/:id", masterDataHandler.Update, adminOnly)
	auth.DELETE("/master-data/:id", masterDataHandler.Delete, adminOnly)

	auth.PUT("/config-parameters", masterDataHandler.SetParameter, adminOnly)
	auth.GET("/config-parameters", masterDataHandler.ListParameters)
	auth.GET("/config-parameters/:name", masterDataHandler.GetParameter)
	auth.DELETE("/config-parameters/:name", masterDataHandler.DeleteParameter, adminOnly)

	auth.GET("/activity", activityHandler.List)

	return e
}
