package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/livingprogress/mentorme-api/config"
	"github.com/livingprogress/mentorme-api/database"
	"github.com/livingprogress/mentorme-api/handlers"
	assignment_handlers "github.com/livingprogress/mentorme-api/handlers/assignment"
	auth_handlers "github.com/livingprogress/mentorme-api/handlers/auth"
	document_handlers "github.com/livingprogress/mentorme-api/handlers/document"
	goal_handlers "github.com/livingprogress/mentorme-api/handlers/goal"
	institution_handlers "github.com/livingprogress/mentorme-api/handlers/institution"
	program_handlers "github.com/livingprogress/mentorme-api/handlers/program"
	task_handlers "github.com/livingprogress/mentorme-api/handlers/task"
	"github.com/livingprogress/mentorme-api/services"
	"github.com/livingprogress/mentorme-api/services/storage"
	"github.com/livingprogress/mentorme-api/utils/auth"
	"github.com/livingprogress/mentorme-api/utils/cache"
	"github.com/livingprogress/mentorme-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "mentorme-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := store.DB()

	// Redis backs brute force protection and the program cache. Both degrade
	// gracefully when it is unreachable.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and caching are disabled.", err)
		redisCache = nil
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)

	// Services
	institutionService := services.NewInstitutionService(db)
	programService := services.NewProgramService(db, redisCache)
	goalService := services.NewGoalService(db)
	taskService := services.NewTaskService(db)
	assignmentService := services.NewAssignmentService(db)

	var documentHandler *document_handlers.DocumentHandler
	spacesClient, err := storage.NewSpacesClient(storage.SpacesConfig{
		AccessKey: getEnv.DO_SPACES_ACCESS_KEY,
		SecretKey: getEnv.DO_SPACES_SECRET_KEY,
		Bucket:    getEnv.DO_SPACES_BUCKET,
		Region:    getEnv.DO_SPACES_REGION,
		Endpoint:  getEnv.DO_SPACES_ENDPOINT,
		CDNURL:    getEnv.DO_SPACES_CDN_URL,
	})
	if err != nil {
		log.Printf("Warning: Failed to create Spaces client: %v. Document uploads are disabled.", err)
	} else {
		documentService := services.NewDocumentService(db, spacesClient)
		documentHandler = document_handlers.NewDocumentHandler(documentService)
	}

	// Handlers
	institutionHandler := institution_handlers.NewInstitutionHandler(institutionService)
	programHandler := program_handlers.NewProgramHandler(programService, assignmentService)
	goalHandler := goal_handlers.NewGoalHandler(goalService)
	taskHandler := task_handlers.NewTaskHandler(taskService, goalService)
	assignmentHandler := assignment_handlers.NewAssignmentHandler(assignmentService)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Admin catalog mutations leave an audit trail.
	institutionAudit := middleware.AuditTrail(db, "institutions")
	programAudit := middleware.AuditTrail(db, "institutional_programs")
	goalAudit := middleware.AuditTrail(db, "goals")
	taskAudit := middleware.AuditTrail(db, "tasks")

	// Institutions
	institutions := api.Group("/institutions")
	institutions.Get("/", institutionHandler.Search)
	institutions.Get("/:id", institutionHandler.Get)
	institutions.Post("/", authMiddleware.RequireAdmin(), institutionAudit, institutionHandler.Create)
	institutions.Put("/:id", authMiddleware.RequireAdmin(), institutionAudit, institutionHandler.Update)
	institutions.Delete("/:id", authMiddleware.RequireAdmin(), institutionAudit, institutionHandler.Delete)

	// Program templates
	programs := api.Group("/institutionalPrograms")
	programs.Get("/", programHandler.Search)
	programs.Get("/:id", programHandler.Get)
	programs.Post("/", authMiddleware.RequireAdmin(), programAudit, programHandler.Create)
	programs.Put("/:id", authMiddleware.RequireAdmin(), programAudit, programHandler.Update)
	programs.Delete("/:id", authMiddleware.RequireAdmin(), programAudit, programHandler.Delete)

	// Cloning and per-template assignment listing
	programs.Post("/:id/clone", authMiddleware.Required(), programHandler.Clone)
	programs.Get("/:id/assignments", authMiddleware.Required(), programHandler.Assignments)

	// Goals nested under programs
	programs.Get("/:id/goals", goalHandler.List)
	programs.Get("/:id/goals/:goalId", goalHandler.Get)
	programs.Post("/:id/goals", authMiddleware.RequireAdmin(), goalAudit, goalHandler.Create)
	programs.Put("/:id/goals/:goalId", authMiddleware.RequireAdmin(), goalAudit, goalHandler.Update)
	programs.Delete("/:id/goals/:goalId", authMiddleware.RequireAdmin(), goalAudit, goalHandler.Delete)
	programs.Post("/:id/goals/:goalId/tasks", authMiddleware.RequireAdmin(), taskAudit, goalHandler.CreateTask)

	// Template tasks
	tasks := api.Group("/tasks")
	tasks.Get("/", taskHandler.Search)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id/customData", authMiddleware.Required(), taskHandler.SetCustomData)
	tasks.Delete("/:id", authMiddleware.RequireAdmin(), taskAudit, taskHandler.Delete)

	// Assignment instances
	assignments := api.Group("/menteeMentorPrograms", authMiddleware.Required())
	assignments.Get("/", assignmentHandler.Search)
	assignments.Get("/:id", assignmentHandler.Get)
	assignments.Put("/tasks/:taskId/progress", assignmentHandler.SetTaskProgress)

	// Program documents
	if documentHandler != nil {
		programs.Post("/:id/documents", authMiddleware.Required(), documentHandler.Upload)
		documents := api.Group("/documents")
		documents.Get("/:id", documentHandler.Get)
		documents.Delete("/:id", authMiddleware.RequireAdmin(), middleware.AuditTrail(db, "documents"), documentHandler.Delete)
	}
}
