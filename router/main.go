package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/upsight-uz/portal-api/config"
	"github.com/upsight-uz/portal-api/database"
	"github.com/upsight-uz/portal-api/handlers"
	auth_handlers "github.com/upsight-uz/portal-api/handlers/auth"
	board_handlers "github.com/upsight-uz/portal-api/handlers/board"
	career_handlers "github.com/upsight-uz/portal-api/handlers/career"
	class_handlers "github.com/upsight-uz/portal-api/handlers/class"
	employee_handlers "github.com/upsight-uz/portal-api/handlers/employee"
	enterance_handlers "github.com/upsight-uz/portal-api/handlers/enterance"
	finance_handlers "github.com/upsight-uz/portal-api/handlers/finance"
	organ_handlers "github.com/upsight-uz/portal-api/handlers/organ"
	site_handlers "github.com/upsight-uz/portal-api/handlers/site"
	student_handlers "github.com/upsight-uz/portal-api/handlers/student"
	university_handlers "github.com/upsight-uz/portal-api/handlers/university"
	"github.com/upsight-uz/portal-api/services/storage"
	"github.com/upsight-uz/portal-api/utils/auth"
	"github.com/upsight-uz/portal-api/utils/cache"
	"github.com/upsight-uz/portal-api/utils/middleware"
)

// newFileStore builds the Spaces client, or a disabled store when the
// credentials are absent so the API still runs without file uploads.
func newFileStore(getEnv *config.EnviornmentVariable) storage.Store {
	if getEnv.SPACES_ACCESS_KEY == "" || getEnv.SPACES_SECRET_KEY == "" || getEnv.SPACES_BUCKET == "" {
		log.Println("Warning: Spaces credentials not set. File uploads will be disabled.")
		return storage.NewDisabledStore()
	}

	store, err := storage.NewSpacesClient(storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize Spaces client: %v. File uploads will be disabled.", err)
		return storage.NewDisabledStore()
	}
	return store
}

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment configuration")
	}

	// Get JWT secret from environment
	jwtSecret := getEnv.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "upsight-portal-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := store.GetDB()

	// Initialize Redis cache for brute force protection
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// File store for logos, pictures and documents
	fileStore := newFileStore(getEnv)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	universityHandler := university_handlers.NewUniversityHandler(db, fileStore)
	studentHandler := student_handlers.NewStudentHandler(db, fileStore)
	employeeHandler := employee_handlers.NewEmployeeHandler(db, fileStore)
	classHandler := class_handlers.NewClassHandler(db)
	enteranceHandler := enterance_handlers.NewEnteranceHandler(db, fileStore)
	organHandler := organ_handlers.NewOrganHandler(db, fileStore)
	careerHandler := career_handlers.NewCareerHandler(db)
	financeHandler := finance_handlers.NewFinanceHandler(db)
	boardHandler := board_handlers.NewBoardHandler(db, fileStore)
	siteHandler := site_handlers.NewSiteHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })

	api := app.Group("/api")

	// Auth routes (public)
	authGroup := api.Group("/auth")

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.Profile)

	// ==================== Management (upsight_staff only) ====================

	management := api.Group("/management", authMiddleware.Required(), authMiddleware.RequireUpsightStaff())

	// Universities and their managers
	universities := management.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)
	universities.Get("/:id", universityHandler.GetUniversity)
	universities.Post("/", universityHandler.CreateUniversity)
	universities.Put("/:id", universityHandler.UpdateUniversity)
	universities.Delete("/:id", universityHandler.DeleteUniversity)
	universities.Post("/:id/logo", universityHandler.UploadLogo)
	universities.Get("/:id/managers", universityHandler.ListManagers)
	universities.Post("/:id/managers", universityHandler.CreateManager)
	universities.Put("/:id/managers/:managerId", universityHandler.UpdateManager)
	universities.Delete("/:id/managers/:managerId", universityHandler.DeleteManager)

	// Students and their documents
	students := management.Group("/students")
	students.Get("/", studentHandler.ListStudents)
	students.Get("/:id", studentHandler.GetStudent)
	students.Post("/", studentHandler.CreateStudent)
	students.Put("/:id", studentHandler.UpdateStudent)
	students.Delete("/:id", studentHandler.DeleteStudent)
	students.Post("/:id/picture", studentHandler.UploadPicture)
	students.Get("/:id/documents", studentHandler.ListDocuments)
	students.Post("/:id/documents", studentHandler.UploadDocument)
	students.Delete("/:id/documents/:documentId", studentHandler.DeleteDocument)

	// Employees and their documents
	employees := management.Group("/employees")
	employees.Get("/", employeeHandler.ListEmployees)
	employees.Get("/:id", employeeHandler.GetEmployee)
	employees.Post("/", employeeHandler.CreateEmployee)
	employees.Put("/:id", employeeHandler.UpdateEmployee)
	employees.Delete("/:id", employeeHandler.DeleteEmployee)
	employees.Post("/:id/picture", employeeHandler.UploadPicture)
	employees.Get("/:id/documents", employeeHandler.ListDocuments)
	employees.Post("/:id/documents", employeeHandler.UploadDocument)
	employees.Delete("/:id/documents/:documentId", employeeHandler.DeleteDocument)

	// Classes with timetables, registrations and payments
	classes := management.Group("/classes")
	classes.Get("/", classHandler.ListClasses)
	classes.Get("/:id", classHandler.GetClass)
	classes.Post("/", classHandler.CreateClass)
	classes.Put("/:id", classHandler.UpdateClass)
	classes.Delete("/:id", classHandler.DeleteClass)
	classes.Get("/:id/timetables", classHandler.ListTimetables)
	classes.Post("/:id/timetables", classHandler.CreateTimetable)
	classes.Put("/:id/timetables/:timetableId", classHandler.UpdateTimetable)
	classes.Delete("/:id/timetables/:timetableId", classHandler.DeleteTimetable)
	classes.Get("/:id/registrations", classHandler.ListRegistrations)
	classes.Post("/:id/registrations", classHandler.CreateRegistration)
	classes.Put("/:id/registrations/:registrationId", classHandler.UpdateRegistration)
	classes.Delete("/:id/registrations/:registrationId", classHandler.DeleteRegistration)
	classes.Get("/:id/payments", classHandler.ListPayments)
	classes.Post("/:id/payments", classHandler.CreatePayment)
	classes.Put("/:id/payments/:paymentId", classHandler.UpdatePayment)
	classes.Delete("/:id/payments/:paymentId", classHandler.DeletePayment)

	// Enterances with registrations, payments and documents
	enterances := management.Group("/enterances")
	enterances.Get("/", enteranceHandler.ListEnterances)
	enterances.Get("/:id", enteranceHandler.GetEnterance)
	enterances.Post("/", enteranceHandler.CreateEnterance)
	enterances.Put("/:id", enteranceHandler.UpdateEnterance)
	enterances.Delete("/:id", enteranceHandler.DeleteEnterance)
	enterances.Get("/:id/registrations", enteranceHandler.ListRegistrations)
	enterances.Post("/:id/registrations", enteranceHandler.CreateRegistration)
	enterances.Put("/:id/registrations/:registrationId", enteranceHandler.UpdateRegistration)
	enterances.Delete("/:id/registrations/:registrationId", enteranceHandler.DeleteRegistration)
	enterances.Get("/:id/payments", enteranceHandler.ListPayments)
	enterances.Post("/:id/payments", enteranceHandler.CreatePayment)
	enterances.Put("/:id/payments/:paymentId", enteranceHandler.UpdatePayment)
	enterances.Delete("/:id/payments/:paymentId", enteranceHandler.DeletePayment)
	enterances.Get("/:id/documents", enteranceHandler.ListDocuments)
	enterances.Post("/:id/documents", enteranceHandler.UploadDocument)
	enterances.Delete("/:id/documents/:documentId", enteranceHandler.DeleteDocument)

	// Organs and their managers
	organs := management.Group("/organs")
	organs.Get("/", organHandler.ListOrgans)
	organs.Get("/:id", organHandler.GetOrgan)
	organs.Post("/", organHandler.CreateOrgan)
	organs.Put("/:id", organHandler.UpdateOrgan)
	organs.Delete("/:id", organHandler.DeleteOrgan)
	organs.Post("/:id/logo", organHandler.UploadLogo)
	organs.Get("/:id/managers", organHandler.ListManagers)
	organs.Post("/:id/managers", organHandler.CreateManager)
	organs.Put("/:id/managers/:managerId", organHandler.UpdateManager)
	organs.Delete("/:id/managers/:managerId", organHandler.DeleteManager)

	// Careers with work history and counselling notes
	careers := management.Group("/careers")
	careers.Get("/", careerHandler.ListCareers)
	careers.Get("/:id", careerHandler.GetCareer)
	careers.Post("/", careerHandler.CreateCareer)
	careers.Put("/:id", careerHandler.UpdateCareer)
	careers.Delete("/:id", careerHandler.DeleteCareer)
	careers.Get("/:id/history", careerHandler.ListHistory)
	careers.Post("/:id/history", careerHandler.CreateHistory)
	careers.Put("/:id/history/:historyId", careerHandler.UpdateHistory)
	careers.Delete("/:id/history/:historyId", careerHandler.DeleteHistory)
	careers.Get("/:id/counsels", careerHandler.ListCounsels)
	careers.Post("/:id/counsels", careerHandler.CreateCounsel)
	careers.Put("/:id/counsels/:counselId", careerHandler.UpdateCounsel)
	careers.Delete("/:id/counsels/:counselId", careerHandler.DeleteCounsel)

	// Finance (read-only merged feed and per-ledger views)
	finance := management.Group("/finance")
	finance.Get("/payments", financeHandler.ListPayments)
	finance.Get("/entrance-payments", financeHandler.ListEntrancePayments)
	finance.Get("/entrance-payments/:id", financeHandler.GetEntrancePayment)
	finance.Get("/class-payments", financeHandler.ListClassPayments)
	finance.Get("/class-payments/:id", financeHandler.GetClassPayment)

	// ==================== Board (any staff, university scoped) ====================

	board := api.Group("/board", authMiddleware.Required(), authMiddleware.RequireStaff())

	news := board.Group("/news")
	news.Get("/", boardHandler.ListNews)
	news.Get("/:id", boardHandler.GetNews)
	news.Post("/", boardHandler.CreateNews)
	news.Put("/:id", boardHandler.UpdateNews)
	news.Delete("/:id", boardHandler.DeleteNews)
	news.Post("/:id/image", boardHandler.UploadNewsImage)

	notices := board.Group("/notices")
	notices.Get("/", boardHandler.ListNotices)
	notices.Get("/:id", boardHandler.GetNotice)
	notices.Post("/", boardHandler.CreateNotice)
	notices.Put("/:id", boardHandler.UpdateNotice)
	notices.Delete("/:id", boardHandler.DeleteNotice)
	notices.Post("/:id/image", boardHandler.UploadNoticeImage)

	translations := board.Group("/translations")
	translations.Get("/", boardHandler.ListTranslations)
	translations.Get("/:id", boardHandler.GetTranslation)
	translations.Post("/", boardHandler.CreateTranslation)
	translations.Put("/:id", boardHandler.UpdateTranslation)
	translations.Delete("/:id", boardHandler.DeleteTranslation)
	translations.Post("/:id/image", boardHandler.UploadTranslationImage)

	informations := board.Group("/informations")
	informations.Get("/", boardHandler.ListInformations)
	informations.Get("/:id", boardHandler.GetInformation)
	informations.Post("/", boardHandler.CreateInformation)
	informations.Put("/:id", boardHandler.UpdateInformation)
	informations.Delete("/:id", boardHandler.DeleteInformation)
	informations.Post("/:id/image", boardHandler.UploadInformationImage)
	informations.Get("/:id/documents", boardHandler.ListInformationDocuments)
	informations.Post("/:id/documents", boardHandler.UploadInformationDocument)
	informations.Delete("/:id/documents/:documentId", boardHandler.DeleteInformationDocument)

	// ==================== Site (public, read-only) ====================

	site := api.Group("/site")
	site.Get("/carousel", siteHandler.ListCarousel)
	site.Get("/news", siteHandler.ListNews)
	site.Get("/news/:id", siteHandler.GetNews)
	site.Get("/persons", siteHandler.ListPersons)
	site.Get("/persons/:id/experiences", siteHandler.ListExperiences)
	site.Get("/galleries", siteHandler.ListGalleries)
	site.Get("/galleries/:id/items", siteHandler.ListGalleryItems)
	site.Get("/about-us", siteHandler.ListAboutUs)
	site.Get("/feedback", siteHandler.ListFeedback)
	site.Get("/report", siteHandler.GetReport)
}
