package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostmaster/internal/api"
	"hostmaster/internal/config"
	"hostmaster/internal/database"
	"hostmaster/internal/models"
	"hostmaster/internal/scheduler"
	"hostmaster/internal/services"
	"hostmaster/internal/store"
)

// initDefaultAdmin initializes the default admin account
func initDefaultAdmin(db *gorm.DB, authService *services.AuthService) {
	// Check if admin user already exists
	var existingUser models.User
	if err := db.Where("username = ?", "admin").First(&existingUser).Error; err == nil {
		log.Println("Admin account already exists")
		return
	}

	// Create default admin account (username: admin, password: admin123)
	hashedPassword, err := authService.HashPassword("admin123")
	if err != nil {
		log.Printf("Failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:  "admin",
		Password:  hashedPassword,
		Email:     "admin@hostmaster.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to create default admin account: %v", err)
		return
	}

	log.Println("Default admin account created (username: admin, password: admin123)")
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully")

	// Parse assistant timeout
	timeout, err := time.ParseDuration(cfg.Assistant.Timeout)
	if err != nil {
		timeout = 30 * time.Second
	}

	// Initialize stores
	recordStore := store.NewRecordStore(db)
	settingsStore := store.NewSettingsStore(db)
	teamStore := store.NewTeamStore(db)

	// Initialize services
	center := services.NewNotificationCenter()
	invoicer := services.NewInvoiceService(recordStore, settingsStore, center)
	monitorService := services.NewMonitorService(recordStore, center, invoicer, cfg.Billing.AutoInvoice)
	assistantService := services.NewAssistantService(cfg.Assistant.APIURL, cfg.Assistant.APIKey, cfg.Assistant.Model, timeout)
	mailerService := services.NewMailerService()
	authService := services.NewAuthService()

	// Initialize default admin account
	initDefaultAdmin(db, authService)

	// Initialize scheduler
	sched := scheduler.NewScheduler(monitorService)
	if err := sched.Start(cfg.Monitor.CheckInterval); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup Gin
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Enable CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Setup API routes
	handler := api.NewHandler(db, recordStore, settingsStore, teamStore, center,
		monitorService, invoicer, assistantService, mailerService, authService)
	api.SetupRoutes(r, handler)

	// Serve static files
	r.Static("/static", "./web/dist")

	// Serve frontend
	r.GET("/", func(c *gin.Context) {
		c.File("./web/dist/index.html")
	})

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
