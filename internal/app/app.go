package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "tipfit/docs"
	"tipfit/internal/config"
	"tipfit/internal/handlers"
	"tipfit/internal/pdf"
	"tipfit/internal/repositories"
	"tipfit/internal/routes"
	"tipfit/internal/services"
	"tipfit/internal/session"
	"tipfit/internal/utils"
)

func Run() {
	cfg := config.LoadConfig()

	// === Mongo ===
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("failed to connect to mongo: ", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	// === Redis (session cache) ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	tipRepo := repositories.NewTipRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	authService := services.NewAuthService(userRepo)
	otpLimiter := utils.NewRedisRateLimiter(rdb, 5, 10*time.Minute)
	otpService := services.NewOTPService(otpRepo, userRepo, emailService, otpLimiter, cfg.DevMode)
	profileService := services.NewProfileService(userRepo)

	gemini := utils.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	tipService := services.NewTipService(tipRepo, userRepo, gemini)

	reportGen := pdf.NewReportGenerator("./files", "assets/fonts/DejaVuSans.ttf")

	// Session holder backed by redis; restored once at startup.
	sessions := session.NewManager(session.NewRedisStore(rdb))
	sessions.Subscribe(func(s *session.Session) {
		if s == nil {
			log.Printf("[session] cleared")
			return
		}
		log.Printf("[session] active user=%s email=%q", s.UserID, s.Email)
	})
	sessions.Restore(context.Background())

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, otpService, sessions)
	otpHandler := handlers.NewOTPHandler(otpService, sessions, cfg)
	profileHandler := handlers.NewProfileHandler(profileService)
	tipHandler := handlers.NewTipHandler(tipService, profileService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		otpHandler,
		profileHandler,
		tipHandler,
		[]byte(cfg.JWT.Secret),
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
