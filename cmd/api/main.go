package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"prepwise/internal/adapter"
	"prepwise/internal/adapter/evaluator"
	"prepwise/internal/cache"
	"prepwise/internal/config"
	"prepwise/internal/database"
	"prepwise/internal/handler"
	"prepwise/internal/logger"
	"prepwise/internal/middleware"
	"prepwise/internal/repository"
	"prepwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client for answer feedback
	ollamaHTTPClient := &http.Client{Timeout: cfg.LLM.Timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.LLM.ServerURL),
		ollama.WithModel(cfg.LLM.Model),
		ollama.WithHTTPClient(ollamaHTTPClient),
	)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	questionRepository := repository.NewSQLXQuestionRepository(db)
	answerRepository := repository.NewSQLXAnswerRepository(db)
	sessionRepository := repository.NewSQLXSessionRepository(db)
	communityRepository := repository.NewSQLXCommunityQuestionRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	answerEvaluator := evaluator.NewLLMEvaluator(llm, cfg.LLM.Timeout)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	accessService := service.NewAccessService(cacheAdapter, cfg.CacheTTLs.VisitorCounter)
	questionService := service.NewQuestionService(questionRepository, cacheAdapter, cfg.CacheTTLs.PopularQuestions)
	sessionService := service.NewSessionService(sessionRepository)
	answerService := service.NewAnswerService(answerRepository, questionRepository, answerEvaluator, sessionService)
	communityService := service.NewCommunityService(communityRepository)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("AuthService initialized")

	// Initialize handlers
	questionHandler := handler.NewQuestionHandler(questionService, accessService)
	answerHandler := handler.NewAnswerHandler(answerService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	communityHandler := handler.NewCommunityHandler(communityService)
	authHandler := handler.NewAuthHandler(authService, accessService, cfg)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           300,
	}))
	app.Use(recover.New())
	app.Use(middleware.VisitorID())

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Get("/demo-login", authHandler.DemoLogin)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Get("/user", middleware.Protected(authService), authHandler.GetCurrentUser)
	authGroup.Get("/access-status", middleware.OptionalAuth(authService), authHandler.GetAccessStatus)

	// Question routes. Literal paths are registered before the :id
	// wildcard so /popular and /search never match as question IDs.
	questionGroup := apiGroup.Group("/questions", middleware.OptionalAuth(authService))
	questionGroup.Get("/popular", questionHandler.GetPopularQuestions)
	questionGroup.Get("/search", questionHandler.SearchQuestions)
	questionGroup.Get("/", questionHandler.GetQuestionsByTopic)
	questionGroup.Get("/:id", questionHandler.GetQuestion)

	// Answer routes
	apiGroup.Post("/answers", answerHandler.SubmitAnswer)
	apiGroup.Get("/answers/:id", answerHandler.GetAnswer)

	// Session routes
	apiGroup.Post("/sessions", sessionHandler.CreateSession)
	apiGroup.Get("/sessions/:id", sessionHandler.GetSession)

	// Community routes
	apiGroup.Post("/community-questions", middleware.OptionalAuth(authService), communityHandler.SubmitCommunityQuestion)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
