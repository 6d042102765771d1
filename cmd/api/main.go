package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/omnireach/crm-backend/api/routes"
	"github.com/omnireach/crm-backend/internal/config"
	"github.com/omnireach/crm-backend/internal/handlers"
	mongorepo "github.com/omnireach/crm-backend/internal/repositories/mongodb"
	"github.com/omnireach/crm-backend/internal/services"
	"github.com/omnireach/crm-backend/internal/simulation"
	"github.com/omnireach/crm-backend/pkg/cache"
	"github.com/omnireach/crm-backend/pkg/genai"
	"github.com/omnireach/crm-backend/pkg/mongodb"
)

func main() {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC", cfg.Analytics.Timezone)
		loc = time.UTC
	}

	// Repositories
	accountRepo := mongorepo.NewAccountRepository(db)
	campaignRepo := mongorepo.NewCampaignRepository(db)
	logRepo := mongorepo.NewCommunicationLogRepository(db)
	customerRepo := mongorepo.NewCustomerRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	recordRepo := mongorepo.NewDataRecordRepository(db)
	sourceRepo := mongorepo.NewDataSourceRepository(db)
	templateRepo := mongorepo.NewTemplateRepository(db)
	jobRepo := mongorepo.NewScheduledJobRepository(db)

	// Services
	authService := services.NewAuthService(accountRepo, cfg)
	campaignService := services.NewCampaignService(campaignRepo, customerRepo, logRepo, simulation.NewOutcomeModel())
	analyticsService := services.NewAnalyticsService(logRepo, loc)
	customerService := services.NewCustomerService(customerRepo, orderRepo, recordRepo, sourceRepo)
	templateService := services.NewTemplateService(templateRepo)
	schedulerService := services.NewSchedulerService(jobRepo, campaignService,
		time.Duration(cfg.Scheduler.PollIntervalMS)*time.Millisecond)
	aiService := services.NewAIService(
		genai.NewClient(cfg.GenAI.APIKey, cfg.GenAI.BaseURL),
		cache.NewRedisCache(redisClient),
		time.Duration(cfg.GenAI.CacheTTLSec)*time.Second,
	)

	// Handlers
	h := &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Campaign:  handlers.NewCampaignHandler(campaignService, schedulerService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Data:      handlers.NewDataHandler(customerService),
		Template:  handlers.NewTemplateHandler(templateService),
		AI:        handlers.NewAIHandler(aiService),
	}

	router := routes.SetupRouter(cfg, h)

	schedulerService.Start()
	defer schedulerService.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
