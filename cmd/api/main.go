package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oral0005/backend-posylka/internal/api"
	"github.com/oral0005/backend-posylka/internal/application/factories/infrastructure"
	"github.com/oral0005/backend-posylka/internal/auth"
	"github.com/oral0005/backend-posylka/internal/config"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
	redisInfra "github.com/oral0005/backend-posylka/internal/infrastructure/redis"
	"github.com/oral0005/backend-posylka/internal/infrastructure/sms"
	"github.com/oral0005/backend-posylka/internal/usecase"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	infraFactory := infrastructure.NewFactory(cfg)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	redisClient, err := infraFactory.Redis(ctx)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	// Repositories
	postRepo := postgres.NewPostRepository(pgPool)
	userRepo := postgres.NewUserRepository(pgPool)
	requestRepo := postgres.NewRequestRepository(pgPool)
	notificationRepo := postgres.NewNotificationRepository(pgPool)
	outboxRepo := postgres.NewOutboxRepository(pgPool)
	priceRepo := postgres.NewPriceRepository(pgPool)
	txManager := postgres.NewTxManager(pgPool)

	// Auth and collaborators
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("failed to init token manager", "error", err)
		os.Exit(1)
	}

	codeStore := redisInfra.NewVerifyStore(redisClient, cfg.Verify.CodeTTL)

	var smsSender sms.Sender = sms.LogSender{}
	if cfg.Verify.Configured() {
		smsSender = sms.NewClient(sms.ClientConfig{
			BaseURL:    cfg.Verify.SMSBaseURL,
			AccountSID: cfg.Verify.SMSAccountSID,
			AuthToken:  cfg.Verify.SMSAuthToken,
			From:       cfg.Verify.SMSFrom,
		})
	}

	// UseCases
	handlers := api.NewHandlers(api.HandlersDeps{
		CreatePost:        usecase.NewCreatePost(postRepo),
		UpdatePost:        usecase.NewUpdatePost(postRepo),
		DeletePost:        usecase.NewDeletePost(postRepo),
		CancelPost:        usecase.NewCancelPost(postRepo),
		GetPosts:          usecase.NewGetPosts(postRepo, userRepo),
		ListRequests:      usecase.NewListPendingRequests(postRepo, requestRepo),
		RequestActivation: usecase.NewRequestActivation(txManager, postRepo, requestRepo, userRepo, notificationRepo, outboxRepo),
		AcceptRequest:     usecase.NewAcceptRequest(txManager, postRepo, requestRepo, notificationRepo, outboxRepo),
		RejectRequest:     usecase.NewRejectRequest(txManager, postRepo, requestRepo, notificationRepo, outboxRepo),
		MarkDelivered:     usecase.NewMarkDelivered(txManager, postRepo, userRepo, notificationRepo, outboxRepo),
		ConfirmCompletion: usecase.NewConfirmCompletion(txManager, postRepo, userRepo, notificationRepo, outboxRepo),
		RateUser:          usecase.NewRateUser(txManager, postRepo, userRepo),
		Register:          usecase.NewRegister(userRepo),
		Login:             usecase.NewLogin(userRepo, tokens),
		GetProfile:        usecase.NewGetProfile(userRepo),
		SendVerification:  usecase.NewSendVerification(userRepo, codeStore, smsSender),
		CheckVerification: usecase.NewCheckVerification(userRepo, codeStore),
		Notifications:     usecase.NewNotifications(notificationRepo),
		RecommendPrice:    usecase.NewRecommendPrice(redisClient, priceRepo),
	})

	apiHandler := api.NewRouter(handlers, tokens, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: apiHandler,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
