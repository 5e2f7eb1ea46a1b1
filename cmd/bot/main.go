package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hobbs-it/helpdesk-bot/internal/application/intake"
	"github.com/hobbs-it/helpdesk-bot/internal/application/verify"
	"github.com/hobbs-it/helpdesk-bot/internal/config"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/dynamo"
	jwtinfra "github.com/hobbs-it/helpdesk-bot/internal/infrastructure/jwt"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/memory"
	s3infra "github.com/hobbs-it/helpdesk-bot/internal/infrastructure/s3"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/smtp"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/sns"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/telegram"
	"github.com/hobbs-it/helpdesk-bot/internal/infrastructure/tracker"
	"github.com/hobbs-it/helpdesk-bot/internal/pkg/validate"
	transporthttp "github.com/hobbs-it/helpdesk-bot/internal/transport/http"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	mintToken := flag.String("mint-token", "",
		"print an ops-API bearer token for the named operator and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	if *mintToken != "" {
		provider, err := jwtinfra.NewProvider(cfg)
		if err != nil {
			log.Fatalf("mint token: %v", err)
		}
		token, err := provider.Sign(*mintToken)
		if err != nil {
			log.Fatalf("mint token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if err := validate.Struct(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.VerifiedUsers)
	messageLog := dynamo.NewMessageLogRepo(dynamoClient, cfg.DynamoTables.MessageLog)

	// S3 store for photo audit copies.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	mailer := smtp.NewMailer(cfg)

	// SNS alerter (optional — graceful fallback).
	var alerter sns.Alerter
	if a, err := sns.NewAlerter(cfg); err == nil {
		alerter = a
	} else {
		log.Printf("WARN: SNS alerter not available: %v", err)
	}

	// JWT provider for the ops API (optional — graceful fallback).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available, ops API is open: %v", err)
	}

	sessions := memory.NewSessionStore(cfg.SessionIdleTTL)
	defer sessions.Close()
	challenges := memory.NewChallengeStore()
	codes := verify.NewService(challenges, cfg.ChallengeTTL)

	trackerClient := tracker.NewClient(cfg)

	bot, err := telegram.NewBot(cfg)
	if err != nil {
		log.Fatalf("telegram bot: %v", err)
	}
	log.Printf("Authorized as @%s", bot.Username())

	engine := intake.NewEngine(intake.Deps{
		Sessions:  sessions,
		Codes:     codes,
		Users:     userRepo,
		Log:       messageLog,
		Notifier:  bot,
		Mailer:    mailer,
		Submitter: trackerClient,
		Photos:    bot,
		Images:    s3Store,
		Alerter:   alerter,
	}, intake.Options{
		AllowedEmailDomains: cfg.AllowedEmailDomains,
		BusinessUnits:       cfg.BusinessUnits,
		Queue:               cfg.TrackerQueue,
	})

	// One message per second per chat, small burst for button taps.
	limiter := telegram.NewChatLimiter(rate.Limit(1), 3)
	defer limiter.Close()
	poller := telegram.NewPoller(bot, engine, limiter)

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		UserRepo:    userRepo,
		MessageLog:  messageLog,
		Images:      s3Store,
		JWTProvider: jwtProvider,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AdminPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Ops API starting on :%s (env=%s)", cfg.AdminPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Stopped")
}
