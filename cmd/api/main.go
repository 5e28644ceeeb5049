package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/shoply-api/internal/config"
	"github.com/vasapolrittideah/shoply-api/internal/handler"
	"github.com/vasapolrittideah/shoply-api/internal/middleware"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
	"github.com/vasapolrittideah/shoply-api/internal/usecase"
	"github.com/vasapolrittideah/shoply-api/shared/auth"
	"github.com/vasapolrittideah/shoply-api/shared/logger"
	"github.com/vasapolrittideah/shoply-api/shared/mailer"
	"github.com/vasapolrittideah/shoply-api/shared/validator"
)

const serviceName = "shoply-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	blogRepo := repository.NewBlogMongoRepository(db)
	productRepo := repository.NewProductMongoRepository(ctx, log, db)
	cartRepo := repository.NewCartMongoRepository(db)
	chatRepo := repository.NewChatMessageMongoRepository(db)

	mail := mailer.NewMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	jwtAuth := auth.NewJWTAuthenticator(serviceName, cfg.Token.Issuer)

	validate, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, mail, jwtAuth, cfg, log)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, mail, cfg, log)
	blogUsecase := usecase.NewBlogUsecase(blogRepo)
	productUsecase := usecase.NewProductUsecase(productRepo)
	cartUsecase := usecase.NewCartUsecase(cartRepo, productRepo, mail, cfg.Cart.ReminderDelay, log)
	chatUsecase := usecase.NewChatUsecase(chatRepo)

	authHandler := handler.NewAuthHandler(authUsecase, passwordResetUsecase, validate, log)
	blogHandler := handler.NewBlogHandler(blogUsecase, validate, log)
	productHandler := handler.NewProductHandler(productUsecase, validate, log)
	cartHandler := handler.NewCartHandler(cartUsecase, validate, log)
	chatHandler := handler.NewChatHandler(chatUsecase, validate, log)

	guard := middleware.RequireAuth(jwtAuth, cfg.Token.Secret, userRepo)
	router := handler.NewRouter(log, guard, authHandler, blogHandler, productHandler, cartHandler, chatHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting http server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server gracefully")
	}
}
