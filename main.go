package main

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/Shaloh69/autohub-be/api"
	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/event"
	"github.com/Shaloh69/autohub-be/internal/mailer"
	"github.com/Shaloh69/autohub-be/internal/sweeper"
	"github.com/Shaloh69/autohub-be/internal/util"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/Shaloh69/autohub-be/docs"
)

//	@title			AutoHub API
//	@version		1.0.0
//	@description	API documentation for the AutoHub car marketplace

//	@host		localhost:8080
//	@BasePath	/v1
//	@schemes	http https

//	@securityDefinitions.apikey	accessToken
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	store := db.NewStore(connPool)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	firebaseApp, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: config.FirebaseProjectID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase app 😣")
	}
	log.Info().Msg("firebase app initialized ✅")

	mailService, err := mailer.NewSMTPSender(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer service 😣")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	taskDistributor := worker.NewTaskDistributor(redisOpt)
	taskInspector := worker.NewTaskInspector(redisOpt)

	go runTaskProcessor(redisOpt, store, firebaseApp, taskDistributor)

	listingSweeper, err := sweeper.NewSweeper(store, taskDistributor)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create listing sweeper 😣")
	}
	if err = listingSweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start listing sweeper 😣")
	}
	log.Info().Msg("listing sweeper started ✅")

	eventSender := event.NewSSEServer()
	go eventSender.Run()

	runHTTPServer(&config, store, redisDb, taskDistributor, taskInspector, mailService, eventSender)
}

func runTaskProcessor(redisOpt asynq.RedisClientOpt, store db.Store, firebaseApp *firebase.App, taskDistributor worker.TaskDistributor) {
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, store, firebaseApp, taskDistributor)
	log.Info().Msg("task processor started ✅")

	err := taskProcessor.Start()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

func runHTTPServer(config *util.Config, store db.Store, redisDb *redis.Client, taskDistributor worker.TaskDistributor, taskInspector worker.TaskInspector, mailService mailer.EmailSender, eventSender event.EventSender) {
	server, err := api.NewServer(store, redisDb, taskDistributor, taskInspector, config, mailService, eventSender)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
