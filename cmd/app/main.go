package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"couriertrack/cmd"
	httpin "couriertrack/internal/adapters/in/http"
	"couriertrack/internal/adapters/out/kafka"
	"couriertrack/internal/adapters/out/postgres/actorrepo"
	"couriertrack/internal/adapters/out/postgres/deliveryrepo"
	"couriertrack/internal/adapters/out/postgres/eventrepo"
	"couriertrack/internal/adapters/out/sms"
	"couriertrack/internal/jobs"
	"couriertrack/internal/notifications"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the environment file")
	portOverride := pflag.String("port", "", "override HTTP_PORT from the environment")
	pflag.Parse()

	configs := getConfigs(*envFile)
	if *portOverride != "" {
		configs.HTTPPort = *portOverride
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	dispatcher := buildDispatcher(&app, configs, logger)
	go dispatcher.Run(context.Background())

	jobManager := jobs.NewJobManager(
		app.UnitOfWorkFactory(),
		time.Duration(configs.StaleThresholdMinutes)*time.Minute,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, dispatcher, configs.HTTPPort)
}

func getConfigs(envFile string) cmd.Config {
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("No environment file at %s, relying on process environment", envFile)
	}

	staleMinutes, err := strconv.Atoi(os.Getenv("STALE_THRESHOLD_MINUTES"))
	if err != nil || staleMinutes <= 0 {
		staleMinutes = 30
	}

	return cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		SmsAPIURL:             os.Getenv("SMS_API_URL"),
		SmsAPIAuth:            os.Getenv("SMS_API_AUTH"),
		SmsSender:             os.Getenv("SMS_SENDER"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaStatusTopic:      os.Getenv("KAFKA_STATUS_TOPIC"),
		StaleThresholdMinutes: staleMinutes,
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&eventrepo.EventDTO{},
		&actorrepo.ActorDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func buildDispatcher(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *notifications.Dispatcher {
	var sender notifications.TextSender
	if configs.SmsAPIURL != "" {
		smsClient, err := sms.NewClient(configs.SmsAPIURL, configs.SmsAPIAuth, configs.SmsSender)
		if err != nil {
			log.Fatalf("Failed to create sms client: %v", err)
		}
		sender = smsClient
	}

	var publisher notifications.StatusPublisher
	if configs.KafkaHost != "" {
		kafkaPublisher, err := kafka.NewStatusPublisher([]string{configs.KafkaHost}, configs.KafkaStatusTopic)
		if err != nil {
			log.Fatalf("Failed to create kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
	}

	actors := app.UnitOfWorkFactory().Create().ActorRepository()
	return notifications.NewDispatcher(sender, publisher, actors, logger)
}

func startWebServer(app *cmd.CompositionRoot, dispatcher *notifications.Dispatcher, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateAssignRiderCommandHandler(),
		app.CreateChangeDeliveryStatusCommandHandler(),
		app.CreateGetDeliveriesQueryHandler(),
		app.CreateGetDeliveryHistoryQueryHandler(),
		dispatcher,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
