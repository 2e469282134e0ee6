package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"aidmatch/cmd"
	"aidmatch/internal/adapters/out/postgres/addressrepo"
	"aidmatch/internal/adapters/out/postgres/requestrepo"
	"aidmatch/internal/adapters/out/postgres/volunteerrepo"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/volunteer"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		TaskCeiling:   volunteer.DefaultTaskCeiling,
		MinDistanceKm: kernel.MinMatchDistanceKm,
		MaxDistanceKm: kernel.MaxMatchDistanceKm,
	}

	if raw := os.Getenv("TASK_CEILING"); raw != "" {
		ceiling, err := strconv.Atoi(raw)
		if err != nil || ceiling < 1 {
			log.Fatalf("Invalid TASK_CEILING: %s", raw)
		}
		config.TaskCeiling = ceiling
	}

	if raw := os.Getenv("MIN_DISTANCE_KM"); raw != "" {
		minKm, err := strconv.ParseFloat(raw, 64)
		if err != nil || minKm < 0 {
			log.Fatalf("Invalid MIN_DISTANCE_KM: %s", raw)
		}
		config.MinDistanceKm = minKm
	}

	if raw := os.Getenv("MAX_DISTANCE_KM"); raw != "" {
		maxKm, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxKm <= 0 {
			log.Fatalf("Invalid MAX_DISTANCE_KM: %s", raw)
		}
		config.MaxDistanceKm = maxKm
	}

	if config.MinDistanceKm >= config.MaxDistanceKm {
		log.Fatalf("MIN_DISTANCE_KM must be below MAX_DISTANCE_KM")
	}

	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&requestrepo.RequestDTO{},
		&volunteerrepo.VolunteerDTO{},
		&addressrepo.AddressDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
