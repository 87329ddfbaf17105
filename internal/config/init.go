package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Ayyanaruto/dataset-catalog-api/internal/appcontext"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/entity"
	"github.com/Ayyanaruto/dataset-catalog-api/internal/utils"
)

func InitContext() (*appcontext.Context, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Warn("No .env file found, using environment variables")
	}

	logger, err := InitLogger()
	if err != nil {
		return nil, err
	}

	db, err := InitDB()
	if err != nil {
		return nil, err
	}

	meilisearchClient, err := InitMeilisearch(logger)
	if err != nil {
		return nil, err
	}

	ctx := &appcontext.Context{
		DB:     db,
		Logger: logger,

		MeilisearchClient: meilisearchClient,
	}

	return ctx, nil
}

func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := entity.Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func InitLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// InitMeilisearch configures the dataset search index. Search is optional:
// with MEILISEARCH_HOST unset the service runs without it and the /search
// endpoint reports unavailable.
func InitMeilisearch(logger *zap.Logger) (*meilisearch.Client, error) {
	host := os.Getenv("MEILISEARCH_HOST")
	if host == "" {
		logger.Warn("MEILISEARCH_HOST is not set, search is disabled")
		return nil, nil
	}

	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: os.Getenv("MEILISEARCH_API_KEY"),
	})

	_, err := client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        utils.SearchIndex,
		PrimaryKey: "id",
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	task, err := client.Index(utils.SearchIndex).UpdateFilterableAttributes(&[]string{
		"owner",
		"tags",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update filterable attributes: %w", err)
	}
	if _, err := client.WaitForTask(task.TaskUID); err != nil {
		return nil, fmt.Errorf("failed to wait for filterable attributes update: %w", err)
	}

	task, err = client.Index(utils.SearchIndex).UpdateSearchableAttributes(&[]string{
		"name",
		"description",
		"owner",
		"tags",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update searchable attributes: %w", err)
	}
	if _, err := client.WaitForTask(task.TaskUID); err != nil {
		return nil, fmt.Errorf("failed to wait for searchable attributes update: %w", err)
	}

	return client, nil
}

// Port returns the listen address, ":8080" unless PORT overrides it.
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// DefaultPageSize is the list page size used when the caller does not send
// a usable limit.
func DefaultPageSize() int {
	if raw := os.Getenv("DEFAULT_PAGE_SIZE"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size >= 1 && size <= 100 {
			return size
		}
	}
	return 20
}
