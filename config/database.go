package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"conduit-api/models"
)

func InitDB(log *logrus.Logger) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOrDefault("DB_HOST", "localhost"),
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_USER", "postgres"),
		envOrDefault("DB_PASSWORD", "postgres"),
		envOrDefault("DB_NAME", "conduit"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Article{},
		&models.Comment{},
		&models.Tag{},
		&models.ArticleTag{},
		&models.Follow{},
		&models.Favorite{},
	); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	return db
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
