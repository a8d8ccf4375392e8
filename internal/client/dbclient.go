package client

import (
	"time"

	"packmarket/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitDBClient(databasePath string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	// Connection pool (important for payment notifications)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Profile{},
		&model.Pack{},
		&model.DiscountCode{},
		&model.Purchase{},
		&model.Follow{},
		&model.Download{},
		&model.PlanPrice{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	return db
}
