package database

import (
	"context"
	"fmt"
	"time"

	"cineview-backend/internal/config"
	"cineview-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	*gorm.DB
	config config.DatabaseConfig
}

func Connect(cfg config.DatabaseConfig) (*Database, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Failed to get underlying sql.DB")
		return nil, fmt.Errorf("failed to get underlying sql.DB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		logrus.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	logrus.Info("Database connection established successfully")

	database := &Database{
		DB:     db,
		config: cfg,
	}

	if err := AutoMigrate(db); err != nil {
		logrus.WithError(err).Error("Failed to run auto migration")
		return nil, fmt.Errorf("failed to run auto migration: %v", err)
	}

	return database, nil
}

// NewFromGorm wraps an already-open gorm connection. Used by tests that run
// against in-memory SQLite.
func NewFromGorm(db *gorm.DB, queryTimeout time.Duration) *Database {
	return &Database{
		DB:     db,
		config: config.DatabaseConfig{QueryTimeout: queryTimeout},
	}
}

func (d *Database) WithContext(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx)
}

func (d *Database) GetQueryTimeout() time.Duration {
	return d.config.QueryTimeout
}

func (d *Database) HealthCheck() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate is exported so tests can build the schema on their own
// connection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Film{},
		&models.Genre{},
		&models.Language{},
		&models.Review{},
		&models.ReviewVote{},
		&models.Report{},
		&models.Follow{},
		&models.Watchlist{},
		&models.Article{},
	)
}
