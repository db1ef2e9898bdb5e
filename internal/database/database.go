package database

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"videorental/internal/domain/audit"
	"videorental/internal/domain/catalog"
	"videorental/internal/domain/client"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/inventory"
	"videorental/internal/domain/rental"
	"videorental/internal/domain/tariff"
	"videorental/internal/logger"
)

// IsPostgres reports whether dsn points at PostgreSQL rather than a SQLite file.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens PostgreSQL for postgres:// URLs and SQLite otherwise.
// Timestamps are written in UTC. Referential integrity is enforced by the
// services, so gorm does not create foreign keys.
func Connect(dsn, logLevel string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormLevel(logLevel)),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	if IsPostgres(dsn) {
		logger.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	logger.Info("using SQLite for local development", "dsn", dsn)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer; one connection keeps conditional updates serialized.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&employee.Employee{},
		&catalog.Genre{},
		&catalog.Movie{},
		&inventory.MediaUnit{},
		&client.Client{},
		&tariff.Tariff{},
		&tariff.DurationDiscount{},
		&tariff.AllowedGenre{},
		&rental.Rental{},
		&audit.Entry{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SQLX wraps the gorm connection pool for hand-written queries.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	driver := "postgres"
	if db.Dialector.Name() == "sqlite" {
		driver = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}

func gormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return gormlogger.Info
	case "warn", "warning", "info":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
