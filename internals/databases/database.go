package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"planova_backend/internals/configs"
	themeModel "planova_backend/internals/features/preferences/theme/model"
	historyModel "planova_backend/internals/features/timetable/history/model"
)

var DB *gorm.DB

// ConnectDB opens the Postgres pool. It returns an error instead of exiting
// so the service can run without history when the database is unreachable.
func ConnectDB() error {
	log.Println("[INFO] connecting to PostgreSQL...")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=planova&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: configs.NewGormLogger()})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Migrate() error {
	return DB.AutoMigrate(&historyModel.TimetableHistory{}, &themeModel.ThemePreference{})
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
			return
		}
		DB.Exec("SELECT 1 FROM timetable_histories LIMIT 1")
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("db disabled")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
