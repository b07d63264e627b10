package main

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"loyaltyjo.backend/internal/config"
	"loyaltyjo.backend/internal/infrastructure/datasources/postgres"
	"loyaltyjo.backend/pkg/logger"
)

//go:embed schema.sql
var schema string

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	connect    = postgres.NewConnection
	execSchema = func(ctx context.Context, db *sql.DB, stmt string) error {
		_, err := db.ExecContext(ctx, stmt)
		return err
	}
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := loadCfg()
	logger.Init(cfg.Server.Env)

	db, err := connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info(ctx, "Applying schema", zap.String("database", cfg.Database.DBName))
	if err := execSchema(ctx, db, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info(ctx, "Schema applied")
	return nil
}
